package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/parley-ai/parley/internal/model"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a code snippet and print a review report",
	Long: `Run the full review pipeline on a snippet: quality, security,
performance and style dimensions, metrics, categorized issues and
prioritized suggestions.

Examples:
  parley analyze main.go
  cat main.go | parley analyze
  parley analyze main.go --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("format", "f", "text", "output format: text, json")
}

// Report styles.
var (
	reportHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8be9fd")).
				Bold(true)

	reportSectionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#bd93f9")).
				Bold(true).
				Padding(1, 0, 0, 0)

	severityHighStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ff5555")).
				Bold(true)

	severityMediumStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1fa8c"))

	severityLowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6272a4"))

	reportDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272a4"))
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	snip, err := loadSnippet(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(snip.Content) == "" {
		fmt.Println("Nothing to analyze.")
		return nil
	}

	client := buildClient()
	orchestrator := buildOrchestrator(client)
	result := orchestrator.Analyze(cmd.Context(), snip)

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printReport(snip, result)
	return nil
}

func printReport(snip model.CodeSnippet, result model.EnhancedAnalysisResult) {
	fmt.Println(reportHeaderStyle.Render(fmt.Sprintf("Review: %s (%s, %d bytes)",
		displayName(snip), snip.Language, snip.Size)))
	fmt.Println(reportDimStyle.Render(fmt.Sprintf("confidence %.2f, %s",
		result.Confidence, result.ProcessingTime.Round(time.Millisecond))))

	fmt.Println(reportSectionStyle.Render("Metrics"))
	fmt.Printf("  complexity %d  maintainability %d  readability %d\n",
		result.Metrics.Complexity, result.Metrics.Maintainability, result.Metrics.Readability)

	fmt.Println(reportSectionStyle.Render(fmt.Sprintf("Issues (%d)", len(result.Issues))))
	if len(result.Issues) == 0 {
		fmt.Println("  none found")
	}
	for _, issue := range result.Issues {
		fmt.Printf("  %s line %-4d [%s] %s\n",
			severityBadge(issue.Severity), issue.Line, issue.Type, issue.Message)
	}

	fmt.Println(reportSectionStyle.Render(fmt.Sprintf("Suggestions (%d)", len(result.PrioritizedSuggestions))))
	for _, s := range result.PrioritizedSuggestions {
		fmt.Printf("  %s %s\n", severityBadge(s.Severity), s.Title)
		fmt.Printf("    %s\n", reportDimStyle.Render(s.Description))
	}
}

func severityBadge(s model.Severity) string {
	switch s {
	case model.SeverityHigh:
		return severityHighStyle.Render("HIGH")
	case model.SeverityMedium:
		return severityMediumStyle.Render("MED ")
	default:
		return severityLowStyle.Render("LOW ")
	}
}

func displayName(snip model.CodeSnippet) string {
	if snip.Filename != "" {
		return snip.Filename
	}
	return "stdin"
}
