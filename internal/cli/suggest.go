package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [file]",
	Short: "Print prioritized improvement suggestions for a snippet",
	Long: `Analyze a snippet and print only the prioritized suggestion list,
one suggestion per block. Always prints at least one suggestion; when no
AI provider is configured the output is a low-confidence placeholder.

Examples:
  parley suggest main.go
  cat main.go | parley suggest --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringP("format", "f", "text", "output format: text, json")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	snip, err := loadSnippet(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(snip.Content) == "" {
		fmt.Println("Nothing to suggest.")
		return nil
	}

	client := buildClient()
	orchestrator := buildOrchestrator(client)
	result := orchestrator.Analyze(cmd.Context(), snip)

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.PrioritizedSuggestions)
	}

	for i, s := range result.PrioritizedSuggestions {
		fmt.Printf("%d. %s %s (confidence %.2f)\n", i+1, severityBadge(s.Severity), s.Title, s.Confidence)
		fmt.Printf("   %s\n", s.Description)
		if s.SuggestedFix != "" {
			fmt.Printf("   fix: %s\n", s.SuggestedFix)
		}
	}
	return nil
}
