// Package review implements the AI-assisted analysis pipeline: prompt
// construction, response parsing, categorization, prioritization, and the
// concurrent orchestrator that ties them together.
package review

import (
	"fmt"
	"strings"

	"github.com/parley-ai/parley/internal/model"
)

// Dimension is one analysis axis run as an independent concurrent task.
type Dimension int

const (
	DimCodeQuality Dimension = iota + 1
	DimSecurity
	DimPerformance
	DimStyle
)

func (d Dimension) String() string {
	switch d {
	case DimCodeQuality:
		return "code_quality"
	case DimSecurity:
		return "security"
	case DimPerformance:
		return "performance"
	case DimStyle:
		return "style"
	default:
		return "unknown"
	}
}

// DefaultIssueType is the type assigned to an issue from this dimension when
// the message itself gives no stronger signal.
func (d Dimension) DefaultIssueType() model.IssueType {
	switch d {
	case DimSecurity:
		return model.IssueSecurity
	case DimPerformance:
		return model.IssuePerformance
	case DimStyle:
		return model.IssueStyle
	default:
		return model.IssueBug
	}
}

var dimensionFocus = map[Dimension]string{
	DimCodeQuality: "bugs, logic errors, missing error handling, and edge cases",
	DimSecurity:    "security vulnerabilities, injection risks, unsafe input handling, and secrets",
	DimPerformance: "performance problems, unnecessary allocations, and inefficient algorithms",
	DimStyle:       "style, naming, formatting, and idiomatic usage for the language",
}

// buildPrompt renders the analysis prompt for one dimension. The response
// format instructions keep parsing heuristic but tractable.
func buildPrompt(dim Dimension, snippet model.CodeSnippet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review the following %s code for %s.\n\n", snippet.Language, dimensionFocus[dim])
	b.WriteString("Report each finding on its own line in the form:\n")
	b.WriteString("Line <number>: <severity low|medium|high> - <description>. Fix: <suggested fix>\n")
	b.WriteString("After the findings, list general suggestions prefixed with 'Suggestion:'.\n\n")
	fmt.Fprintf(&b, "```%s\n%s\n```\n", snippet.Language, snippet.Content)
	return b.String()
}
