package review

import (
	"sort"

	"github.com/parley-ai/parley/internal/model"
)

// SortIssues orders issues by severity (high first), then type rank
// (bug > optimization > style). The sort is stable: ties keep arrival order.
func SortIssues(issues []model.CodeIssue) []model.CodeIssue {
	sorted := make([]model.CodeIssue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Severity.Rank() != sorted[j].Severity.Rank() {
			return sorted[i].Severity.Rank() > sorted[j].Severity.Rank()
		}
		return sorted[i].Type.Rank() > sorted[j].Type.Rank()
	})
	return sorted
}

// Prioritize orders suggestions by severity rank descending, ties broken by
// confidence descending. Stable.
func Prioritize(suggestions []model.AISuggestion) []model.AISuggestion {
	sorted := make([]model.AISuggestion, len(suggestions))
	copy(sorted, suggestions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Severity.Rank() != sorted[j].Severity.Rank() {
			return sorted[i].Severity.Rank() > sorted[j].Severity.Rank()
		}
		return sorted[i].Confidence > sorted[j].Confidence
	})
	return sorted
}

// DeduplicateSuggestions collapses duplicate plain-text suggestions using
// exact-string set semantics. No fuzzy matching. First occurrence wins.
func DeduplicateSuggestions(suggestions []string) []string {
	seen := make(map[string]bool, len(suggestions))
	var out []string
	for _, s := range suggestions {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// IssueConfidence computes the deterministic confidence score for an issue:
// base 0.7, +0.2 for high severity, +0.1 for bugs, -0.1 when the snippet's
// complexity score is below 50. Clamped to [0.1, 1.0].
func IssueConfidence(issue model.CodeIssue, metrics model.CodeMetrics) float64 {
	confidence := 0.7
	if issue.Severity == model.SeverityHigh {
		confidence += 0.2
	}
	if issue.Type == model.IssueBug {
		confidence += 0.1
	}
	if metrics.Complexity < 50 {
		confidence -= 0.1
	}
	return clampConfidence(confidence)
}

func clampConfidence(c float64) float64 {
	if c < 0.1 {
		return 0.1
	}
	if c > 1.0 {
		return 1.0
	}
	return c
}
