package review

import (
	"fmt"
	"time"

	"github.com/parley-ai/parley/internal/fallback"
	"github.com/parley-ai/parley/internal/model"
)

// Metric thresholds for the general suggestions appended after per-issue ones.
const (
	complexityThreshold  = 70
	readabilityThreshold = 70
)

// GenerateSuggestions converts an analysis result into prioritized
// user-facing suggestions: one per issue, plus at most two general
// suggestions keyed off metric thresholds. Never returns an empty slice:
// when nothing else applies it emits the single low-confidence
// "AI analysis unavailable" suggestion so callers always have something to
// render.
func GenerateSuggestions(result model.AnalysisResult, sessionID string) []model.AISuggestion {
	now := time.Now()
	suggestions := make([]model.AISuggestion, 0, len(result.Issues)+2)

	for _, issue := range result.Issues {
		suggestions = append(suggestions, model.AISuggestion{
			ID:           model.NewID(),
			SessionID:    sessionID,
			Type:         issue.Type,
			Severity:     issue.Severity,
			LineStart:    issue.Line,
			LineEnd:      issue.Line,
			Title:        fmt.Sprintf("%s on line %d", issue.Type.Label(), issue.Line),
			Description:  issue.Message,
			SuggestedFix: issue.SuggestedFix,
			Confidence:   IssueConfidence(issue, result.Metrics),
			CreatedAt:    now,
		})
	}

	if result.Metrics.Complexity < complexityThreshold {
		suggestions = append(suggestions, model.AISuggestion{
			ID:          model.NewID(),
			SessionID:   sessionID,
			Type:        model.IssueMaintainability,
			Severity:    model.SeverityMedium,
			LineStart:   1,
			LineEnd:     1,
			Title:       "Reduce code complexity",
			Description: "The snippet scores low on complexity. Break long functions apart and flatten deeply nested branches.",
			Confidence:  0.6,
			CreatedAt:   now,
		})
	}
	if result.Metrics.Readability < readabilityThreshold {
		suggestions = append(suggestions, model.AISuggestion{
			ID:          model.NewID(),
			SessionID:   sessionID,
			Type:        model.IssueStyle,
			Severity:    model.SeverityLow,
			LineStart:   1,
			LineEnd:     1,
			Title:       "Improve readability",
			Description: "The snippet scores low on readability. Shorten long lines and prefer descriptive names.",
			Confidence:  0.5,
			CreatedAt:   now,
		})
	}

	if len(suggestions) == 0 {
		return []model.AISuggestion{fallback.UnavailableSuggestion(sessionID)}
	}

	return Prioritize(suggestions)
}
