// Package fallback supplies deterministic canned output for every operation
// so the engine stays usable with no working text-generation service.
package fallback

import (
	"time"

	"github.com/parley-ai/parley/internal/model"
)

// Canned debate positions. Exactly three per side.
var (
	proArguments = []string{
		"The proposed change simplifies the code and reduces the surface area for future bugs.",
		"Modern constructs make the intent clearer to reviewers and new contributors.",
		"Smaller, more focused code is easier to test and maintain over time.",
	}
	conArguments = []string{
		"The original code is battle-tested; rewriting it risks introducing regressions.",
		"The change may behave differently in edge cases that the tests do not cover.",
		"Churn without a functional driver costs review time better spent elsewhere.",
	}
)

// Analysis returns a static but well-formed result for a snippet. Used when
// the external service is unconfigured or every analysis task failed.
func Analysis(snippet model.CodeSnippet) model.AnalysisResult {
	return model.AnalysisResult{
		CodeSnippetID: snippet.ID,
		Language:      snippet.Language,
		Issues:        []model.CodeIssue{},
		Metrics: model.CodeMetrics{
			Complexity:      50,
			Maintainability: 50,
			Readability:     50,
		},
		Suggestions: []string{
			"AI analysis is unavailable; showing general guidance only.",
			"Review the change manually for correctness and edge cases.",
			"Consider adding tests around the modified lines.",
		},
	}
}

// UnavailableSuggestion is the single low-confidence suggestion emitted when
// analysis yields nothing. Guarantees callers always have one to render.
func UnavailableSuggestion(sessionID string) model.AISuggestion {
	return model.AISuggestion{
		ID:          model.NewID(),
		SessionID:   sessionID,
		Type:        model.IssueMaintainability,
		Severity:    model.SeverityLow,
		LineStart:   1,
		LineEnd:     1,
		Title:       "AI analysis unavailable",
		Description: "Automated review could not produce suggestions for this snippet. Review it manually.",
		Confidence:  0.1,
		CreatedAt:   time.Now(),
	}
}

// DebateArguments returns the static opening positions: three arguments for
// the change and three against.
func DebateArguments() model.DebateArguments {
	return model.DebateArguments{
		Arguments:        append([]string(nil), proArguments...),
		CounterArguments: append([]string(nil), conArguments...),
	}
}

// DebateReply returns a static contextual reply for a debate turn.
func DebateReply() string {
	return "That is a fair point. Without live analysis I can only weigh it against " +
		"the general trade-off between stability and clarity; the strongest version of " +
		"your position should address the risk of behavioral drift in edge cases."
}

// FollowUpQuestions returns the static follow-up set for a debate turn.
func FollowUpQuestions() []string {
	return []string{
		"Which edge cases would be hardest to preserve under this change?",
		"What evidence would change your assessment of the risk?",
	}
}

// CounterArgument returns a static argument of the given stance.
func CounterArgument(stance model.ArgumentType) string {
	switch stance {
	case model.ArgumentPro:
		return proArguments[0]
	case model.ArgumentCon:
		return conArguments[0]
	default:
		return "Both positions have merit; the decision should rest on test coverage and rollback cost."
	}
}
