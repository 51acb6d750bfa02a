package review

import (
	"regexp"
	"strings"

	"github.com/parley-ai/parley/internal/model"
)

// Metric scores are 0-100, higher is better. A complexity score of 100 means
// trivially simple code; low scores trigger complexity-reduction suggestions
// and dampen analysis confidence.

var (
	branchRe  = regexp.MustCompile(`\b(if|else|for|while|switch|case|catch|when|match)\b`)
	commentRe = regexp.MustCompile(`^\s*(//|#|/\*|\*)`)
)

// ComputeMetrics derives heuristic quality scores from snippet content.
// Deterministic: the same snippet always scores the same.
func ComputeMetrics(snippet model.CodeSnippet) model.CodeMetrics {
	lines := strings.Split(snippet.Content, "\n")

	var codeLines, commentLines, longLines, branches int
	maxDepth, depth := 0, 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if commentRe.MatchString(line) {
			commentLines++
			continue
		}
		codeLines++
		if len(line) > 100 {
			longLines++
		}
		branches += len(branchRe.FindAllString(line, -1))

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth > maxDepth {
			maxDepth = depth
		}
	}

	if codeLines == 0 {
		return model.CodeMetrics{Complexity: 100, Maintainability: 100, Readability: 100}
	}

	// Complexity: penalize branch density and nesting depth.
	branchDensity := float64(branches) / float64(codeLines)
	complexity := 100 - int(branchDensity*100) - maxDepth*5
	if codeLines > 200 {
		complexity -= 10
	}

	// Maintainability: reward comments, penalize sheer size.
	commentRatio := float64(commentLines) / float64(codeLines+commentLines)
	maintainability := 70 + int(commentRatio*60) - codeLines/20

	// Readability: penalize overlong lines.
	longRatio := float64(longLines) / float64(codeLines)
	readability := 95 - int(longRatio*120)

	return model.CodeMetrics{
		Complexity:      clampScore(complexity),
		Maintainability: clampScore(maintainability),
		Readability:     clampScore(readability),
	}
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
