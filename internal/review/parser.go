package review

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/parley-ai/parley/internal/model"
)

// ParsedKind tags what a line of model output turned out to be.
type ParsedKind int

const (
	ParsedNoise ParsedKind = iota
	ParsedIssue
	ParsedSuggestion
)

// ParsedLine is the tagged result of classifying one raw output line. The
// downstream categorizer operates on this closed union, never on raw text.
type ParsedLine struct {
	Kind       ParsedKind
	Issue      model.CodeIssue
	Suggestion string
}

// Line-shape heuristics for free-text model output.
var (
	lineNumRe    = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)
	colonSplitRe = regexp.MustCompile(`(?i)^\s*(?:[-*]\s*)?(?:line\s+\d+\s*[:.\-]\s*)`)
	fixRe        = regexp.MustCompile(`(?i)\b(?:fix|suggested fix|suggestion)\s*:\s*(.+)$`)
	suggestionRe = regexp.MustCompile(`(?i)^\s*(?:[-*]\s*)?suggestion\s*:\s*(.+)$`)
	bulletNumRe  = regexp.MustCompile(`^\s*\d+[.)]\s*`)
)

// Severity keyword heuristics; word-bounded so "slow" does not read as "low".
var (
	highSevRe = regexp.MustCompile(`(?i)\b(critical|severe|high|dangerous|crash|vulnerab\w*)\b`)
	lowSevRe  = regexp.MustCompile(`(?i)\b(minor|low|nit|cosmetic|trivial)\b`)
)

// Type keyword heuristics checked against the message text, in order.
var typeKeywords = []struct {
	typ   model.IssueType
	words []string
}{
	{model.IssueSecurity, []string{"security", "vulnerab", "injection", "unsafe", "sanitiz", "xss", "csrf", "secret", "credential"}},
	{model.IssueBug, []string{"bug", "error", "incorrect", "crash", "nil pointer", "null", "undefined", "race", "leak"}},
	{model.IssuePerformance, []string{"performance", "slow", "inefficien", "allocation", "o(n", "bottleneck"}},
	{model.IssueOptimization, []string{"optimiz", "simplif", "redundant", "unnecessary"}},
	{model.IssueMaintainability, []string{"maintain", "complex", "refactor", "duplicat", "coupling", "readab"}},
	{model.IssueStyle, []string{"style", "naming", "format", "convention", "indent", "idiomatic"}},
}

// ParseLine classifies a single line of model output. Unusable lines come
// back as ParsedNoise; a parse failure is never an error.
func ParseLine(line string, dim Dimension) ParsedLine {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "```") {
		return ParsedLine{Kind: ParsedNoise}
	}

	if m := suggestionRe.FindStringSubmatch(trimmed); m != nil {
		text := strings.TrimSpace(m[1])
		if text == "" {
			return ParsedLine{Kind: ParsedNoise}
		}
		return ParsedLine{Kind: ParsedSuggestion, Suggestion: text}
	}

	lineMatch := lineNumRe.FindStringSubmatch(trimmed)
	if lineMatch == nil {
		return ParsedLine{Kind: ParsedNoise}
	}
	lineNum, err := strconv.Atoi(lineMatch[1])
	if err != nil || lineNum <= 0 {
		return ParsedLine{Kind: ParsedNoise}
	}

	message := bulletNumRe.ReplaceAllString(trimmed, "")
	message = colonSplitRe.ReplaceAllString(message, "")

	var fix string
	if m := fixRe.FindStringSubmatch(message); m != nil {
		fix = strings.TrimSpace(m[1])
		message = strings.TrimSpace(strings.TrimSuffix(message[:len(message)-len(m[0])], "."))
		if message == "" {
			message = fix
		}
	}
	message = strings.TrimSpace(message)
	if len(message) < 5 {
		return ParsedLine{Kind: ParsedNoise}
	}

	return ParsedLine{
		Kind: ParsedIssue,
		Issue: model.CodeIssue{
			Type:         detectType(message, dim),
			Severity:     detectSeverity(message),
			Line:         lineNum,
			Message:      message,
			SuggestedFix: fix,
		},
	}
}

// ParseIssues extracts issues from a full model response for one dimension.
// Unparsable text yields zero issues, never an error.
func ParseIssues(raw string, dim Dimension) []model.CodeIssue {
	var issues []model.CodeIssue
	for _, line := range strings.Split(raw, "\n") {
		if p := ParseLine(line, dim); p.Kind == ParsedIssue {
			issues = append(issues, p.Issue)
		}
	}
	return issues
}

// ParseSuggestions extracts the plain-text suggestion lines from a response.
func ParseSuggestions(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if p := ParseLine(line, DimCodeQuality); p.Kind == ParsedSuggestion {
			out = append(out, p.Suggestion)
		}
	}
	return out
}

func detectSeverity(message string) model.Severity {
	if highSevRe.MatchString(message) {
		return model.SeverityHigh
	}
	if lowSevRe.MatchString(message) {
		return model.SeverityLow
	}
	return model.SeverityMedium
}

func detectType(message string, dim Dimension) model.IssueType {
	lower := strings.ToLower(message)
	for _, tk := range typeKeywords {
		for _, w := range tk.words {
			if strings.Contains(lower, w) {
				return tk.typ
			}
		}
	}
	return dim.DefaultIssueType()
}
