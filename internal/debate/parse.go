package debate

import (
	"regexp"
	"strings"
)

const (
	maxOpeningArguments = 3
	maxFollowUps        = 2
	minArgumentLen      = 10
)

var bulletPrefixRe = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s*`)

// parseArguments extracts up to three argument bullets from model output:
// split on newlines, strip leading numbering, drop lines shorter than ten
// characters, keep the first three.
func parseArguments(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		arg := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if len(arg) < minArgumentLen {
			continue
		}
		out = append(out, arg)
		if len(out) == maxOpeningArguments {
			break
		}
	}
	return out
}

// parseQuestions keeps only lines containing a question mark, capped at two.
func parseQuestions(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		q := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if q == "" || !strings.Contains(q, "?") {
			continue
		}
		out = append(out, q)
		if len(out) == maxFollowUps {
			break
		}
	}
	return out
}
