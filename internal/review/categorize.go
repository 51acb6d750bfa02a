package review

import (
	"strings"

	"github.com/parley-ai/parley/internal/model"
)

// Category keyword tables, checked in priority order:
// security > performance > maintainability > style. First match wins; an
// issue whose message matches nothing lands in the bugs bucket.
var categoryKeywords = []struct {
	name  string
	words []string
}{
	{"security", []string{"security", "vulnerab", "injection", "unsafe", "sanitiz", "xss", "csrf", "auth", "secret", "credential", "escap"}},
	{"performance", []string{"performance", "slow", "inefficien", "allocation", "optimiz", "cache", "bottleneck", "memory"}},
	{"maintainability", []string{"maintain", "complex", "refactor", "duplicat", "coupling", "test", "document"}},
	{"style", []string{"style", "naming", "format", "convention", "indent", "whitespace", "idiomatic"}},
}

// Categorize buckets every issue into exactly one category. Total output size
// always equals input size.
func Categorize(issues []model.CodeIssue) model.IssueCategories {
	var cats model.IssueCategories
	for _, issue := range issues {
		switch categoryFor(issue.Message) {
		case "security":
			cats.Security = append(cats.Security, issue)
		case "performance":
			cats.Performance = append(cats.Performance, issue)
		case "maintainability":
			cats.Maintainability = append(cats.Maintainability, issue)
		case "style":
			cats.Style = append(cats.Style, issue)
		default:
			cats.Bugs = append(cats.Bugs, issue)
		}
	}
	return cats
}

func categoryFor(message string) string {
	lower := strings.ToLower(message)
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(lower, w) {
				return ck.name
			}
		}
	}
	return "bugs"
}
