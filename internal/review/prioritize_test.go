package review

import (
	"testing"

	"github.com/parley-ai/parley/internal/model"
)

func TestSortIssuesBySeverityThenType(t *testing.T) {
	issues := []model.CodeIssue{
		{Message: "a", Severity: model.SeverityLow, Type: model.IssueStyle},
		{Message: "b", Severity: model.SeverityHigh, Type: model.IssueStyle},
		{Message: "c", Severity: model.SeverityMedium, Type: model.IssueBug},
		{Message: "d", Severity: model.SeverityHigh, Type: model.IssueBug},
	}

	sorted := SortIssues(issues)

	wantOrder := []string{"d", "b", "c", "a"}
	for i, want := range wantOrder {
		if sorted[i].Message != want {
			t.Errorf("position %d: got %q, want %q", i, sorted[i].Message, want)
		}
	}

	// Input must be untouched.
	if issues[0].Message != "a" {
		t.Error("SortIssues mutated its input")
	}
}

func TestSortIssuesStableOnTies(t *testing.T) {
	issues := []model.CodeIssue{
		{Message: "first", Severity: model.SeverityMedium, Type: model.IssueBug, Line: 1},
		{Message: "second", Severity: model.SeverityMedium, Type: model.IssueBug, Line: 2},
		{Message: "third", Severity: model.SeverityMedium, Type: model.IssueBug, Line: 3},
	}
	sorted := SortIssues(issues)
	for i, want := range []string{"first", "second", "third"} {
		if sorted[i].Message != want {
			t.Errorf("ties must keep arrival order: position %d = %q", i, sorted[i].Message)
		}
	}
}

func TestSortIssuesIsPermutation(t *testing.T) {
	issues := []model.CodeIssue{
		{Message: "x", Severity: model.SeverityHigh, Type: model.IssueStyle},
		{Message: "y", Severity: model.SeverityLow, Type: model.IssueBug},
		{Message: "z", Severity: model.SeverityMedium, Type: model.IssueOptimization},
	}
	sorted := SortIssues(issues)
	if len(sorted) != len(issues) {
		t.Fatalf("length changed: %d -> %d", len(issues), len(sorted))
	}
	seen := map[string]int{}
	for _, i := range issues {
		seen[i.Message]++
	}
	for _, i := range sorted {
		seen[i.Message]--
	}
	for msg, n := range seen {
		if n != 0 {
			t.Errorf("issue %q count off by %d", msg, n)
		}
	}
}

func TestPrioritizeBySeverityThenConfidence(t *testing.T) {
	suggestions := []model.AISuggestion{
		{Title: "a", Severity: model.SeverityMedium, Confidence: 0.9},
		{Title: "b", Severity: model.SeverityHigh, Confidence: 0.5},
		{Title: "c", Severity: model.SeverityHigh, Confidence: 0.8},
		{Title: "d", Severity: model.SeverityLow, Confidence: 1.0},
	}

	sorted := Prioritize(suggestions)

	wantOrder := []string{"c", "b", "a", "d"}
	for i, want := range wantOrder {
		if sorted[i].Title != want {
			t.Errorf("position %d: got %q, want %q", i, sorted[i].Title, want)
		}
	}
}

func TestDeduplicateSuggestionsExactMatchOnly(t *testing.T) {
	in := []string{
		"use prepared statements",
		"use prepared statements",
		"Use prepared statements", // different case: kept
		"add tests",
	}
	out := DeduplicateSuggestions(in)
	if len(out) != 3 {
		t.Fatalf("got %d suggestions, want 3: %v", len(out), out)
	}
	if out[0] != "use prepared statements" || out[1] != "Use prepared statements" || out[2] != "add tests" {
		t.Errorf("unexpected order/content: %v", out)
	}
}

func TestIssueConfidenceFormula(t *testing.T) {
	simple := model.CodeMetrics{Complexity: 80}
	complexCode := model.CodeMetrics{Complexity: 40}

	tests := []struct {
		name    string
		issue   model.CodeIssue
		metrics model.CodeMetrics
		want    float64
	}{
		{"base", model.CodeIssue{Severity: model.SeverityMedium, Type: model.IssueStyle}, simple, 0.7},
		{"high severity", model.CodeIssue{Severity: model.SeverityHigh, Type: model.IssueStyle}, simple, 0.9},
		{"bug bonus", model.CodeIssue{Severity: model.SeverityMedium, Type: model.IssueBug}, simple, 0.8},
		{"high bug", model.CodeIssue{Severity: model.SeverityHigh, Type: model.IssueBug}, simple, 1.0},
		{"complexity penalty", model.CodeIssue{Severity: model.SeverityMedium, Type: model.IssueStyle}, complexCode, 0.6},
		{"high bug with complexity penalty", model.CodeIssue{Severity: model.SeverityHigh, Type: model.IssueBug}, complexCode, 0.9},
	}
	for _, tt := range tests {
		got := IssueConfidence(tt.issue, tt.metrics)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%s: confidence = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIssueConfidenceBounds(t *testing.T) {
	severities := []model.Severity{model.SeverityLow, model.SeverityMedium, model.SeverityHigh}
	types := []model.IssueType{
		model.IssueStyle, model.IssueOptimization, model.IssueBug,
		model.IssueSecurity, model.IssuePerformance, model.IssueMaintainability,
	}
	for _, sev := range severities {
		for _, typ := range types {
			for _, cx := range []int{0, 49, 50, 100} {
				c := IssueConfidence(
					model.CodeIssue{Severity: sev, Type: typ},
					model.CodeMetrics{Complexity: cx},
				)
				if c < 0.1 || c > 1.0 {
					t.Errorf("confidence %v out of [0.1, 1.0] for sev=%s type=%s cx=%d", c, sev, typ, cx)
				}
			}
		}
	}
}

func TestCategorizeTotalFunction(t *testing.T) {
	issues := []model.CodeIssue{
		{Message: "possible SQL injection via user input"},
		{Message: "slow allocation pattern in hot loop"},
		{Message: "function is too complex, consider a refactor"},
		{Message: "naming convention violation"},
		{Message: "dereferences nil on empty input"},
		{Message: "completely unclassifiable remark here"},
	}

	cats := Categorize(issues)

	if cats.Total() != len(issues) {
		t.Fatalf("bucket total %d != input size %d", cats.Total(), len(issues))
	}
	if len(cats.Security) != 1 {
		t.Errorf("security = %d, want 1", len(cats.Security))
	}
	if len(cats.Performance) != 1 {
		t.Errorf("performance = %d, want 1", len(cats.Performance))
	}
	if len(cats.Maintainability) != 1 {
		t.Errorf("maintainability = %d, want 1", len(cats.Maintainability))
	}
	if len(cats.Style) != 1 {
		t.Errorf("style = %d, want 1", len(cats.Style))
	}
	if len(cats.Bugs) != 2 {
		t.Errorf("bugs = %d, want 2 (nil deref + default bucket)", len(cats.Bugs))
	}
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	// Message matches both security and style keywords; security outranks.
	cats := Categorize([]model.CodeIssue{{Message: "unsafe naming of security token"}})
	if len(cats.Security) != 1 || cats.Total() != 1 {
		t.Errorf("expected single security bucket entry, got %+v", cats)
	}
}
