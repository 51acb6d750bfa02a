package review

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/parley-ai/parley/internal/fallback"
	"github.com/parley-ai/parley/internal/guard"
	"github.com/parley-ai/parley/internal/llm"
	"github.com/parley-ai/parley/internal/model"
)

// Config controls which dimensions run and how stubborn the guard is.
type Config struct {
	EnableCodeQuality bool
	EnableSecurity    bool
	EnablePerformance bool
	EnableStyle       bool

	MaxRetries int
	Timeout    time.Duration
	BaseDelay  time.Duration

	// FallbackMode short-circuits every external call with canned output.
	// Set when no API key is configured; the core receives it, never
	// computes it.
	FallbackMode bool
}

// DefaultConfig enables all dimensions with the guard's defaults.
func DefaultConfig() Config {
	g := guard.DefaultConfig()
	return Config{
		EnableCodeQuality: true,
		EnableSecurity:    true,
		EnablePerformance: true,
		EnableStyle:       true,
		MaxRetries:        g.MaxRetries,
		Timeout:           g.Timeout,
		BaseDelay:         g.BaseDelay,
	}
}

func (c Config) dimensions() []Dimension {
	var dims []Dimension
	if c.EnableCodeQuality {
		dims = append(dims, DimCodeQuality)
	}
	if c.EnableSecurity {
		dims = append(dims, DimSecurity)
	}
	if c.EnablePerformance {
		dims = append(dims, DimPerformance)
	}
	if c.EnableStyle {
		dims = append(dims, DimStyle)
	}
	return dims
}

func (c Config) guardConfig() guard.Config {
	return guard.Config{
		MaxRetries: c.MaxRetries,
		Timeout:    c.Timeout,
		BaseDelay:  c.BaseDelay,
	}
}

// Health reports whether live analysis is possible.
type Health struct {
	Available    bool `json:"available"`
	FallbackMode bool `json:"fallback_mode"`
}

// Orchestrator runs the configured analysis dimensions concurrently and
// aggregates their partial results. A failing dimension degrades to zero
// issues for that dimension only; the request as a whole never fails.
type Orchestrator struct {
	client llm.Client
	cfg    Config
	log    *slog.Logger
}

// NewOrchestrator builds an orchestrator. A nil client forces fallback mode.
func NewOrchestrator(client llm.Client, cfg Config, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	if client == nil {
		cfg.FallbackMode = true
	}
	return &Orchestrator{client: client, cfg: cfg, log: log}
}

// Health implements the health probe for controllers.
func (o *Orchestrator) Health() Health {
	return Health{
		Available:    o.client != nil && !o.cfg.FallbackMode,
		FallbackMode: o.cfg.FallbackMode,
	}
}

// dimOutcome carries one dimension's degraded-or-parsed result.
type dimOutcome struct {
	issues      []model.CodeIssue
	suggestions []string
}

// Analyze runs the full pipeline for one snippet. It always returns a
// well-formed result, even with zero working external dependencies.
func (o *Orchestrator) Analyze(ctx context.Context, snippet model.CodeSnippet) model.EnhancedAnalysisResult {
	start := time.Now()

	if o.cfg.FallbackMode {
		return o.fallbackResult(snippet, start)
	}

	metrics := ComputeMetrics(snippet)
	dims := o.cfg.dimensions()

	// One concurrent task per enabled dimension, each individually guarded.
	// Results land in a slice indexed by dimension position, so downstream
	// ordering is reproducible regardless of completion order.
	outcomes := make([]dimOutcome, len(dims))
	var wg sync.WaitGroup
	for i, dim := range dims {
		wg.Add(1)
		go func(i int, dim Dimension) {
			defer wg.Done()
			outcomes[i] = o.runDimension(ctx, dim, snippet)
		}(i, dim)
	}
	wg.Wait()

	var issues []model.CodeIssue
	var rawSuggestions []string
	for _, out := range outcomes {
		issues = append(issues, out.issues...)
		rawSuggestions = append(rawSuggestions, out.suggestions...)
	}

	issues = SortIssues(issues)

	result := model.AnalysisResult{
		CodeSnippetID: snippet.ID,
		Language:      snippet.Language,
		Issues:        issues,
		Metrics:       metrics,
	}

	prioritized := GenerateSuggestions(result, "")

	// Plain-text suggestions: prioritized descriptions plus any free-form
	// suggestion lines the model produced, exact-string deduplicated.
	for _, s := range prioritized {
		result.Suggestions = append(result.Suggestions, s.Description)
	}
	result.Suggestions = DeduplicateSuggestions(append(result.Suggestions, rawSuggestions...))

	elapsed := time.Since(start)
	return model.EnhancedAnalysisResult{
		AnalysisResult:         result,
		Categories:             Categorize(issues),
		PrioritizedSuggestions: prioritized,
		Confidence:             o.confidence(issues, metrics, elapsed),
		ProcessingTime:         elapsed,
	}
}

// runDimension executes one guarded generation call and parses its output.
// Every failure path degrades to an empty outcome for this dimension only.
func (o *Orchestrator) runDimension(ctx context.Context, dim Dimension, snippet model.CodeSnippet) dimOutcome {
	prompt := buildPrompt(dim, snippet)

	text, err := guard.Run(ctx, o.cfg.guardConfig(), func(ctx context.Context) (string, error) {
		return o.client.Generate(ctx, prompt, llm.Params{MaxTokens: 1024, Temperature: 0.2})
	})
	if err != nil {
		o.log.Warn("analysis dimension degraded",
			"dimension", dim.String(),
			"snippet_id", snippet.ID,
			"error", err,
		)
		return dimOutcome{}
	}

	return dimOutcome{
		issues:      ParseIssues(text, dim),
		suggestions: ParseSuggestions(text),
	}
}

// confidence combines the average per-issue confidence with processing-time
// and issue-count factors:
//
//	min(1, avg*0.7 + min(1, elapsedMs/10000)*0.2 + min(1, n/20)*0.1)
func (o *Orchestrator) confidence(issues []model.CodeIssue, metrics model.CodeMetrics, elapsed time.Duration) float64 {
	var avg float64
	if len(issues) > 0 {
		var sum float64
		for _, issue := range issues {
			sum += IssueConfidence(issue, metrics)
		}
		avg = sum / float64(len(issues))
	}

	timeFactor := float64(elapsed.Milliseconds()) / 10000
	if timeFactor > 1 {
		timeFactor = 1
	}
	countFactor := float64(len(issues)) / 20
	if countFactor > 1 {
		countFactor = 1
	}

	confidence := avg*0.7 + timeFactor*0.2 + countFactor*0.1
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// fallbackResult is the deterministic degraded-mode answer, confidence 0.3.
func (o *Orchestrator) fallbackResult(snippet model.CodeSnippet, start time.Time) model.EnhancedAnalysisResult {
	o.log.Info("analysis running in fallback mode", "snippet_id", snippet.ID)

	result := fallback.Analysis(snippet)
	return model.EnhancedAnalysisResult{
		AnalysisResult:         result,
		Categories:             Categorize(result.Issues),
		PrioritizedSuggestions: GenerateSuggestions(result, ""),
		Confidence:             0.3,
		ProcessingTime:         time.Since(start),
	}
}
