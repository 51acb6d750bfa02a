// Package debate implements the argument/counter-argument engine and the
// debate session state machine (active -> concluded | abandoned).
package debate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/parley-ai/parley/internal/fallback"
	"github.com/parley-ai/parley/internal/guard"
	"github.com/parley-ai/parley/internal/llm"
	"github.com/parley-ai/parley/internal/model"
	"github.com/parley-ai/parley/internal/store"
)

// ErrInvalidState is returned for operations on a concluded or abandoned
// session. Unlike generation failures, this one does reach the caller.
var ErrInvalidState = errors.New("debate: session is not active")

// Argument confidence defaults. User arguments carry full confidence in
// their own position; generated ones are heuristic.
const (
	aiArgumentConfidence       = 0.7
	fallbackArgumentConfidence = 0.6
	userArgumentConfidence     = 1.0
)

// Config bounds the engine's generation calls.
type Config struct {
	MaxRetries int
	Timeout    time.Duration
	BaseDelay  time.Duration

	// FallbackMode makes every operation answer from the canned set.
	FallbackMode bool
}

// DefaultConfig mirrors the guard defaults.
func DefaultConfig() Config {
	g := guard.DefaultConfig()
	return Config{MaxRetries: g.MaxRetries, Timeout: g.Timeout, BaseDelay: g.BaseDelay}
}

func (c Config) guardConfig() guard.Config {
	return guard.Config{MaxRetries: c.MaxRetries, Timeout: c.Timeout, BaseDelay: c.BaseDelay}
}

// Engine drives debates. Every operation produces a usable response even
// when the text-generation service is unavailable; only unknown ids and
// terminal-state violations surface as errors.
type Engine struct {
	client llm.Client
	cfg    Config
	store  store.DebateStore
	log    *slog.Logger
}

// NewEngine builds a debate engine. A nil client forces fallback mode.
func NewEngine(client llm.Client, cfg Config, debates store.DebateStore, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if client == nil {
		cfg.FallbackMode = true
	}
	return &Engine{client: client, cfg: cfg, store: debates, log: log}
}

// Start opens a debate for a code change: three arguments for and three
// against, generated concurrently (or canned in fallback mode). It creates
// and persists the session record and returns both.
func (e *Engine) Start(ctx context.Context, change model.CodeChange) (model.DebateSession, model.DebateArguments, error) {
	args := e.openingArguments(ctx, change)

	now := time.Now()
	session := model.DebateSession{
		ID:          model.NewID(),
		Topic:       debateTopic(change),
		CodeContext: change,
		Status:      model.DebateActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, content := range args.Arguments {
		session.Arguments = append(session.Arguments, newAIArgument(content, model.ArgumentPro, e.cfg.FallbackMode))
	}
	for _, content := range args.CounterArguments {
		session.Arguments = append(session.Arguments, newAIArgument(content, model.ArgumentCon, e.cfg.FallbackMode))
	}

	if err := e.store.PutDebate(session); err != nil {
		return model.DebateSession{}, model.DebateArguments{}, fmt.Errorf("storing debate: %w", err)
	}
	return session, args, nil
}

// openingArguments produces the pro and con sets. The two generation calls
// run concurrently; each side independently degrades to the canned set on
// failure or when parsing yields nothing.
func (e *Engine) openingArguments(ctx context.Context, change model.CodeChange) model.DebateArguments {
	canned := fallback.DebateArguments()
	if e.cfg.FallbackMode {
		return canned
	}

	type sideResult struct {
		stance model.ArgumentType
		args   []string
	}
	results := make(chan sideResult, 2)

	for _, stance := range []model.ArgumentType{model.ArgumentPro, model.ArgumentCon} {
		go func(stance model.ArgumentType) {
			results <- sideResult{stance: stance, args: e.generateSide(ctx, change, stance)}
		}(stance)
	}

	args := model.DebateArguments{}
	for i := 0; i < 2; i++ {
		r := <-results
		if r.stance == model.ArgumentPro {
			args.Arguments = r.args
		} else {
			args.CounterArguments = r.args
		}
	}

	if len(args.Arguments) == 0 {
		args.Arguments = canned.Arguments
	}
	if len(args.CounterArguments) == 0 {
		args.CounterArguments = canned.CounterArguments
	}
	return args
}

func (e *Engine) generateSide(ctx context.Context, change model.CodeChange, stance model.ArgumentType) []string {
	text, err := e.generate(ctx, buildOpeningPrompt(change, stance))
	if err != nil {
		e.log.Warn("debate opening degraded", "stance", stance.String(), "error", err)
		return nil
	}
	return parseArguments(text)
}

// ContinueContext advances a context-threaded exchange without touching any
// stored session: the user input is appended to UserResponses, a reply is
// generated (canned on any failure) and appended to PreviousArguments.
func (e *Engine) ContinueContext(ctx context.Context, dc model.DebateContext, userInput string) model.DebateResponse {
	dc.UserResponses = append(dc.UserResponses, userInput)

	reply := fallback.DebateReply()
	questions := fallback.FollowUpQuestions()

	if !e.cfg.FallbackMode {
		text, err := e.generate(ctx, buildReplyPrompt(dc, userInput))
		if err != nil {
			e.log.Warn("debate reply degraded", "error", err)
		} else {
			if r := firstParagraph(text); r != "" {
				reply = r
			}
			if qs := parseQuestions(text); len(qs) > 0 {
				questions = qs
			}
		}
	}

	dc.PreviousArguments = append(dc.PreviousArguments, reply)

	return model.DebateResponse{
		Reply:             reply,
		FollowUpQuestions: questions,
		Context:           dc,
	}
}

// Continue advances a stored debate session by one turn. The session must be
// active; the user input and the engine's reply are appended to its argument
// list and the updated session is persisted.
func (e *Engine) Continue(ctx context.Context, id, userInput string) (model.DebateResponse, error) {
	session, err := e.store.GetDebate(id)
	if err != nil {
		return model.DebateResponse{}, err
	}
	if session.Status != model.DebateActive {
		return model.DebateResponse{}, fmt.Errorf("%w: session %s is %s", ErrInvalidState, id, session.Status)
	}

	response := e.ContinueContext(ctx, contextFromSession(session), userInput)

	now := time.Now()
	session.Arguments = append(session.Arguments,
		model.DebateArgument{
			ID:         model.NewID(),
			Content:    userInput,
			Type:       model.ArgumentNeutral,
			Confidence: userArgumentConfidence,
			Source:     model.SourceUser,
			Timestamp:  now,
		},
		newAIArgument(response.Reply, model.ArgumentNeutral, e.cfg.FallbackMode),
	)
	session.UpdatedAt = now

	if err := e.store.PutDebate(session); err != nil {
		return model.DebateResponse{}, fmt.Errorf("storing debate: %w", err)
	}
	return response, nil
}

// AddUserArgument appends a user-authored argument. Allowed only while the
// session is active.
func (e *Engine) AddUserArgument(id, content string, stance model.ArgumentType) (model.DebateArgument, error) {
	session, err := e.store.GetDebate(id)
	if err != nil {
		return model.DebateArgument{}, err
	}
	if session.Status != model.DebateActive {
		return model.DebateArgument{}, fmt.Errorf("%w: session %s is %s", ErrInvalidState, id, session.Status)
	}

	arg := model.DebateArgument{
		ID:         model.NewID(),
		Content:    content,
		Type:       stance,
		Confidence: userArgumentConfidence,
		Source:     model.SourceUser,
		Timestamp:  time.Now(),
	}
	session.Arguments = append(session.Arguments, arg)
	session.UpdatedAt = arg.Timestamp

	if err := e.store.PutDebate(session); err != nil {
		return model.DebateArgument{}, fmt.Errorf("storing debate: %w", err)
	}
	return arg, nil
}

// GenerateCounterArgument produces one AI argument typed opposite to the
// target argument and appends it to the session.
func (e *Engine) GenerateCounterArgument(ctx context.Context, id, targetArgumentID string) (model.DebateArgument, error) {
	session, err := e.store.GetDebate(id)
	if err != nil {
		return model.DebateArgument{}, err
	}
	if session.Status != model.DebateActive {
		return model.DebateArgument{}, fmt.Errorf("%w: session %s is %s", ErrInvalidState, id, session.Status)
	}

	var target *model.DebateArgument
	for i := range session.Arguments {
		if session.Arguments[i].ID == targetArgumentID {
			target = &session.Arguments[i]
			break
		}
	}
	if target == nil {
		return model.DebateArgument{}, fmt.Errorf("argument %s: %w", targetArgumentID, store.ErrNotFound)
	}

	stance := target.Type.Opposite()
	content := fallback.CounterArgument(stance)
	degraded := true

	if !e.cfg.FallbackMode {
		text, err := e.generate(ctx, buildCounterPrompt(session.CodeContext, *target))
		if err != nil {
			e.log.Warn("counter-argument degraded", "session_id", id, "error", err)
		} else if t := firstParagraph(text); t != "" {
			content = t
			degraded = false
		}
	}

	arg := newAIArgument(content, stance, degraded)
	session.Arguments = append(session.Arguments, arg)
	session.UpdatedAt = arg.Timestamp

	if err := e.store.PutDebate(session); err != nil {
		return model.DebateArgument{}, fmt.Errorf("storing debate: %w", err)
	}
	return arg, nil
}

// Conclude moves the session to its terminal concluded state. Irreversible.
func (e *Engine) Conclude(id string, conclusion model.DebateConclusion) (model.DebateSession, error) {
	return e.finish(id, model.DebateConcluded, &conclusion)
}

// Abandon moves the session to its terminal abandoned state. Irreversible.
func (e *Engine) Abandon(id string) (model.DebateSession, error) {
	return e.finish(id, model.DebateAbandoned, nil)
}

func (e *Engine) finish(id string, status model.DebateStatus, conclusion *model.DebateConclusion) (model.DebateSession, error) {
	session, err := e.store.GetDebate(id)
	if err != nil {
		return model.DebateSession{}, err
	}
	if session.Status.Terminal() {
		return model.DebateSession{}, fmt.Errorf("%w: session %s is already %s", ErrInvalidState, id, session.Status)
	}

	session.Status = status
	session.Conclusion = conclusion
	session.UpdatedAt = time.Now()

	if err := e.store.PutDebate(session); err != nil {
		return model.DebateSession{}, fmt.Errorf("storing debate: %w", err)
	}
	e.log.Info("debate finished", "session_id", id, "status", status.String())
	return session, nil
}

// Get returns a stored session.
func (e *Engine) Get(id string) (model.DebateSession, error) {
	return e.store.GetDebate(id)
}

func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	return guard.Run(ctx, e.cfg.guardConfig(), func(ctx context.Context) (string, error) {
		return e.client.Generate(ctx, prompt, llm.Params{MaxTokens: 512, Temperature: 0.7})
	})
}

func newAIArgument(content string, stance model.ArgumentType, degraded bool) model.DebateArgument {
	confidence := aiArgumentConfidence
	if degraded {
		confidence = fallbackArgumentConfidence
	}
	return model.DebateArgument{
		ID:         model.NewID(),
		Content:    content,
		Type:       stance,
		Confidence: confidence,
		Source:     model.SourceAI,
		Timestamp:  time.Now(),
	}
}

// contextFromSession rebuilds the threading context from the stored record:
// AI argument contents become PreviousArguments, user ones UserResponses.
func contextFromSession(session model.DebateSession) model.DebateContext {
	dc := model.DebateContext{CodeChange: session.CodeContext}
	for _, arg := range session.Arguments {
		if arg.Source == model.SourceUser {
			dc.UserResponses = append(dc.UserResponses, arg.Content)
		} else {
			dc.PreviousArguments = append(dc.PreviousArguments, arg.Content)
		}
	}
	return dc
}

func debateTopic(change model.CodeChange) string {
	reason := strings.TrimSpace(change.Reason)
	if reason == "" {
		reason = "proposed code change"
	}
	return "Should this change be applied: " + reason
}

// firstParagraph trims a response down to its leading prose block, dropping
// any trailing question lines (those are parsed separately).
func firstParagraph(raw string) string {
	for _, block := range strings.Split(strings.TrimSpace(raw), "\n\n") {
		lines := strings.Split(block, "\n")
		var keep []string
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" || strings.Contains(line, "?") {
				continue
			}
			keep = append(keep, line)
		}
		if len(keep) > 0 {
			return strings.Join(keep, " ")
		}
	}
	return ""
}
