package debate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/parley-ai/parley/internal/llm"
	"github.com/parley-ai/parley/internal/model"
	"github.com/parley-ai/parley/internal/store"
)

type stubLLM struct {
	fn func(ctx context.Context, prompt string) (string, error)
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, _ llm.Params) (string, error) {
	return s.fn(ctx, prompt)
}

func testChange() model.CodeChange {
	return model.CodeChange{
		ID:           "chg-1",
		LineStart:    1,
		LineEnd:      3,
		OriginalCode: "function old(){}",
		ProposedCode: "const f=()=>{}",
		Reason:       "Modernize",
	}
}

func fastConfig() Config {
	return Config{MaxRetries: 0, Timeout: 100 * time.Millisecond, BaseDelay: time.Millisecond}
}

func fallbackEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := fastConfig()
	cfg.FallbackMode = true
	return NewEngine(nil, cfg, store.NewMemory(), nil)
}

func TestStartFallbackExactlyThreePerSide(t *testing.T) {
	e := fallbackEngine(t)

	session, args, err := e.Start(context.Background(), testChange())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if len(args.Arguments) != 3 {
		t.Errorf("arguments = %d, want 3", len(args.Arguments))
	}
	if len(args.CounterArguments) != 3 {
		t.Errorf("counter arguments = %d, want 3", len(args.CounterArguments))
	}
	if session.Status != model.DebateActive {
		t.Errorf("status = %s, want active", session.Status)
	}
	if len(session.Arguments) != 6 {
		t.Errorf("session arguments = %d, want 6", len(session.Arguments))
	}
	if !strings.Contains(session.Topic, "Modernize") {
		t.Errorf("topic = %q", session.Topic)
	}
}

func TestStartGeneratesBothSidesConcurrently(t *testing.T) {
	client := &stubLLM{fn: func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "in favor of") {
			return "1. Cleaner syntax reduces cognitive load considerably.\n2. Arrow functions avoid this-binding pitfalls entirely.", nil
		}
		return "1. The rewrite may break callers relying on hoisting behavior.", nil
	}}
	e := NewEngine(client, fastConfig(), store.NewMemory(), nil)

	_, args, err := e.Start(context.Background(), testChange())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(args.Arguments) != 2 {
		t.Errorf("pro arguments = %d, want 2: %v", len(args.Arguments), args.Arguments)
	}
	if len(args.CounterArguments) != 1 {
		t.Errorf("con arguments = %d, want 1: %v", len(args.CounterArguments), args.CounterArguments)
	}
}

func TestStartOneSideFailsFallsBackForThatSide(t *testing.T) {
	client := &stubLLM{fn: func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "against") {
			return "", errors.New("service down")
		}
		return "1. A generated argument in favor, comfortably long enough.", nil
	}}
	e := NewEngine(client, fastConfig(), store.NewMemory(), nil)

	_, args, err := e.Start(context.Background(), testChange())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(args.Arguments) != 1 {
		t.Errorf("pro side should keep generated output, got %v", args.Arguments)
	}
	if len(args.CounterArguments) != 3 {
		t.Errorf("failed con side should use the canned set of 3, got %d", len(args.CounterArguments))
	}
}

func TestContinueContextMonotonicAppend(t *testing.T) {
	e := fallbackEngine(t)
	dc := model.DebateContext{CodeChange: testChange()}

	first := e.ContinueContext(context.Background(), dc, "I disagree with the premise")
	if len(first.Context.PreviousArguments) != 1 {
		t.Fatalf("after turn 1: previous arguments = %d, want 1", len(first.Context.PreviousArguments))
	}
	if len(first.Context.UserResponses) != 1 {
		t.Fatalf("after turn 1: user responses = %d, want 1", len(first.Context.UserResponses))
	}

	second := e.ContinueContext(context.Background(), first.Context, "Still not convinced")
	if len(second.Context.PreviousArguments) != 2 {
		t.Errorf("after turn 2: previous arguments = %d, want 2", len(second.Context.PreviousArguments))
	}
	if len(second.Context.UserResponses) != 2 {
		t.Errorf("after turn 2: user responses = %d, want 2", len(second.Context.UserResponses))
	}
	if second.Reply == "" {
		t.Error("reply must never be empty")
	}
}

func TestContinueStoredSession(t *testing.T) {
	e := fallbackEngine(t)
	session, _, err := e.Start(context.Background(), testChange())
	if err != nil {
		t.Fatal(err)
	}

	before := len(session.Arguments)
	resp, err := e.Continue(context.Background(), session.ID, "What about stack traces?")
	if err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if resp.Reply == "" {
		t.Error("reply must never be empty")
	}

	after, _ := e.Get(session.ID)
	if len(after.Arguments) != before+2 {
		t.Errorf("arguments = %d, want %d (user turn + reply)", len(after.Arguments), before+2)
	}
}

func TestContinueUnknownSession(t *testing.T) {
	e := fallbackEngine(t)
	_, err := e.Continue(context.Background(), "nope", "hello")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestContinueRejectedWhenNotActive(t *testing.T) {
	e := fallbackEngine(t)
	session, _, _ := e.Start(context.Background(), testChange())

	if _, err := e.Abandon(session.ID); err != nil {
		t.Fatalf("Abandon: %v", err)
	}

	_, err := e.Continue(context.Background(), session.ID, "too late")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestAddUserArgument(t *testing.T) {
	e := fallbackEngine(t)
	session, _, _ := e.Start(context.Background(), testChange())

	arg, err := e.AddUserArgument(session.ID, "Hoisting differences will bite us", model.ArgumentCon)
	if err != nil {
		t.Fatalf("AddUserArgument: %v", err)
	}
	if arg.Source != model.SourceUser {
		t.Errorf("source = %s, want user", arg.Source)
	}
	if arg.Type != model.ArgumentCon {
		t.Errorf("type = %s, want con", arg.Type)
	}

	after, _ := e.Get(session.ID)
	if len(after.Arguments) != 7 {
		t.Errorf("arguments = %d, want 7", len(after.Arguments))
	}
}

func TestAddUserArgumentRejectedOnTerminalSession(t *testing.T) {
	e := fallbackEngine(t)
	session, _, _ := e.Start(context.Background(), testChange())
	if _, err := e.Conclude(session.ID, model.DebateConclusion{Summary: "done"}); err != nil {
		t.Fatal(err)
	}

	_, err := e.AddUserArgument(session.ID, "late argument", model.ArgumentPro)
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestGenerateCounterArgumentOppositeStance(t *testing.T) {
	e := fallbackEngine(t)
	session, _, _ := e.Start(context.Background(), testChange())

	var proArg model.DebateArgument
	for _, a := range session.Arguments {
		if a.Type == model.ArgumentPro {
			proArg = a
			break
		}
	}

	counter, err := e.GenerateCounterArgument(context.Background(), session.ID, proArg.ID)
	if err != nil {
		t.Fatalf("GenerateCounterArgument: %v", err)
	}
	if counter.Type != model.ArgumentCon {
		t.Errorf("counter type = %s, want con", counter.Type)
	}
	if counter.Source != model.SourceAI {
		t.Errorf("source = %s, want ai", counter.Source)
	}
	if counter.Content == "" {
		t.Error("counter content must never be empty")
	}
}

func TestGenerateCounterArgumentUnknownTarget(t *testing.T) {
	e := fallbackEngine(t)
	session, _, _ := e.Start(context.Background(), testChange())

	_, err := e.GenerateCounterArgument(context.Background(), session.ID, "missing-arg")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConcludeIsTerminal(t *testing.T) {
	e := fallbackEngine(t)
	session, _, _ := e.Start(context.Background(), testChange())

	concluded, err := e.Conclude(session.ID, model.DebateConclusion{
		Summary:        "Apply the change",
		Recommendation: "approve",
		Confidence:     0.8,
	})
	if err != nil {
		t.Fatalf("Conclude: %v", err)
	}
	if concluded.Status != model.DebateConcluded {
		t.Errorf("status = %s", concluded.Status)
	}
	if concluded.Conclusion == nil || concluded.Conclusion.Summary != "Apply the change" {
		t.Errorf("conclusion = %+v", concluded.Conclusion)
	}

	// A second conclude must fail with InvalidState, nothing else.
	if _, err := e.Conclude(session.ID, model.DebateConclusion{}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
	// And abandon cannot resurrect it.
	if _, err := e.Abandon(session.ID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestAbandonIsTerminal(t *testing.T) {
	e := fallbackEngine(t)
	session, _, _ := e.Start(context.Background(), testChange())

	abandoned, err := e.Abandon(session.ID)
	if err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if abandoned.Status != model.DebateAbandoned {
		t.Errorf("status = %s", abandoned.Status)
	}
	if _, err := e.Abandon(session.ID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestReplyGenerationFailureDegradesToFallback(t *testing.T) {
	client := &stubLLM{fn: func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("boom")
	}}
	e := NewEngine(client, fastConfig(), store.NewMemory(), nil)

	resp := e.ContinueContext(context.Background(), model.DebateContext{CodeChange: testChange()}, "input")
	if resp.Reply == "" {
		t.Error("reply must fall back to canned text")
	}
	if len(resp.FollowUpQuestions) == 0 {
		t.Error("follow-ups must fall back to canned questions")
	}
}
