package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parley-ai/parley/internal/debate"
	"github.com/parley-ai/parley/internal/model"
	"github.com/parley-ai/parley/internal/store"
)

func testEngine() *debate.Engine {
	cfg := debate.DefaultConfig()
	cfg.FallbackMode = true
	cfg.Timeout = time.Second
	return debate.NewEngine(nil, cfg, store.NewMemory(), nil)
}

func testChange() model.CodeChange {
	return model.CodeChange{
		ID:           "chg-1",
		LineStart:    1,
		LineEnd:      1,
		OriginalCode: "var x = 1",
		ProposedCode: "const x = 1",
		Reason:       "Prefer const",
	}
}

func setupModel(t *testing.T) Model {
	t.Helper()
	m := New(testEngine(), testChange())

	// Simulate window size, then run the start command synchronously.
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = newM.(Model)

	msg := m.startDebate()()
	newM, _ = m.Update(msg)
	return newM.(Model)
}

func TestModelStartsDebate(t *testing.T) {
	m := setupModel(t)

	if m.session.ID == "" {
		t.Fatal("expected a started session")
	}
	if m.session.Status != model.DebateActive {
		t.Errorf("status = %s, want active", m.session.Status)
	}
	if len(m.session.Arguments) != 6 {
		t.Errorf("expected 6 opening arguments, got %d", len(m.session.Arguments))
	}
}

func TestViewRendersTranscript(t *testing.T) {
	m := setupModel(t)

	view := m.View()
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	if !strings.Contains(view, "Prefer const") {
		t.Error("expected view to contain the debate topic")
	}
	if !strings.Contains(view, "[pro]") || !strings.Contains(view, "[con]") {
		t.Error("expected stance labels in the transcript")
	}
}

func TestArgueAppendsToTranscript(t *testing.T) {
	m := setupModel(t)
	before := len(m.session.Arguments)

	msg := m.argue("I remain unconvinced about this")()
	newM, _ := m.Update(msg)
	m = newM.(Model)

	if len(m.session.Arguments) != before+2 {
		t.Errorf("arguments = %d, want %d (user turn + reply)", len(m.session.Arguments), before+2)
	}
	if m.waiting {
		t.Error("waiting flag should clear after a reply")
	}
}

func TestConcludeRendersSummary(t *testing.T) {
	m := setupModel(t)

	msg := m.conclude()()
	newM, _ := m.Update(msg)
	m = newM.(Model)

	if m.session.Status != model.DebateConcluded {
		t.Errorf("status = %s, want concluded", m.session.Status)
	}
	view := m.View()
	if !strings.Contains(view, "Debate concluded") {
		t.Error("expected conclusion banner in view")
	}
}

func TestHelpToggle(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	m = newM.(Model)
	if !m.showHelp {
		t.Fatal("expected help to be shown")
	}

	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("expected help view to contain shortcuts")
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	m = newM.(Model)
	if m.showHelp {
		t.Error("expected help hidden after second toggle")
	}
}

func TestCannotActWhileWaiting(t *testing.T) {
	m := setupModel(t)
	m.waiting = true

	if m.canAct() {
		t.Error("must not accept input while a reply is pending")
	}
}

func TestQuitAbandonsActiveSession(t *testing.T) {
	m := setupModel(t)

	newM, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = newM.(Model)
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	session, err := m.engine.Get(m.session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if session.Status != model.DebateAbandoned {
		t.Errorf("status = %s, want abandoned", session.Status)
	}
}
