// Package tui implements the Bubble Tea terminal interface for debates.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parley-ai/parley/internal/debate"
	"github.com/parley-ai/parley/internal/model"
)

// Model is the top-level Bubble Tea model for a debate session.
type Model struct {
	engine *debate.Engine
	change model.CodeChange

	session   model.DebateSession
	questions []string

	transcript viewport.Model
	input      textinput.Model

	width  int
	height int
	ready  bool

	waiting  bool
	showHelp bool
	errText  string
}

// Messages produced by engine commands.
type startedMsg struct {
	session model.DebateSession
	err     error
}

type replyMsg struct {
	response model.DebateResponse
	err      error
}

type concludedMsg struct {
	session model.DebateSession
	err     error
}

// New creates a debate TUI around an engine and the change to debate.
func New(engine *debate.Engine, change model.CodeChange) Model {
	input := textinput.New()
	input.Placeholder = "Make your argument..."
	input.CharLimit = 500
	input.Focus()

	return Model{
		engine: engine,
		change: change,
		input:  input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startDebate())
}

func (m Model) startDebate() tea.Cmd {
	return func() tea.Msg {
		session, _, err := m.engine.Start(context.Background(), m.change)
		return startedMsg{session: session, err: err}
	}
}

func (m Model) argue(input string) tea.Cmd {
	return func() tea.Msg {
		response, err := m.engine.Continue(context.Background(), m.session.ID, input)
		return replyMsg{response: response, err: err}
	}
}

func (m Model) conclude() tea.Cmd {
	return func() tea.Msg {
		session, err := m.engine.Conclude(m.session.ID, model.DebateConclusion{
			Summary:        "Concluded by reviewer",
			Recommendation: "review transcript",
			Confidence:     0.5,
		})
		return concludedMsg{session: session, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// topic + input + status bar
		vpHeight := m.height - 7
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.transcript = viewport.New(m.width-4, vpHeight)
			m.ready = true
		} else {
			m.transcript.Width = m.width - 4
			m.transcript.Height = vpHeight
		}
		m.refreshTranscript()
		return m, nil

	case startedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.session = msg.session
		m.refreshTranscript()
		return m, nil

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.questions = msg.response.FollowUpQuestions
		if session, err := m.engine.Get(m.session.ID); err == nil {
			m.session = session
		}
		m.refreshTranscript()
		return m, nil

	case concludedMsg:
		m.waiting = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.session = msg.session
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			if m.session.ID != "" && m.session.Status == model.DebateActive {
				m.engine.Abandon(m.session.ID)
			}
			return m, tea.Quit

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Conclude):
			if m.canAct() {
				m.waiting = true
				return m, m.conclude()
			}
			return m, nil

		case key.Matches(msg, keys.Submit):
			text := strings.TrimSpace(m.input.Value())
			if text != "" && m.canAct() {
				m.input.Reset()
				m.waiting = true
				return m, m.argue(text)
			}
			return m, nil

		case key.Matches(msg, keys.Up):
			m.transcript.ScrollUp(1)
			return m, nil

		case key.Matches(msg, keys.Down):
			m.transcript.ScrollDown(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.transcript, cmd = m.transcript.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) canAct() bool {
	return !m.waiting && m.session.ID != "" && m.session.Status == model.DebateActive
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.transcript.SetContent(m.renderTranscript())
	m.transcript.GotoBottom()
}

func (m Model) renderTranscript() string {
	var b strings.Builder

	for _, arg := range m.session.Arguments {
		b.WriteString(stanceLabel(arg))
		b.WriteByte(' ')
		b.WriteString(argumentStyle.Render(arg.Content))
		b.WriteByte('\n')
	}

	for _, q := range m.questions {
		b.WriteString(questionStyle.Render("  ? " + q))
		b.WriteByte('\n')
	}

	if m.session.Status == model.DebateConcluded && m.session.Conclusion != nil {
		b.WriteByte('\n')
		b.WriteString(concludedStyle.Render("Debate concluded: " + m.session.Conclusion.Summary))
		b.WriteByte('\n')
	}

	return b.String()
}

func stanceLabel(arg model.DebateArgument) string {
	if arg.Source == model.SourceUser {
		return userStyle.Render("[you]")
	}
	switch arg.Type {
	case model.ArgumentPro:
		return proStyle.Render("[pro]")
	case model.ArgumentCon:
		return conStyle.Render("[con]")
	default:
		return neutralStyle.Render("[ai] ")
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	topic := m.session.Topic
	if topic == "" {
		topic = "Starting debate..."
	}

	var parts []string
	parts = append(parts, topicStyle.Render(topic))
	parts = append(parts, transcriptStyle.Width(m.width-2).Render(m.transcript.View()))
	parts = append(parts, m.input.View())
	parts = append(parts, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderStatusBar() string {
	left := " debate"
	if m.session.ID != "" {
		left = fmt.Sprintf(" %s  %d arguments", m.session.Status, len(m.session.Arguments))
	}
	if m.waiting {
		left += "  thinking..."
	}
	if m.errText != "" {
		left += "  " + errorStyle.Render(m.errText)
	}

	right := "enter argue  ctrl+d conclude  esc quit "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(topicStyle.Render("parley debate — Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpItems := []struct{ key, desc string }{
		{"enter", "Submit your argument"},
		{"ctrl+d", "Conclude the debate"},
		{"↑/↓", "Scroll the transcript"},
		{"ctrl+h", "Toggle this help"},
		{"esc", "Quit (abandons an active debate)"},
	}

	for _, item := range helpItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(8).Render(item.key),
			item.desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ctrl+h to close help"))

	return b.String()
}

// Run starts the debate TUI.
func Run(engine *debate.Engine, change model.CodeChange) error {
	m := New(engine, change)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
