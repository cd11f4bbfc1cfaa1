// Package tui provides the Bubble Tea terminal interface for Voyago.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voyago/voyago/internal/agent"
	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/i18n"
)

// Message roles shown in the transcript.
const (
	roleUser      = "user"
	roleAssistant = "assistant"
	roleSystem    = "system"
	roleError     = "error"
	roleCard      = "card" // pre-rendered component card
)

// Bounds on transcript growth.
const maxMessages = 200

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Message is one transcript entry.
type Message struct {
	Role string
	Text string
}

// SessionFactory builds the conversation session, wiring the given
// component sink so streamed components reach the terminal as they arrive.
type SessionFactory func(sink func(component.Component)) (*agent.Session, error)

type componentMsg struct{ c component.Component }

type turnDoneMsg struct {
	reply string
}

type spinMsg struct{}

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	session *agent.Session

	input    textarea.Model
	viewport viewport.Model
	ready    bool

	messages []Message

	running    bool
	statusText string
	spinnerPos int
	cancel     context.CancelFunc

	eventsCh chan component.Component
	doneCh   chan turnDoneMsg

	width  int
	height int

	ctx    context.Context
	styles Styles
	keys   keyMap
}

// New creates a Model. The factory receives the sink that forwards
// streamed components into the program's event loop.
func New(ctx context.Context, factory SessionFactory) (*Model, error) {
	if ctx == nil {
		return nil, errors.New("tui.New: ctx is required")
	}
	if factory == nil {
		return nil, errors.New("tui.New: session factory is required")
	}

	eventsCh := make(chan component.Component, 256)
	session, err := factory(func(c component.Component) {
		select {
		case eventsCh <- c:
		default:
			// Drop when the terminal cannot keep up; session state is the
			// source of truth and still holds every component.
		}
	})
	if err != nil {
		return nil, err
	}

	ta := textarea.New()
	ta.Placeholder = i18n.T("tui.placeholder")
	ta.Focus()
	ta.CharLimit = 2000
	ta.SetHeight(1)
	ta.Prompt = " "
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()

	m := &Model{
		session:  session,
		input:    ta,
		eventsCh: eventsCh,
		ctx:      ctx,
		styles:   DefaultStyles(),
		keys:     defaultKeyMap(),
		width:    100,
		height:   30,
	}
	m.addMessage(Message{Role: roleAssistant, Text: i18n.T("chat.welcome")})
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) addMessage(msg Message) {
	m.messages = append(m.messages, msg)
	if len(m.messages) > maxMessages {
		m.messages = m.messages[len(m.messages)-maxMessages:]
	}
}

// startTurn launches fn on its own goroutine and returns the command
// that relays its events back into the update loop.
func (m *Model) startTurn(fn func(ctx context.Context) string) tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.running = true
	m.spinnerPos = 0
	m.statusText = i18n.T("chat.thinking")
	m.doneCh = make(chan turnDoneMsg, 1)

	done := m.doneCh
	go func() {
		reply := fn(ctx)
		done <- turnDoneMsg{reply: reply}
	}()

	return tea.Batch(m.waitEvent(), m.spinTick())
}

// waitEvent blocks for the next streamed component or turn completion.
func (m *Model) waitEvent() tea.Cmd {
	events := m.eventsCh
	done := m.doneCh
	return func() tea.Msg {
		if done == nil {
			return nil
		}
		select {
		case c := <-events:
			return componentMsg{c: c}
		case d := <-done:
			return d
		}
	}
}

func (m *Model) spinTick() tea.Cmd {
	return tea.Tick(90*time.Millisecond, func(time.Time) tea.Msg { return spinMsg{} })
}
