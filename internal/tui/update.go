package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/i18n"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := max(msg.Height-inputLines-footerLines-headerLines, minViewport)
		if !m.ready {
			m.viewport = newViewport(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.input.SetWidth(max(10, msg.Width-6))
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case componentMsg:
		m.applyComponent(msg.c)
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, m.waitEvent()

	case turnDoneMsg:
		m.finishTurn()
		if msg.reply != "" {
			m.addMessage(Message{Role: roleAssistant, Text: msg.reply})
		}
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, m.input.Focus()

	case spinMsg:
		m.spinnerPos = (m.spinnerPos + 1) % len(spinnerFrames)
		if m.running {
			return m, m.spinTick()
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.running && m.cancel != nil {
			m.cancel()
			m.addMessage(Message{Role: roleSystem, Text: i18n.T("tui.canceled")})
			m.refreshViewport()
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Clear):
		m.session.ClearComponents()
		m.messages = []Message{{Role: roleSystem, Text: i18n.T("tui.cleared")}}
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		return m, m.onRetry()

	case key.Matches(msg, m.keys.Enter):
		return m, m.onEnter()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) onEnter() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	m.input.Reset()

	m.addMessage(Message{Role: roleUser, Text: text})
	m.refreshViewport()
	m.viewport.GotoBottom()

	if m.running {
		m.addMessage(Message{Role: roleSystem, Text: i18n.T("tui.busy")})
		m.refreshViewport()
		return nil
	}

	return m.startTurn(func(ctx context.Context) string {
		reply, _ := m.session.SendMessage(ctx, text)
		return reply
	})
}

func (m *Model) onRetry() tea.Cmd {
	if m.running {
		return nil
	}
	if m.session.LastOperation() == nil {
		m.addMessage(Message{Role: roleSystem, Text: i18n.T("error.no_operation")})
		m.refreshViewport()
		return nil
	}

	m.addMessage(Message{Role: roleSystem, Text: i18n.T("tui.retrying")})
	m.refreshViewport()
	return m.startTurn(func(ctx context.Context) string {
		m.session.RetryLastOperation(ctx)
		return ""
	})
}

// applyComponent routes one streamed component into the transcript.
// Loading components animate the status line instead of stacking cards.
func (m *Model) applyComponent(c component.Component) {
	if c.Kind == component.KindLoading {
		m.statusText = c.Message
		if c.Percent > 0 {
			m.statusText = fmt.Sprintf("%s %d%%", c.Message, c.Percent)
		}
		return
	}

	role := roleCard
	if c.Kind == component.KindError {
		role = roleError
	}
	m.addMessage(Message{Role: role, Text: renderComponent(m.styles, m.width, c)})
}

func (m *Model) finishTurn() {
	m.running = false
	m.statusText = ""
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.doneCh = nil
}
