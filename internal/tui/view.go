package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/voyago/voyago/internal/i18n"
)

// Fixed rows around the scrollable transcript.
const (
	headerLines = 2 // title and blank separator
	inputLines  = 4 // bordered input box plus status line
	footerLines = 1
	minViewport = 3
)

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle()
	return vp
}

// refreshViewport rebuilds the transcript content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		switch msg.Role {
		case roleUser:
			b.WriteString(m.styles.RoleUser.Render(i18n.T("chat.prompt") + ":"))
			b.WriteString(" ")
			b.WriteString(msg.Text)
		case roleAssistant:
			b.WriteString(m.styles.RoleAssistant.Render(i18n.T("chat.assistant") + ":"))
			b.WriteString(" ")
			b.WriteString(msg.Text)
		case roleSystem:
			b.WriteString(m.styles.RoleSystem.Render(msg.Text))
		default:
			// Cards arrive pre-rendered.
			b.WriteString(msg.Text)
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}

	header := m.styles.Title.Render(i18n.T("app.name")) + " " +
		m.styles.Tagline.Render(i18n.T("app.tagline"))

	status := ""
	if m.running {
		status = m.styles.Status.Render(spinnerFrames[m.spinnerPos] + " " + m.statusText)
	}

	inputBox := m.styles.InputBox.Width(max(10, m.width-2)).Render(m.input.View())
	footer := m.styles.Footer.Render(i18n.T("tui.help"))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		status,
		inputBox,
		footer,
	)
}
