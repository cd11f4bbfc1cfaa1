package tui

import "github.com/charmbracelet/lipgloss"

// Styles collects the lipgloss styles used by the chat view.
type Styles struct {
	Title   lipgloss.Style
	Tagline lipgloss.Style

	RoleUser      lipgloss.Style
	RoleAssistant lipgloss.Style
	RoleSystem    lipgloss.Style
	RoleError     lipgloss.Style

	Card        lipgloss.Style
	CardTitle   lipgloss.Style
	CardMuted   lipgloss.Style
	CardSuccess lipgloss.Style
	CardError   lipgloss.Style

	Status   lipgloss.Style
	InputBox lipgloss.Style
	Footer   lipgloss.Style
}

// DefaultStyles returns the default terminal theme.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#1d2433", Dark: "#f2f2f2"}
	muted := lipgloss.AdaptiveColor{Light: "#4a5568", Dark: "#9aa0a6"}
	accent := lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#2dd4bf"}
	success := lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"}
	danger := lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	border := lipgloss.AdaptiveColor{Light: "#555555", Dark: "#777777"}

	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Tagline: lipgloss.NewStyle().Foreground(muted),

		RoleUser:      lipgloss.NewStyle().Bold(true).Foreground(primary),
		RoleAssistant: lipgloss.NewStyle().Bold(true).Foreground(accent),
		RoleSystem:    lipgloss.NewStyle().Foreground(muted),
		RoleError:     lipgloss.NewStyle().Bold(true).Foreground(danger),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		CardTitle:   lipgloss.NewStyle().Bold(true).Foreground(primary),
		CardMuted:   lipgloss.NewStyle().Foreground(muted),
		CardSuccess: lipgloss.NewStyle().Bold(true).Foreground(success),
		CardError:   lipgloss.NewStyle().Bold(true).Foreground(danger),

		Status: lipgloss.NewStyle().Foreground(accent),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
