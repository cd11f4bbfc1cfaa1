package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive chat and blocks until the user quits.
func Run(ctx context.Context, factory SessionFactory) error {
	m, err := New(ctx, factory)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}
