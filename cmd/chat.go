package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voyago/voyago/internal/agent"
	"github.com/voyago/voyago/internal/component"
	"github.com/voyago/voyago/internal/i18n"
	"github.com/voyago/voyago/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger()

	s, err := buildStack(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	err = tui.Run(ctx, func(sink func(component.Component)) (*agent.Session, error) {
		return s.newSession(agent.WithComponentSink(sink))
	})
	if err != nil {
		return fmt.Errorf("running chat: %w", err)
	}

	fmt.Println(i18n.T("app.goodbye"))
	return nil
}
