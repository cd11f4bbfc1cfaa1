// Package cmd provides the voyago CLI commands.
//
// Commands:
//   - chat: interactive terminal chat with streamed travel components
//   - serve: HTTP API server with SSE streaming
//   - version: build and configuration information
//
// Running voyago without a subcommand starts chat mode.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/voyago/voyago/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "voyago",
	Short: "Voyago - travel assistant demo with simulated network chaos",
	Long: `Voyago is a travel booking assistant that streams flight, hotel and
booking results as live UI components while a resilience layer injects
faults, latency, retries and circuit breaking underneath.

Running voyago without arguments starts the interactive chat.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger. DEBUG in the environment raises
// the level, VOYAGO_LOG_JSON switches to JSON output.
func newLogger() log.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	return log.New(log.Config{
		Level: level,
		JSON:  os.Getenv("VOYAGO_LOG_JSON") != "",
	})
}
