package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voyago/voyago/internal/config"
)

// Version information (injected at build time via ldflags).
var (
	AppVersion = "development"
	BuildTime  = "unknown"
	GitCommit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runVersion(cmd)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Voyago %s\n", AppVersion)
	fmt.Fprintf(out, "Build Time: %s\n", BuildTime)
	fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
	fmt.Fprintln(out)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "  Language: %s\n", cfg.Language)
	fmt.Fprintf(out, "  Fault probability: %.2f\n", cfg.FaultProbability)
	fmt.Fprintf(out, "  Max retries: %d\n", cfg.MaxRetries)
	fmt.Fprintf(out, "  Provider: %s\n", cfg.Provider)
	if dbPath, err := cfg.DatabasePath(); err == nil {
		fmt.Fprintf(out, "  Database: %s\n", dbPath)
	}

	if cfg.AssistEnabled() {
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			key = os.Getenv("GOOGLE_API_KEY")
		}
		if len(key) >= 8 {
			fmt.Fprintf(out, "  API key: %s...%s (configured)\n", key[:4], key[len(key)-4:])
		} else {
			fmt.Fprintln(out, "  API key: not set")
		}
	}

	return nil
}
