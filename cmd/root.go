package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/brandstudio/promptdesk/internal/config"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "promptdesk",
		Short: "Normalize workflow and record store payloads for image prompt tooling",
		Long: `Promptdesk turns the loosely-typed replies of the prompt workflow backend and the
reference record store into stable shapes: canonical prompt records, canonical
hosted-image links, and a grouped reference catalog with name-to-record lookup.

It can run as an HTTP service or normalize payloads from the command line.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			setupLogging(config.Load().LogLevel, verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newNormalizeCmd())
	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newDriveCmd())

	return cmd
}

func setupLogging(level string, verbose bool) {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
