// Package main provides the CLI entrypoint for notifyctl.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	ndbus "github.com/averen/notifyd/internal/dbus"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var (
	globalOpts struct {
		verbose bool
	}
	logger *slog.Logger

	// client is the control connection to the running daemon,
	// established once per invocation.
	client *ndbus.ControlClient
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "notifyctl",
	Short: "Control a running notifyd daemon",
	Long: `notifyctl controls a running notifyd notification daemon over D-Bus.

It can pause and resume notification display, inspect the waiting,
displayed, and history queues, recall archived notifications, and close
everything on screen.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		client, err = ndbus.NewControlClient()
		if err != nil {
			return fmt.Errorf("failed to connect to notifyd: %w", err)
		}
		return nil
	},
}

// setupLogger configures slog based on the verbose flag.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(closeAllCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(displayedCmd)
	rootCmd.AddCommand(setLimitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
