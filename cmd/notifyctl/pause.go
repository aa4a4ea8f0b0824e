package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pauseOpts struct {
	quiet bool // Suppress output, return exit code only
}

// pauseCmd represents the pause command group.
var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Manage pause mode",
	Long: `Manage notifyd's pause mode.

While paused, newly arriving notifications collect in the waiting queue
instead of being displayed. Closing and inserting keep working; only
promotion and eviction decisions are suspended. Turning pause off lets
the next update pass promote everything that accumulated.

Use 'notifyctl pause status' to check the current state.
Use 'notifyctl pause on' to suspend queue management.
Use 'notifyctl pause off' to resume queue management.
Use 'notifyctl pause toggle' to flip between the two.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to showing status
		return pauseStatusRun(cmd, args)
	},
}

var pauseOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Suspend queue management",
	RunE: func(cmd *cobra.Command, args []string) error {
		return client.PauseOn()
	},
}

var pauseOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Resume queue management",
	RunE: func(cmd *cobra.Command, args []string) error {
		return client.PauseOff()
	},
}

var pauseToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle pause mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		paused, err := client.PauseStatus()
		if err != nil {
			return err
		}
		if paused {
			return client.PauseOff()
		}
		return client.PauseOn()
	},
}

var pauseStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pause status",
	RunE:  pauseStatusRun,
}

func pauseStatusRun(cmd *cobra.Command, args []string) error {
	paused, err := client.PauseStatus()
	if err != nil {
		return err
	}

	if pauseOpts.quiet {
		if paused {
			cmd.Root().SilenceErrors = true
			return fmt.Errorf("paused")
		}
		return nil
	}

	if paused {
		fmt.Println("paused")
	} else {
		fmt.Println("running")
	}
	return nil
}

func init() {
	pauseCmd.AddCommand(pauseOnCmd)
	pauseCmd.AddCommand(pauseOffCmd)
	pauseCmd.AddCommand(pauseToggleCmd)
	pauseCmd.AddCommand(pauseStatusCmd)

	for _, cmd := range []*cobra.Command{pauseCmd, pauseStatusCmd} {
		cmd.Flags().BoolVarP(&pauseOpts.quiet, "quiet", "q", false,
			"Suppress output, return exit code only (0=running, 1=paused)")
	}
}
