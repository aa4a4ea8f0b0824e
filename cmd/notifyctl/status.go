package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd shows the daemon's queue lengths and pause state.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Long:  `Show the daemon's queue lengths and whether queue management is paused.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		waiting, displayed, history, err := client.Counts()
		if err != nil {
			return err
		}
		paused, err := client.PauseStatus()
		if err != nil {
			return err
		}

		state := "running"
		if paused {
			state = "paused"
		}
		fmt.Printf("state:     %s\n", state)
		fmt.Printf("waiting:   %d\n", waiting)
		fmt.Printf("displayed: %d\n", displayed)
		fmt.Printf("history:   %d\n", history)
		return nil
	},
}

// closeAllCmd closes every waiting and displayed notification.
var closeAllCmd = &cobra.Command{
	Use:   "close-all",
	Short: "Close all notifications",
	Long:  `Close every waiting and displayed notification. Closed notifications move to history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return client.CloseAll()
	},
}
