package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/averen/notifyd/internal/notification"
	"github.com/averen/notifyd/internal/output"
)

var listOpts struct {
	format string
	limit  int
}

// historyCmd lists archived notifications, most recent first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived notifications",
	Long: `List the daemon's notification history, most recent first.

Use 'notifyctl history pop' to recall the most recent entry back onto
the screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := client.History()
		if err != nil {
			return err
		}
		return printRecords(records)
	},
}

// historyPopCmd recalls the most recently archived notification.
var historyPopCmd = &cobra.Command{
	Use:   "pop",
	Short: "Recall the most recent history entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return client.HistoryPop()
	},
}

// displayedCmd lists the currently displayed notifications.
var displayedCmd = &cobra.Command{
	Use:   "displayed",
	Short: "List displayed notifications",
	Long:  `List the notifications currently on screen, in promotion order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := client.Displayed()
		if err != nil {
			return err
		}
		return printRecords(records)
	},
}

// setLimitCmd sets the displayed-notification limit.
var setLimitCmd = &cobra.Command{
	Use:   "set-limit <n>",
	Short: "Set the displayed notification limit",
	Long: `Set the maximum number of simultaneously displayed notifications.
0 means unlimited. The new limit applies on the next promotion pass and
never evicts notifications already on screen.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid limit %q: %w", args[0], err)
		}
		return client.SetDisplayedLimit(uint32(limit))
	},
}

// printRecords writes records to stdout in the selected format.
func printRecords(records []notification.Notification) error {
	if listOpts.limit > 0 && len(records) > listOpts.limit {
		records = records[:listOpts.limit]
	}

	formatter := output.NewFormatter(output.FormatType(listOpts.format), output.DefaultFormatterOptions())
	return formatter.Format(os.Stdout, records)
}

func init() {
	historyCmd.AddCommand(historyPopCmd)

	for _, cmd := range []*cobra.Command{historyCmd, displayedCmd} {
		cmd.Flags().StringVarP(&listOpts.format, "format", "f", string(output.FormatPlain),
			"Output format: plain or json")
		cmd.Flags().IntVarP(&listOpts.limit, "limit", "n", 0,
			"Maximum entries to print (0 = all)")
	}
}
