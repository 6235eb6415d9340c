// Log command shows the sync history.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagLogLimit int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent sync passes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "log:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		entries, err := a.Store.SyncHistory(flagLogLimit)
		if err != nil {
			return fmt.Errorf("sync history: %w", err)
		}

		if flagJSON {
			return printJSON(entries)
		}
		if len(entries) == 0 {
			fmt.Println("no sync passes recorded")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-7s  %3d items  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Status, e.ItemsSynced, e.Message)
		}
		return nil
	},
}

func init() {
	logCmd.Flags().IntVar(&flagLogLimit, "limit", 10, "number of entries to show")
}
