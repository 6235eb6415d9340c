// Status command reports pending counts, offline mode, and reachability.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "status:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		count, err := a.Engine.PendingCount()
		if err != nil {
			return fmt.Errorf("pending count: %w", err)
		}
		offline := a.Prefs.OfflineMode()
		reachable := false
		if !offline {
			reachable = a.Oracle.Reachable(cmd.Context())
		}

		if flagJSON {
			return printJSON(map[string]any{
				"backend_url":        cliConfig.BackendURL,
				"offline_mode":       offline,
				"reachable":          reachable,
				"pending_soils":      count.Soils,
				"pending_parameters": count.Parameters,
			})
		}

		fmt.Println("backend: ", cliConfig.BackendURL)
		fmt.Println("offline mode:", offline)
		if offline {
			fmt.Println("reachable:   skipped (offline mode)")
		} else {
			fmt.Println("reachable:  ", reachable)
		}
		fmt.Printf("pending:     %d soils, %d readings\n", count.Soils, count.Parameters)
		return nil
	},
}
