// Reset command wipes the local database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagResetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the local database",
	Long: `Reset deletes every locally stored soil, reading, ID mapping, and sync
log entry. Unpushed local changes are lost. Requires --force.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagResetForce {
			fmt.Fprintln(os.Stderr, "reset: refusing to wipe local data without --force")
			os.Exit(exitUserError)
		}

		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "reset:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		if err := a.Store.Clear(); err != nil {
			return fmt.Errorf("clear local database: %w", err)
		}
		fmt.Println("local database cleared")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetForce, "force", false, "confirm wiping local data")
}
