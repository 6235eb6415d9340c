// Sync command reconciles the local mirror with the backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagSyncPush bool
	flagSyncPull bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the local mirror with the backend",
	Long: `Sync pushes pending local changes to the backend and pulls the remote
data set into the local mirror. With --push or --pull only that direction
runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagSyncPush && flagSyncPull {
			fmt.Fprintln(os.Stderr, "sync: --push and --pull are mutually exclusive")
			os.Exit(exitUserError)
		}

		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "sync:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		if !a.Oracle.EffectiveOnline(cmd.Context()) {
			if a.Prefs.OfflineMode() {
				return fmt.Errorf("offline mode is forced on; run 'fieldsync offline off' first")
			}
			return fmt.Errorf("backend %s is not reachable", cliConfig.BackendURL)
		}

		ctx := cmd.Context()
		switch {
		case flagSyncPush:
			return printSyncResult(a.Engine.SyncToServer(ctx))
		case flagSyncPull:
			return printSyncResult(a.Engine.SyncFromServer(ctx))
		default:
			return printSyncResult(a.Engine.FullSync(ctx))
		}
	},
}

func init() {
	syncCmd.Flags().BoolVar(&flagSyncPush, "push", false, "only push pending local changes")
	syncCmd.Flags().BoolVar(&flagSyncPull, "pull", false, "only pull the remote data set")
}
