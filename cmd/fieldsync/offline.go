// Offline command toggles the persisted forced-offline preference.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var offlineCmd = &cobra.Command{
	Use:   "offline on|off",
	Short: "Force or release offline mode",
	Long: `Offline forces fieldsync to behave as if the backend were unreachable:
all writes land in the local mirror and no network calls are made. The
preference persists until turned off.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var offline bool
		switch args[0] {
		case "on":
			offline = true
		case "off":
			offline = false
		default:
			fmt.Fprintf(os.Stderr, "offline: expected 'on' or 'off', got %q\n", args[0])
			os.Exit(exitUserError)
		}

		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "offline:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		if err := a.Prefs.SetOfflineMode(offline); err != nil {
			return fmt.Errorf("set offline mode: %w", err)
		}
		fmt.Println("offline mode:", args[0])
		return nil
	},
}
