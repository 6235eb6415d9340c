// Init command for the fieldsync CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the config and data directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}

		// Opening the app creates the data directory, the database file, and
		// the default config.yaml and prefs.yaml.
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		fmt.Println("fieldsync initialized")
		fmt.Println("  config: ", configDir)
		fmt.Println("  data:   ", cliConfig.DataDir)
		fmt.Println("  backend:", cliConfig.BackendURL)
		return nil
	},
}
