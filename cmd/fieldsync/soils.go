// Soils command lists all soils through the data service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var soilsCmd = &cobra.Command{
	Use:   "soils",
	Short: "List soils",
	Long: `Soils lists all soil locations, from the backend when it is reachable and
from the local mirror otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "soils:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		soils, err := a.Service.Soils(cmd.Context())
		if err != nil {
			return fmt.Errorf("list soils: %w", err)
		}
		return printSoils(soils)
	},
}
