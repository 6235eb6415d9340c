// Params command lists the readings of one soil.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params <soil-id>",
	Short: "List the readings of a soil",
	Long: `Params lists all recorded readings for a soil. The soil ID may be a
backend ID (S0001) or a local ID (L_S00001).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "params:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		params, err := a.Service.Parameters(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("list readings of %s: %w", args[0], err)
		}
		return printParameters(params)
	},
}
