// Delete commands remove soils and readings.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a soil or reading",
}

var deleteSoilCmd = &cobra.Command{
	Use:   "soil <soil-id>",
	Short: "Delete a soil and all its readings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "delete soil:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		if err := a.Service.DeleteSoil(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete soil %s: %w", args[0], err)
		}
		fmt.Println("Soil", args[0], "deleted")
		return nil
	},
}

var deleteParamCmd = &cobra.Command{
	Use:   "param <param-id>",
	Short: "Delete a single reading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "delete param:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		if err := a.Service.DeleteParameter(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete reading %s: %w", args[0], err)
		}
		fmt.Println("Reading", args[0], "deleted")
		return nil
	},
}

func init() {
	deleteCmd.AddCommand(deleteSoilCmd)
	deleteCmd.AddCommand(deleteParamCmd)
}
