// Update command overwrites an existing reading.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudtree/fieldsync/pkg/types"
)

var updateParamReading readingFlags

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update an existing reading",
}

var updateParamCmd = &cobra.Command{
	Use:   "param <param-id>",
	Short: "Update a reading's measurements",
	Long: `Update param overwrites a reading's measurements. Only the flags given on
the command line change; unspecified measurements keep their stored values.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "update param:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		existing, err := a.Store.GetParameter(args[0])
		if err != nil {
			return fmt.Errorf("load reading %s: %w", args[0], err)
		}

		req := mergeReading(cmd, *existing, updateParamReading)
		if err := a.Service.UpdateParameter(cmd.Context(), args[0], types.AddParameterRequest{
			SoilID:     existing.SoilID,
			Parameters: req,
		}); err != nil {
			return fmt.Errorf("update reading %s: %w", args[0], err)
		}

		fmt.Println("Reading", args[0], "updated")
		return nil
	},
}

// mergeReading starts from the stored measurements and overlays only the
// flags the user actually set.
func mergeReading(cmd *cobra.Command, existing types.Parameter, flags readingFlags) types.ParameterRequest {
	req := types.ParameterRequest{
		Moisture:    existing.Moisture,
		Temperature: existing.Temperature,
		EC:          existing.EC,
		PH:          existing.PH,
		Nitrogen:    existing.Nitrogen,
		Phosphorus:  existing.Phosphorus,
		Potassium:   existing.Potassium,
		Comments:    existing.Comments,
	}
	if cmd.Flags().Changed("moisture") {
		req.Moisture = flags.moisture
	}
	if cmd.Flags().Changed("temp") {
		req.Temperature = flags.temperature
	}
	if cmd.Flags().Changed("ec") {
		req.EC = flags.ec
	}
	if cmd.Flags().Changed("ph") {
		req.PH = flags.ph
	}
	if cmd.Flags().Changed("nitrogen") {
		req.Nitrogen = flags.nitrogen
	}
	if cmd.Flags().Changed("phosphorus") {
		req.Phosphorus = flags.phosphorus
	}
	if cmd.Flags().Changed("potassium") {
		req.Potassium = flags.potassium
	}
	if cmd.Flags().Changed("comments") {
		req.Comments = flags.comments
	}
	return req
}

func init() {
	updateParamReading.register(updateParamCmd)
	updateCmd.AddCommand(updateParamCmd)
}
