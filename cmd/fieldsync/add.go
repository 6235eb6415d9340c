// Add commands create soils and readings through the data service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudtree/fieldsync/pkg/types"
)

// readingFlags holds the measurement flags shared by the commands that
// record a reading.
type readingFlags struct {
	moisture    float64
	temperature float64
	ec          float64
	ph          float64
	nitrogen    float64
	phosphorus  float64
	potassium   float64
	comments    string
}

// register adds the measurement flags to a command.
func (f *readingFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.moisture, "moisture", 0, "soil humidity (%)")
	cmd.Flags().Float64Var(&f.temperature, "temp", 0, "soil temperature (°C)")
	cmd.Flags().Float64Var(&f.ec, "ec", 0, "electrical conductivity")
	cmd.Flags().Float64Var(&f.ph, "ph", 0, "pH")
	cmd.Flags().Float64Var(&f.nitrogen, "nitrogen", 0, "nitrogen level")
	cmd.Flags().Float64Var(&f.phosphorus, "phosphorus", 0, "phosphorus level")
	cmd.Flags().Float64Var(&f.potassium, "potassium", 0, "potassium level")
	cmd.Flags().StringVar(&f.comments, "comments", "", "free-form comments")
}

// request projects the flag values into a reading request.
func (f *readingFlags) request() types.ParameterRequest {
	return types.ParameterRequest{
		Moisture:    f.moisture,
		Temperature: f.temperature,
		EC:          f.ec,
		PH:          f.ph,
		Nitrogen:    f.nitrogen,
		Phosphorus:  f.phosphorus,
		Potassium:   f.potassium,
		Comments:    f.comments,
	}
}

var (
	addSoilName string
	addSoilLat  float64
	addSoilLon  float64

	addSoilReading  readingFlags
	addParamReading readingFlags
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new soil or reading",
}

var addSoilCmd = &cobra.Command{
	Use:   "soil",
	Short: "Record a new soil location with its first reading",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "add soil:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		localID, err := a.Service.SaveSoil(cmd.Context(), types.CreateSoilRequest{
			Soil: types.SoilRequest{
				Name:      addSoilName,
				Latitude:  addSoilLat,
				Longitude: addSoilLon,
			},
			Parameters: addSoilReading.request(),
		})
		if err != nil {
			return fmt.Errorf("add soil: %w", err)
		}

		if localID == "" {
			fmt.Println("Soil created on backend; run sync to refresh the local mirror")
		} else {
			fmt.Println("Soil saved locally as", localID)
		}
		return nil
	},
}

var addParamCmd = &cobra.Command{
	Use:   "param <soil-id>",
	Short: "Record a new reading for an existing soil",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "add param:", err)
			os.Exit(exitSysError)
		}
		defer a.Close()

		localID, err := a.Service.SaveParameter(cmd.Context(), types.AddParameterRequest{
			SoilID:     args[0],
			Parameters: addParamReading.request(),
		})
		if err != nil {
			return fmt.Errorf("add reading: %w", err)
		}

		if localID == "" {
			fmt.Println("Reading created on backend; run sync to refresh the local mirror")
		} else {
			fmt.Println("Reading saved locally as", localID)
		}
		return nil
	},
}

func init() {
	addSoilCmd.Flags().StringVar(&addSoilName, "name", "", "soil name (required)")
	addSoilCmd.Flags().Float64Var(&addSoilLat, "lat", 0, "latitude")
	addSoilCmd.Flags().Float64Var(&addSoilLon, "lon", 0, "longitude")
	addSoilCmd.MarkFlagRequired("name")
	addSoilReading.register(addSoilCmd)

	addParamReading.register(addParamCmd)

	addCmd.AddCommand(addSoilCmd)
	addCmd.AddCommand(addParamCmd)
}
