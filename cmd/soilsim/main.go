// Package main provides soilsim, an in-memory stand-in for the collection
// unit backend. It speaks the same REST surface so the CLI and sync engine
// can be exercised without a field unit on the network. Development tool
// only; nothing persists across restarts.
package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagAddr       string
	flagEchoIDs    bool
	flagSimVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "soilsim",
	Short: "In-memory simulator of the collection unit backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := zap.NewNop()
		if flagSimVerbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			logger = l
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		s := newSimServer(flagEchoIDs, logger)
		logger.Info("soilsim listening", zap.String("addr", flagAddr), zap.Bool("echo_ids", flagEchoIDs))
		fmt.Println("soilsim listening on", flagAddr)
		return s.router().Run(flagAddr)
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagAddr, "addr", ":8000", "listen address")
	rootCmd.Flags().BoolVar(&flagEchoIDs, "echo-ids", true, "echo assigned IDs in create responses (disable to exercise append-order recovery in clients)")
	rootCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
