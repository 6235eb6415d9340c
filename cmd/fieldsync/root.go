// Root command for the fieldsync CLI.
package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cloudtree/fieldsync/internal/paths"
	"github.com/cloudtree/fieldsync/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool
)

// cliConfig and logger are assembled by PersistentPreRunE so every
// subcommand can use them.
var (
	cliConfig types.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "fieldsync",
	Short: "fieldsync mirrors soil readings locally and syncs them with the collection unit",
	Long: `fieldsync keeps a local SQLite mirror of the soil readings held by a
collection unit backend. Readings recorded while the unit is unreachable are
stored locally under temporary IDs and reconciled on the next sync.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = buildLogger(flagVerbose)

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		dataDir, err := paths.ResolveDataDir(flagDataDir, cfg.GetString(cfgKeyDataDir))
		if err != nil {
			return err
		}

		cliConfig = types.Config{
			BackendURL:     cfg.GetString(cfgKeyBackendURL),
			DataDir:        dataDir,
			RequestTimeout: cfg.GetDuration(cfgKeyRequestTimeout),
			PingTimeout:    cfg.GetDuration(cfgKeyPingTimeout),
		}.WithDefaults()
		return cliConfig.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.fieldsync-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "debug logging to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(soilsCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(offlineCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(resetCmd)
}

// resolveConfigDir returns the configuration directory following the
// flag > env > platform-default precedence.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// buildLogger returns a debug logger on stderr with --verbose, and a no-op
// logger otherwise so command output stays clean.
func buildLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
