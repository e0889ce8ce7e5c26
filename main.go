// Command bazi computes Four Pillars charts and serves the chart API.
//
// Run the HTTP server with:
//
//	bazi serve
//
// The server listens on :8080 by default. PORT and DB_PATH override the
// port and the BoltDB geocode cache location (default: geocodes.db); see
// package config for the remaining variables. A single chart can be printed
// without a server:
//
//	bazi chart --date 1990-05-15 --time 14:30 --city Shanghai --country China
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/charleschoi123/bazi-destiny/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bazi",
	Short: "Four Pillars (BaZi) chart calculator",
	Long: `bazi converts a birth date, time and place into the four sexagenary
pillars, counts the five elements and names the dominant one.

Birth times are converted to Beijing time before any calendar arithmetic.
Use "bazi serve" for the HTTP API and "bazi chart" for a one-off chart.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		zcfg := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "bazi.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chartCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
