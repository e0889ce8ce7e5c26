package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/charleschoi123/bazi-destiny/config"
)

var forceInit bool

// configCmd groups configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the YAML configuration file",
}

// configInitCmd writes the default configuration to --config.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long: `Writes the built-in defaults to the --config path. Environment
overrides and API keys are not written; keep secrets in the environment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
