// ABOUTME: init command
// ABOUTME: Writes a settings file with default values
package main

import (
	"fmt"
	"os"

	"github.com/soundscape-community/vertical-audio/internal/settings"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a settings file with default values",
	Long:  `Writes default settings to --config, or to the user config directory when --config is not given.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := flagConfig
	if configPath == "" {
		configPath = settings.DefaultPath()
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	if err := settings.WriteDefault(configPath); err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
	return nil
}
