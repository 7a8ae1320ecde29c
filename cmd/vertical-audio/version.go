// ABOUTME: version command
// ABOUTME: Prints product, version and manufacturer
package main

import (
	"fmt"

	"github.com/soundscape-community/vertical-audio/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
