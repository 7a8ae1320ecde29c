// ABOUTME: Entry point for the vertical-audio CLI
// ABOUTME: Executes the cobra root command
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
