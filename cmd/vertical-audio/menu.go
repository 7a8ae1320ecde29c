// ABOUTME: menu command
// ABOUTME: Runs the interactive test menu for triggering cues
package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/soundscape-community/vertical-audio/internal/menu"
	"github.com/soundscape-community/vertical-audio/pkg/sound"
	"github.com/spf13/cobra"
)

// menuLogFile keeps log lines off the TUI when no log file is configured
const menuLogFile = "vertical-audio.log"

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive test menu",
	Long: `Lists "Test Vertical Audio" and "Test Down Audio". Each plays its cue for the configured test length.
Edits to volume, EQ gain, assets_dir and search_paths in the settings file apply to the next cue played.
The test length is read once at start.`,
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, menuLogFile)
	if err != nil {
		return err
	}
	defer e.close()

	if e.store.ConfigFile() != "" {
		e.store.Watch(e.reload)
	}

	eng, err := e.engine()
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	ctrl := menu.NewController(menu.Config{
		Player:     eng,
		Factory:    func(dir sound.Direction) sound.Sound { return e.sound(dir) },
		TestLength: e.store.Config().TestLength,
		Logger:     e.logger,
	})
	defer ctrl.Close()

	return menu.Run(ctrl, tea.WithAltScreen())
}
