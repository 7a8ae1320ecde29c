// ABOUTME: play command
// ABOUTME: Plays one or more cues through the selected audio backend
package main

import (
	"fmt"
	"time"

	"github.com/soundscape-community/vertical-audio/pkg/sound"
	"github.com/spf13/cobra"
)

var (
	flagHeading float64
	flagLength  time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play <up|down>...",
	Short: "Play vertical audio cues",
	Long:  `Plays each named cue in order and waits for it to finish. --length stops a cue early.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().Float64Var(&flagHeading, "heading", 0, "user heading in degrees (ignored by non-3D cues)")
	playCmd.Flags().DurationVar(&flagLength, "length", 0, "stop each cue after this long (0 plays it fully)")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	dirs, err := parseDirections(args)
	if err != nil {
		return err
	}

	e, err := setup(cmd, "")
	if err != nil {
		return err
	}
	defer e.close()

	eng, err := e.engine()
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	heading := &sound.Heading{Degrees: flagHeading}
	for _, dir := range dirs {
		s := e.sound(dir)
		id, err := eng.Play(s, heading, nil)
		if err != nil {
			return fmt.Errorf("playing %s: %w", dir, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Playing %s\n", s)

		if flagLength > 0 {
			select {
			case <-eng.Done(id):
			case <-time.After(flagLength):
				eng.Stop(id)
			}
		}
		<-eng.Done(id)
	}

	stats := eng.Stats()
	e.logger.Debug().
		Int64("started", stats.Started).
		Int64("completed", stats.Completed).
		Int64("stopped", stats.Stopped).
		Msg("Playback finished")
	return nil
}
