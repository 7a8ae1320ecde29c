// ABOUTME: info command
// ABOUTME: Loads the requested cues and prints where they came from and their format
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [up|down]...",
	Short: "Show the loaded vertical audio cues",
	Long:  `Resolves and decodes each cue (both when none is named) and prints its source, format, volume and equalization.`,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	dirs, err := parseDirections(args)
	if err != nil {
		return err
	}

	e, err := setup(cmd, "")
	if err != nil {
		return err
	}
	defer e.close()

	out := cmd.OutOrStdout()
	failed := 0
	for _, dir := range dirs {
		s := e.sound(dir)
		fmt.Fprintf(out, "%s\n", s)

		if path, err := e.assets().Resolve(dir.AssetName(), "wav"); err == nil {
			fmt.Fprintf(out, "  Path:     %s\n", path)
		}

		if s.Err() != nil {
			fmt.Fprintf(out, "  Error:    %v\n", s.Err())
			failed++
			continue
		}

		buf := s.GenerateBuffer(0)
		d, _ := s.Duration()
		fmt.Fprintf(out, "  Format:   %dHz %d ch %d-bit\n", buf.SampleRate(), buf.Channels(), buf.Format().BitDepth)
		fmt.Fprintf(out, "  Frames:   %d (%s)\n", buf.FrameLength(), formatDuration(d))
		fmt.Fprintf(out, "  Volume:   %.2f\n", s.Volume())
		if eq := s.EqualizerParams(0); eq != nil {
			fmt.Fprintf(out, "  EQ gain:  %+.1f dB\n", eq.GlobalGain)
		} else {
			fmt.Fprintf(out, "  EQ gain:  none\n")
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d cues failed to load", failed, len(dirs))
	}
	return nil
}
