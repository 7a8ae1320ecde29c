// ABOUTME: render command
// ABOUTME: Exports a cue as heard, with volume and EQ gain applied, to a WAV file
package main

import (
	"fmt"
	"os"

	"github.com/soundscape-community/vertical-audio/internal/player"
	"github.com/soundscape-community/vertical-audio/pkg/audio/encode"
	"github.com/soundscape-community/vertical-audio/pkg/sound"
	"github.com/spf13/cobra"
)

var (
	flagOutput   string
	flagRate     int
	flagChannels int
	flagBitDepth int
)

var renderCmd = &cobra.Command{
	Use:   "render <up|down>",
	Short: "Write a cue to a WAV file",
	Long:  `Renders the cue with the current volume and EQ gain and writes it as a PCM WAV file.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default: <asset>.wav)")
	renderCmd.Flags().IntVar(&flagRate, "rate", 0, "sample rate (default: the asset's)")
	renderCmd.Flags().IntVar(&flagChannels, "channels", 0, "1 or 2 (default: the asset's)")
	renderCmd.Flags().IntVar(&flagBitDepth, "bit-depth", 16, "16 or 24")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	dir, err := sound.ParseDirection(args[0])
	if err != nil {
		return err
	}

	e, err := setup(cmd, "")
	if err != nil {
		return err
	}
	defer e.close()

	samples, format, err := player.Render(e.sound(dir), flagRate, flagChannels)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", dir, err)
	}
	format.BitDepth = flagBitDepth

	path := flagOutput
	if path == "" {
		path = dir.AssetName() + ".wav"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := encode.WriteWAV(f, format, samples); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dHz %d ch %d-bit, %d frames)\n",
		path, format.SampleRate, format.Channels, format.BitDepth, len(samples)/format.Channels)
	return nil
}
