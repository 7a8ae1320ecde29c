// ABOUTME: WAV file writer
// ABOUTME: Encodes interleaved samples as a RIFF/WAVE file using beep
package encode

import (
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/soundscape-community/vertical-audio/pkg/audio"
)

// WriteWAV writes interleaved samples in format as a PCM WAV file.
// format.BitDepth must be 16 or 24 and Channels 1 or 2.
func WriteWAV(w io.WriteSeeker, format audio.Format, samples []int32) error {
	if format.BitDepth != 16 && format.BitDepth != 24 {
		return fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", format.BitDepth)
	}
	if format.Channels != 1 && format.Channels != 2 {
		return fmt.Errorf("unsupported channel count: %d", format.Channels)
	}
	if format.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", format.SampleRate)
	}

	bf := beep.Format{
		SampleRate:  beep.SampleRate(format.SampleRate),
		NumChannels: format.Channels,
		Precision:   format.BitDepth / 8,
	}
	if err := wav.Encode(w, &sampleStreamer{samples: samples, channels: format.Channels}, bf); err != nil {
		return fmt.Errorf("failed to write wav: %w", err)
	}
	return nil
}

// sampleStreamer replays interleaved int32 samples as beep frames
type sampleStreamer struct {
	samples  []int32
	channels int
	pos      int
}

func (s *sampleStreamer) Stream(frames [][2]float64) (int, bool) {
	n := 0
	for n < len(frames) && s.pos+s.channels <= len(s.samples) {
		left := audio.SampleToFloat(s.samples[s.pos])
		right := left
		if s.channels == 2 {
			right = audio.SampleToFloat(s.samples[s.pos+1])
		}
		frames[n] = [2]float64{left, right}
		s.pos += s.channels
		n++
	}
	return n, n > 0
}

func (s *sampleStreamer) Err() error { return nil }
