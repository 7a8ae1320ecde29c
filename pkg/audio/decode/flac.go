// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes whole FLAC files to sample buffers using mewkiz/flac
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/soundscape-community/vertical-audio/pkg/audio"
)

// FLAC decodes native FLAC streams. The reader is not closed.
type FLAC struct{}

// DecodeStream implements StreamDecoder
func (FLAC) DecodeStream(r io.Reader) (*audio.SampleBuffer, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse flac stream: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	if channels < 1 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}
	if info.BitsPerSample < 4 || info.BitsPerSample > 32 {
		return nil, fmt.Errorf("unsupported bit depth: %d", info.BitsPerSample)
	}
	scale := float64(int64(1) << (info.BitsPerSample - 1))

	frames := make([][2]float64, 0, info.NSamples)
	for {
		f, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac frame error: %w", err)
		}

		left := f.Subframes[0].Samples
		right := left
		if channels > 1 {
			right = f.Subframes[1].Samples
		}
		for i := range left {
			frames = append(frames, [2]float64{
				float64(left[i]) / scale,
				float64(right[i]) / scale,
			})
		}
	}

	// NSamples is zero when the encoder did not record a length
	if info.NSamples != 0 && uint64(len(frames)) != info.NSamples {
		return nil, fmt.Errorf("short read: got %d of %d frames", len(frames), info.NSamples)
	}
	if len(frames) == 0 {
		return nil, errNoFrames
	}

	outChannels := channels
	if outChannels > 2 {
		outChannels = 2
	}
	return audio.NewSampleBuffer(audio.Format{
		Codec:      "flac",
		SampleRate: int(info.SampleRate),
		Channels:   outChannels,
		BitDepth:   int(info.BitsPerSample),
	}, frames), nil
}
