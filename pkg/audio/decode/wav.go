// ABOUTME: WAV audio decoder
// ABOUTME: Decodes whole WAV files to sample buffers using beep
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/soundscape-community/vertical-audio/pkg/audio"
)

// errNoFrames is returned for files that decode to zero frames
var errNoFrames = errors.New("no audio frames")

// WAV decodes RIFF/WAVE files: integer PCM through beep, IEEE float
// directly. The reader is not closed.
type WAV struct{}

// DecodeStream implements StreamDecoder
func (WAV) DecodeStream(r io.Reader) (*audio.SampleBuffer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read wav: %w", err)
	}
	if chunks, ok := wavChunks(raw); ok {
		if f, isFloat := floatFormat(chunks); isFloat {
			return decodeFloatWAV(f, chunks)
		}
	}

	s, format, err := wav.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to read wav header: %w", err)
	}

	frames, err := readAll(s, s.Len())
	if err != nil {
		return nil, err
	}

	return audio.NewSampleBuffer(audio.Format{
		Codec:      "wav",
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
		BitDepth:   format.Precision * 8,
	}, frames), nil
}

// readAll drains a beep streamer into a slice sized to exactly total frames.
// Anything other than exactly total frames is an error.
func readAll(s beep.Streamer, total int) ([][2]float64, error) {
	if total <= 0 {
		return nil, errNoFrames
	}

	frames := make([][2]float64, total)
	filled := 0
	for filled < total {
		n, ok := s.Stream(frames[filled:])
		filled += n
		if !ok || n == 0 {
			break
		}
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("wav stream error: %w", err)
	}
	if filled != total {
		return nil, fmt.Errorf("short read: got %d of %d frames", filled, total)
	}
	return frames, nil
}
