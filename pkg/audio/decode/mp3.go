// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes whole MP3 files to sample buffers using go-mp3
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/soundscape-community/vertical-audio/pkg/audio"
)

// mp3FrameBytes is the size of one decoded frame: go-mp3 always emits
// 16-bit little-endian stereo.
const mp3FrameBytes = 4

// MP3 decodes MPEG-1/2 layer III files. The reader is not closed.
type MP3 struct{}

// DecodeStream implements StreamDecoder
func (MP3) DecodeStream(r io.Reader) (*audio.SampleBuffer, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	data, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	// Length is only known when the source is seekable
	if want := decoder.Length(); want >= 0 && int64(len(data)) != want {
		return nil, fmt.Errorf("short read: got %d of %d bytes", len(data), want)
	}

	numFrames := len(data) / mp3FrameBytes
	if numFrames == 0 {
		return nil, errNoFrames
	}

	frames := make([][2]float64, numFrames)
	for i := range frames {
		left := int16(binary.LittleEndian.Uint16(data[i*mp3FrameBytes:]))
		right := int16(binary.LittleEndian.Uint16(data[i*mp3FrameBytes+2:]))
		frames[i] = [2]float64{
			audio.SampleToFloat(audio.SampleFromInt16(left)),
			audio.SampleToFloat(audio.SampleFromInt16(right)),
		}
	}

	return audio.NewSampleBuffer(audio.Format{
		Codec:      "mp3",
		SampleRate: decoder.SampleRate(),
		Channels:   2,
		BitDepth:   16,
	}, frames), nil
}
