// ABOUTME: IEEE float WAV support
// ABOUTME: Reads 32 and 64-bit float WAV files that the beep decoder rejects
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/soundscape-community/vertical-audio/pkg/audio"
)

// WAV format tags
const (
	wavFormatIEEEFloat  = 3
	wavFormatExtensible = 0xFFFE
)

type wavChunk struct {
	id   string
	body []byte
	// size is the length declared in the chunk header; body is shorter
	// when the file is truncated
	size int
}

// wavChunks splits a RIFF/WAVE file into its top-level chunks.
// ok is false when data is not RIFF/WAVE.
func wavChunks(data []byte) (chunks []wavChunk, ok bool) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, false
	}
	for pos := 12; pos+8 <= len(data); {
		size := int(binary.LittleEndian.Uint32(data[pos+4:]))
		start := pos + 8
		end := start + size
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, wavChunk{id: string(data[pos : pos+4]), body: data[start:end], size: size})
		// Chunks are padded to even sizes
		pos = start + size + size%2
	}
	return chunks, true
}

type wavFloatFormat struct {
	channels   int
	sampleRate int
	bits       int
	blockAlign int
}

// floatFormat reports the format when chunks describe an IEEE float file,
// plain or wrapped in WAVE_FORMAT_EXTENSIBLE
func floatFormat(chunks []wavChunk) (wavFloatFormat, bool) {
	for _, c := range chunks {
		if c.id != "fmt " || len(c.body) < 16 {
			continue
		}
		tag := binary.LittleEndian.Uint16(c.body[0:])
		// The sub format GUID starts with the real format tag
		if tag == wavFormatExtensible && len(c.body) >= 26 {
			tag = binary.LittleEndian.Uint16(c.body[24:])
		}
		if tag != wavFormatIEEEFloat {
			return wavFloatFormat{}, false
		}
		return wavFloatFormat{
			channels:   int(binary.LittleEndian.Uint16(c.body[2:])),
			sampleRate: int(binary.LittleEndian.Uint32(c.body[4:])),
			blockAlign: int(binary.LittleEndian.Uint16(c.body[12:])),
			bits:       int(binary.LittleEndian.Uint16(c.body[14:])),
		}, true
	}
	return wavFloatFormat{}, false
}

// decodeFloatWAV reads the data chunk of a float WAV. Samples outside
// -1..1 are clipped.
func decodeFloatWAV(f wavFloatFormat, chunks []wavChunk) (*audio.SampleBuffer, error) {
	if f.channels < 1 {
		return nil, fmt.Errorf("invalid channel count: %d", f.channels)
	}
	if f.sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", f.sampleRate)
	}
	if f.bits != 32 && f.bits != 64 {
		return nil, fmt.Errorf("unsupported float bit depth: %d", f.bits)
	}
	width := f.bits / 8
	if f.blockAlign != width*f.channels {
		return nil, fmt.Errorf("invalid block align %d for %d channels of %d bits", f.blockAlign, f.channels, f.bits)
	}

	var data *wavChunk
	for i := range chunks {
		if chunks[i].id == "data" {
			data = &chunks[i]
			break
		}
	}
	if data == nil {
		return nil, errors.New("missing data chunk")
	}
	if len(data.body) < data.size {
		return nil, fmt.Errorf("short read: got %d of %d bytes", len(data.body), data.size)
	}

	n := data.size / f.blockAlign
	if n == 0 {
		return nil, errNoFrames
	}

	sample := func(off int) float64 {
		var v float64
		if width == 4 {
			v = float64(math.Float32frombits(binary.LittleEndian.Uint32(data.body[off:])))
		} else {
			v = math.Float64frombits(binary.LittleEndian.Uint64(data.body[off:]))
		}
		return math.Max(-1, math.Min(1, v))
	}

	frames := make([][2]float64, n)
	for i := range frames {
		off := i * f.blockAlign
		left := sample(off)
		right := left
		if f.channels > 1 {
			right = sample(off + width)
		}
		frames[i] = [2]float64{left, right}
	}

	channels := f.channels
	if channels > 2 {
		channels = 2
	}
	return audio.NewSampleBuffer(audio.Format{
		Codec:      "wav",
		SampleRate: f.sampleRate,
		Channels:   channels,
		BitDepth:   f.bits,
	}, frames), nil
}
