// ABOUTME: PCM audio encoder
// ABOUTME: Packs int32 samples as little-endian 16-bit or 24-bit PCM
package encode

import (
	"encoding/binary"
	"fmt"

	"github.com/soundscape-community/vertical-audio/pkg/audio"
)

// PCMEncoder packs samples into interleaved little-endian PCM
type PCMEncoder struct {
	bitDepth int
}

// NewPCM creates an encoder for 16 or 24 bits per sample
func NewPCM(bitDepth int) (*PCMEncoder, error) {
	if bitDepth != 16 && bitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", bitDepth)
	}
	return &PCMEncoder{bitDepth: bitDepth}, nil
}

// BitDepth returns the bits written per sample
func (e *PCMEncoder) BitDepth() int { return e.bitDepth }

// BytesPerSample returns the encoded width of one sample
func (e *PCMEncoder) BytesPerSample() int { return e.bitDepth / 8 }

// Encode converts samples to PCM bytes
func (e *PCMEncoder) Encode(samples []int32) ([]byte, error) {
	out := make([]byte, len(samples)*e.BytesPerSample())
	e.EncodeInto(out, samples)
	return out, nil
}

// EncodeInto writes samples into dst, which must hold
// len(samples)*BytesPerSample bytes, and returns the bytes written
func (e *PCMEncoder) EncodeInto(dst []byte, samples []int32) int {
	if e.bitDepth == 24 {
		for i, sample := range samples {
			b := audio.SampleTo24Bit(sample)
			copy(dst[i*3:i*3+3], b[:])
		}
		return len(samples) * 3
	}

	for i, sample := range samples {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(audio.SampleToInt16(sample)))
	}
	return len(samples) * 2
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}
