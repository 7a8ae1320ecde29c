// ABOUTME: Unit tests for PCM encoder
// ABOUTME: Tests 16-bit and 24-bit PCM encoding
package encode

import (
	"encoding/binary"
	"testing"

	"github.com/soundscape-community/vertical-audio/pkg/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPCM(t *testing.T) {
	tests := []struct {
		bitDepth int
		wantErr  bool
	}{
		{16, false},
		{24, false},
		{8, true},
		{32, true},
	}

	for _, tt := range tests {
		enc, err := NewPCM(tt.bitDepth)
		if tt.wantErr {
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unsupported bit depth")
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.bitDepth, enc.BitDepth())
		assert.Equal(t, tt.bitDepth/8, enc.BytesPerSample())
		assert.NoError(t, enc.Close())
	}
}

func TestPCMEncode16Bit(t *testing.T) {
	enc, err := NewPCM(16)
	require.NoError(t, err)

	samples := []int32{
		0,         // silence
		0x7FFF00,  // max positive 16-bit (left-justified in 24-bit)
		-0x800000, // max negative
		0x123400,
		-0x567800,
	}

	out, err := enc.Encode(samples)
	require.NoError(t, err)
	require.Len(t, out, len(samples)*2)

	for i, sample := range samples {
		assert.Equal(t, audio.SampleToInt16(sample), int16(binary.LittleEndian.Uint16(out[i*2:])), "sample %d", i)
	}
}

func TestPCMEncode24Bit(t *testing.T) {
	enc, err := NewPCM(24)
	require.NoError(t, err)

	samples := []int32{0, 0x7FFFFF, -0x800000, 0x123456, -0x567890}

	out, err := enc.Encode(samples)
	require.NoError(t, err)
	require.Len(t, out, len(samples)*3)

	for i, sample := range samples {
		got := audio.SampleFrom24Bit([3]byte{out[i*3], out[i*3+1], out[i*3+2]})
		assert.Equal(t, sample, got, "sample %d", i)
	}
}

func TestPCMEncodeInto(t *testing.T) {
	enc, err := NewPCM(16)
	require.NoError(t, err)

	dst := make([]byte, 8)
	n := enc.EncodeInto(dst, []int32{0x100, -0x100})
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{0x01, 0x00, 0xFF, 0xFF, 0, 0, 0, 0}, dst)
}
