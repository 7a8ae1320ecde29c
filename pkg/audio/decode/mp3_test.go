// ABOUTME: Tests for the MP3 decoder
// ABOUTME: Decodes silent MPEG-1 layer III frames built in memory
package decode

import (
	"bytes"
	"io"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// 128 kbit/s at 44.1 kHz without padding
	mp3FrameSize = 417
	// Samples per channel in one MPEG-1 layer III frame
	mp3FrameSamples = 1152
)

// silentMP3 returns n frames with empty side info, which decode to silence.
// mono selects single channel mode.
func silentMP3(n int, mono bool) []byte {
	mode := byte(0x00)
	if mono {
		mode = 0xC0
	}
	data := make([]byte, 0, n*mp3FrameSize)
	for i := 0; i < n; i++ {
		f := make([]byte, mp3FrameSize)
		// Sync, MPEG-1, layer III, no CRC, 128 kbit/s, 44.1 kHz
		f[0], f[1], f[2], f[3] = 0xFF, 0xFB, 0x90, mode
		data = append(data, f...)
	}
	return data
}

func TestMP3Decode(t *testing.T) {
	tests := []struct {
		name   string
		frames int
		mono   bool
	}{
		{"stereo", 3, false},
		{"mono is widened to stereo", 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := MP3{}.DecodeStream(bytes.NewReader(silentMP3(tt.frames, tt.mono)))
			require.NoError(t, err)

			assert.Equal(t, tt.frames*mp3FrameSamples, buf.FrameLength())
			assert.Equal(t, 44100, buf.SampleRate())
			assert.Equal(t, 2, buf.Channels())
			assert.Equal(t, "mp3", buf.Format().Codec)
			assert.Equal(t, 16, buf.Format().BitDepth)

			for i := 0; i < buf.FrameLength(); i += 97 {
				f := buf.Frame(i)
				assert.InDelta(t, 0, f[0], 1e-3)
				assert.InDelta(t, 0, f[1], 1e-3)
			}
		})
	}
}

func TestMP3DecodeUnseekableSource(t *testing.T) {
	// Without Seek the decoder cannot report Length; the whole stream is still read
	r := struct{ io.Reader }{bytes.NewReader(silentMP3(2, false))}

	buf, err := MP3{}.DecodeStream(r)
	require.NoError(t, err)
	assert.Equal(t, 2*mp3FrameSamples, buf.FrameLength())
}

func TestMP3DecodeSkipsID3Tag(t *testing.T) {
	// ID3v2.4 header with a 10 byte body of padding
	tag := append([]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 10}, make([]byte, 10)...)
	data := append(tag, silentMP3(1, false)...)

	buf, err := MP3{}.DecodeStream(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, mp3FrameSamples, buf.FrameLength())
}

func TestFileDecoderDispatchesMP3(t *testing.T) {
	dec := NewFileDecoder(fstest.MapFS{"cues/pitch_down.mp3": {Data: silentMP3(1, false)}})

	buf, err := dec.Decode("cues/pitch_down.mp3")
	require.NoError(t, err)
	assert.Equal(t, mp3FrameSamples, buf.FrameLength())
	assert.Equal(t, "mp3", buf.Format().Codec)
}
