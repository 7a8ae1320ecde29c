// ABOUTME: In-memory WAV fixtures for tests
// ABOUTME: Builds PCM16 and float RIFF/WAVE files and MapFS bundles without touching disk
package wavtest

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing/fstest"
)

// PCM16 returns a canonical 44-byte-header WAV file holding the given
// interleaved 16-bit samples.
func PCM16(sampleRate, channels int, samples []int16) []byte {
	dataSize := len(samples) * 2
	blockAlign := channels * 2

	var b bytes.Buffer
	b.WriteString("RIFF")
	_ = binary.Write(&b, binary.LittleEndian, uint32(36+dataSize))
	b.WriteString("WAVE")

	b.WriteString("fmt ")
	_ = binary.Write(&b, binary.LittleEndian, uint32(16))
	_ = binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&b, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&b, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&b, binary.LittleEndian, uint32(sampleRate*blockAlign))
	_ = binary.Write(&b, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&b, binary.LittleEndian, uint16(16))

	b.WriteString("data")
	_ = binary.Write(&b, binary.LittleEndian, uint32(dataSize))
	_ = binary.Write(&b, binary.LittleEndian, samples)
	return b.Bytes()
}

// Float32 returns a WAV file with format tag 3 holding interleaved 32-bit
// float samples. extensible wraps the format in WAVE_FORMAT_EXTENSIBLE.
func Float32(sampleRate, channels int, samples []float32, extensible bool) []byte {
	dataSize := len(samples) * 4
	blockAlign := channels * 4

	var fmtChunk bytes.Buffer
	tag := uint16(3)
	if extensible {
		tag = 0xFFFE
	}
	_ = binary.Write(&fmtChunk, binary.LittleEndian, tag)
	_ = binary.Write(&fmtChunk, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&fmtChunk, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&fmtChunk, binary.LittleEndian, uint32(sampleRate*blockAlign))
	_ = binary.Write(&fmtChunk, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&fmtChunk, binary.LittleEndian, uint16(32))
	if extensible {
		_ = binary.Write(&fmtChunk, binary.LittleEndian, uint16(22)) // cbSize
		_ = binary.Write(&fmtChunk, binary.LittleEndian, uint16(32)) // valid bits
		_ = binary.Write(&fmtChunk, binary.LittleEndian, uint32(0))  // channel mask
		// KSDATAFORMAT_SUBTYPE_IEEE_FLOAT
		fmtChunk.Write([]byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
			0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71})
	}

	var b bytes.Buffer
	b.WriteString("RIFF")
	_ = binary.Write(&b, binary.LittleEndian, uint32(4+8+fmtChunk.Len()+8+dataSize))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	_ = binary.Write(&b, binary.LittleEndian, uint32(fmtChunk.Len()))
	b.Write(fmtChunk.Bytes())
	b.WriteString("data")
	_ = binary.Write(&b, binary.LittleEndian, uint32(dataSize))
	_ = binary.Write(&b, binary.LittleEndian, samples)
	return b.Bytes()
}

// Tone returns frames mono samples of a sine at freq Hz and half scale
func Tone(sampleRate, frames int, freq float64) []int16 {
	out := make([]int16, frames)
	for i := range out {
		v := math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
		out[i] = int16(v * 32767 * 0.5)
	}
	return out
}

// Bundle returns a MapFS with one mono tone WAV at each given path
func Bundle(sampleRate, frames int, paths ...string) fstest.MapFS {
	fsys := fstest.MapFS{}
	data := PCM16(sampleRate, 1, Tone(sampleRate, frames, 440))
	for _, p := range paths {
		fsys[p] = &fstest.MapFile{Data: data}
	}
	return fsys
}
