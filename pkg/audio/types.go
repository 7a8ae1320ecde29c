// ABOUTME: Audio type definitions
// ABOUTME: Defines audio formats and immutable decoded sample buffers
package audio

import (
	"math"
	"time"
)

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Format describes audio stream format
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// SampleBuffer holds fully decoded PCM audio. Frames are stored as
// normalized stereo pairs in [-1, 1]; mono sources carry the same value in
// both slots. A SampleBuffer never changes after construction.
type SampleBuffer struct {
	format Format
	frames [][2]float64
}

// NewSampleBuffer copies frames into a new buffer
func NewSampleBuffer(format Format, frames [][2]float64) *SampleBuffer {
	owned := make([][2]float64, len(frames))
	copy(owned, frames)
	return &SampleBuffer{format: format, frames: owned}
}

// Format returns the format the buffer was decoded from
func (b *SampleBuffer) Format() Format { return b.format }

// FrameLength returns the number of frames in the buffer
func (b *SampleBuffer) FrameLength() int { return len(b.frames) }

// SampleRate returns frames per second
func (b *SampleBuffer) SampleRate() int { return b.format.SampleRate }

// Channels returns the source channel count (1 or 2)
func (b *SampleBuffer) Channels() int {
	if b.format.Channels < 1 {
		return 1
	}
	if b.format.Channels > 2 {
		return 2
	}
	return b.format.Channels
}

// Duration returns FrameLength / SampleRate. A buffer with no sample rate
// reports zero.
func (b *SampleBuffer) Duration() time.Duration {
	if b.format.SampleRate <= 0 {
		return 0
	}
	seconds := float64(len(b.frames)) / float64(b.format.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// Frame returns frame i as a stereo pair
func (b *SampleBuffer) Frame(i int) [2]float64 {
	return b.frames[i]
}

// Frames returns a copy of all frames
func (b *SampleBuffer) Frames() [][2]float64 {
	out := make([][2]float64, len(b.frames))
	copy(out, b.frames)
	return out
}

// Interleaved returns the buffer as interleaved int32 samples in 24-bit
// range, one value per frame for mono and two for stereo.
func (b *SampleBuffer) Interleaved() []int32 {
	channels := b.Channels()
	out := make([]int32, len(b.frames)*channels)
	for i, f := range b.frames {
		for ch := 0; ch < channels; ch++ {
			out[i*channels+ch] = SampleFromFloat(f[ch])
		}
	}
	return out
}

// SampleFromFloat converts a normalized float sample to 24-bit range with clipping
func SampleFromFloat(sample float64) int32 {
	scaled := math.Round(sample * Max24Bit)
	if scaled > Max24Bit {
		return Max24Bit
	}
	if scaled < Min24Bit {
		return Min24Bit
	}
	return int32(scaled)
}

// SampleToFloat converts a 24-bit range sample to a normalized float
func SampleToFloat(sample int32) float64 {
	return float64(sample) / Max24Bit
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit (or 16-bit) to 16-bit range
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	// Left-shift to position 16-bit value in upper bits
	return int32(sample) << 8
}

// SampleTo24Bit converts int32 to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample int32) [3]byte {
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}
