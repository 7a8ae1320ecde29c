// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, SampleBuffer types and sample conversion functions
// Package audio provides fundamental audio types shared by the decoders,
// sound objects and output backends.
//
// This package defines:
//   - Format: Describes a decoded source (codec, sample rate, channels, bit depth)
//   - SampleBuffer: Immutable in-memory PCM audio, fully decoded
//
// It also provides utilities for converting between sample representations:
//   - normalized float ↔ 24-bit int32
//   - 16-bit ↔ 24-bit conversions
//   - int32 ↔ packed byte conversions
//
// Example:
//
//	buf := audio.NewSampleBuffer(audio.Format{
//	    Codec:      "wav",
//	    SampleRate: 44100,
//	    Channels:   1,
//	    BitDepth:   16,
//	}, frames)
//
//	fmt.Println(buf.FrameLength(), buf.Duration())
package audio
