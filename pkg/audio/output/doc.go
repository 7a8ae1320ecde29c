// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface with oto, malgo and silent implementations
// Package output provides audio playback backends.
//
// Backends:
//   - Oto: ebitengine/oto, one context per process, 16-bit
//   - Malgo: miniaudio via malgo, ring buffer fed device callback
//   - Discard: accepts and drops samples, for headless use
//
// Example:
//
//	out := output.NewOto(logger)
//	err := out.Open(44100, 1)
//	err = out.Write(samples)
package output
