// ABOUTME: Asset bundle package
// ABOUTME: Resolves sound files by name across ordered search locations
// Package bundle locates sound assets inside a file system.
//
// A Bundle tries the primary location first (Assets/Sounds/VerticalAudio),
// then a short ordered list of fallbacks ending at the bundle root. Resolved
// paths are remembered for a configurable time; misses are never cached.
//
// The default pitch_up.wav and pitch_down.wav sounds are compiled in and
// available through Embedded.
//
// Example:
//
//	b := bundle.Dir("/opt/soundscape", bundle.Config{})
//	p, err := b.Resolve("pitch_up", "wav")
package bundle
