// ABOUTME: Sound object package
// ABOUTME: Sound contracts plus the vertical audio cue that implements them
// Package sound defines what a playback engine needs from a sound and
// provides Vertical, a short non-positional rising or falling pitch cue.
//
// A Vertical decodes its asset once when it is constructed. If the asset is
// missing or corrupt the failure is logged, Err reports it, and Prepare
// reports false; the sound never panics.
//
// Example:
//
//	v := sound.NewVertical(sound.Up, sound.VerticalConfig{Settings: store})
//	v.Prepare(engine, func(ok bool) { ... })
package sound
