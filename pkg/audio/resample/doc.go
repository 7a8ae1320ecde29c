// ABOUTME: Sample rate conversion for decoded cues
// ABOUTME: Brings buffers to the output device rate before playback or export
// Package resample converts interleaved 24-bit range samples between rates
// by linear interpolation.
//
// The playback engine converts a whole rendered layer at once when a cue's
// rate differs from the device rate:
//
//	r := resample.New(22050, 44100, 1)
//	atDeviceRate := r.Convert(samples)
//
// Resample handles chunked input and keeps its position between calls;
// Reset starts over.
package resample
