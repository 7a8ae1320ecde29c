// ABOUTME: Audio encoder package for packing samples into PCM and WAV
// ABOUTME: Provides the Encoder interface, a PCM encoder and a WAV file writer
// Package encode turns int32 samples in 24-bit range back into bytes.
//
// The PCM encoder feeds audio devices; WriteWAV exports rendered sounds as
// RIFF/WAVE files.
//
// Example:
//
//	enc, err := encode.NewPCM(16)
//	data, err := enc.Encode(samples)
package encode
