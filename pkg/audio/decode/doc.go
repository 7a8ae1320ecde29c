// ABOUTME: Audio decoder package for whole-file decoding
// ABOUTME: Provides Decoder interface and implementations for WAV, MP3, FLAC
// Package decode turns bundled audio files into in-memory sample buffers.
//
// Supports: WAV (via beep), MP3 (via go-mp3), FLAC (via mewkiz/flac)
//
// Decoding is synchronous and all-or-nothing: a file either decodes to a
// buffer holding exactly its declared number of frames, or the call returns
// a *DecodeError that matches ErrDecodeFailed.
//
// Example:
//
//	dec := decode.NewFileDecoder(os.DirFS("/path/to/bundle"))
//	buf, err := dec.Decode("Assets/Sounds/VerticalAudio/pitch_up.wav")
package decode
