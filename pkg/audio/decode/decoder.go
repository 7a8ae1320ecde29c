// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for whole-file audio decoders and extension dispatch
package decode

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/soundscape-community/vertical-audio/pkg/audio"
)

// ErrDecodeFailed matches any error produced after a file was located but
// could not be read into a sample buffer.
var ErrDecodeFailed = errors.New("decode failed")

// DecodeError records which file failed to decode and why
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports ErrDecodeFailed for every DecodeError
func (e *DecodeError) Is(target error) bool { return target == ErrDecodeFailed }

// Decoder decodes a whole audio file into memory
type Decoder interface {
	// Decode reads the file at path completely into a sample buffer
	Decode(path string) (*audio.SampleBuffer, error)
}

// StreamDecoder decodes an already opened stream
type StreamDecoder interface {
	DecodeStream(r io.Reader) (*audio.SampleBuffer, error)
}

// FileDecoder opens files on an fs.FS and picks a StreamDecoder by extension
type FileDecoder struct {
	fsys     fs.FS
	decoders map[string]StreamDecoder
}

// NewFileDecoder creates a decoder for wav, mp3 and flac files on fsys
func NewFileDecoder(fsys fs.FS) *FileDecoder {
	return &FileDecoder{
		fsys: fsys,
		decoders: map[string]StreamDecoder{
			".wav":  WAV{},
			".wave": WAV{},
			".mp3":  MP3{},
			".flac": FLAC{},
		},
	}
}

// Register adds or replaces the decoder used for an extension (".ext")
func (d *FileDecoder) Register(ext string, sd StreamDecoder) {
	d.decoders[strings.ToLower(ext)] = sd
}

// Decode implements Decoder
func (d *FileDecoder) Decode(name string) (*audio.SampleBuffer, error) {
	ext := strings.ToLower(path.Ext(name))
	sd, ok := d.decoders[ext]
	if !ok {
		return nil, &DecodeError{Path: name, Err: fmt.Errorf("unsupported audio format: %q", ext)}
	}

	f, err := d.fsys.Open(name)
	if err != nil {
		return nil, &DecodeError{Path: name, Err: err}
	}
	defer func() { _ = f.Close() }()

	buf, err := sd.DecodeStream(f)
	if err != nil {
		return nil, &DecodeError{Path: name, Err: err}
	}
	return buf, nil
}
