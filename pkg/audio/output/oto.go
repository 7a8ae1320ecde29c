// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams 16-bit PCM through a persistent oto player fed by a pipe
package output

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog"
	"github.com/soundscape-community/vertical-audio/pkg/audio/encode"
)

// Oto output implementation using oto library
type Oto struct {
	mu         sync.Mutex
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	ready      bool
	pcm        *encode.PCMEncoder
	logger     zerolog.Logger
}

// NewOto creates a new Oto output
func NewOto(logger zerolog.Logger) *Oto {
	pcm, _ := encode.NewPCM(16)
	return &Oto{
		pcm:    pcm,
		logger: logger.With().Str("output", "oto").Logger(),
	}
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	// If already initialized with same format, reuse the existing context
	if o.otoCtx != nil && o.sampleRate == sampleRate && o.channels == channels {
		return nil
	}

	// oto only allows one context per process, so a format change keeps the
	// existing context and callers resample
	if o.otoCtx != nil {
		o.logger.Warn().Msgf("Format change requested (%dHz %dch -> %dHz %dch), keeping existing context",
			o.sampleRate, o.channels, sampleRate, channels)
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	// Create pipe for continuous streaming
	o.pipeReader, o.pipeWriter = io.Pipe()

	// Create persistent player that reads from the pipe
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()

	o.ready = true

	o.logger.Info().Msgf("Audio output initialized: %dHz, %d channels", sampleRate, channels)

	return nil
}

// Format returns the open format
func (o *Oto) Format() (int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sampleRate, o.channels
}

// Write outputs audio samples (blocks until written)
func (o *Oto) Write(samples []int32) error {
	o.mu.Lock()
	ready, w := o.ready, o.pipeWriter
	o.mu.Unlock()

	if !ready {
		return fmt.Errorf("output not initialized")
	}

	out, err := o.pcm.Encode(samples)
	if err != nil {
		return fmt.Errorf("failed to encode samples: %w", err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Drain waits until the oto player has played everything read from the pipe
func (o *Oto) Drain(ctx context.Context) error {
	o.mu.Lock()
	ready := o.ready
	o.mu.Unlock()
	if !ready {
		return nil
	}

	return waitDrained(ctx, func() int {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.player == nil {
			return 0
		}
		return o.player.BufferedSize()
	}, drainTail)
}

// Close releases output resources
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.pipeWriter != nil {
		_ = o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		_ = o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		_ = o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			o.logger.Warn().Err(err).Msg("Failed to suspend oto context")
		}
		o.ready = false
	}
	return nil
}
