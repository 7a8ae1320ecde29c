// ABOUTME: Minimal playback engine for buffer-backed sounds
// ABOUTME: Prepares sounds, renders their layers with volume and EQ gain, streams them to an output
package player

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/soundscape-community/vertical-audio/pkg/audio"
	"github.com/soundscape-community/vertical-audio/pkg/audio/output"
	"github.com/soundscape-community/vertical-audio/pkg/audio/resample"
	"github.com/soundscape-community/vertical-audio/pkg/sound"
)

var (
	// ErrNotPrepared is returned when a sound's Prepare reports failure
	ErrNotPrepared = errors.New("sound failed to prepare")
	// ErrUnsupportedSound is returned for sounds without up-front buffers
	ErrUnsupportedSound = errors.New("sound does not provide buffers")
	// ErrClosed is returned after Close
	ErrClosed = errors.New("engine closed")
)

const (
	// DefaultChunkMs is how much audio is written per output call
	DefaultChunkMs = 10
	// DefaultDrainTimeout bounds the wait for the output to play queued audio
	DefaultDrainTimeout = 2 * time.Second
)

// Config holds engine configuration
type Config struct {
	Output       output.Output
	ChunkMs      int
	DrainTimeout time.Duration
	Logger       zerolog.Logger
}

// Stats tracks engine activity
type Stats struct {
	Started   int64
	Completed int64
	Stopped   int64
	Failed    int64
}

// Engine plays sound objects on a single output. Players share the output
// chunk by chunk; they are not mixed.
type Engine struct {
	out          output.Output
	chunkMs      int
	drainTimeout time.Duration
	logger       zerolog.Logger

	mu      sync.Mutex
	players map[uuid.UUID]*activePlayer
	stats   Stats
	closed  bool

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

type activePlayer struct {
	sound  sound.Sound
	cancel context.CancelFunc
	done   chan struct{}
}

var _ sound.Engine = (*Engine)(nil)

// NewEngine creates an engine. A nil Output plays to output.Discard.
func NewEngine(cfg Config) *Engine {
	out := cfg.Output
	if out == nil {
		out = output.NewDiscard()
	}
	chunkMs := cfg.ChunkMs
	if chunkMs <= 0 {
		chunkMs = DefaultChunkMs
	}
	drainTimeout := cfg.DrainTimeout
	if drainTimeout <= 0 {
		drainTimeout = DefaultDrainTimeout
	}

	return &Engine{
		out:          out,
		chunkMs:      chunkMs,
		drainTimeout: drainTimeout,
		logger:       cfg.Logger.With().Str("component", "engine").Logger(),
		players:      make(map[uuid.UUID]*activePlayer),
	}
}

// OutputFormat reports the open output format; zero values before the first play
func (e *Engine) OutputFormat() audio.Format {
	rate, channels := e.out.Format()
	return audio.Format{Codec: "pcm", SampleRate: rate, Channels: channels, BitDepth: 16}
}

// Play prepares s, renders it and starts streaming. The returned id stops it.
func (e *Engine) Play(s sound.Sound, heading *sound.Heading, location *sound.Location) (uuid.UUID, error) {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return uuid.Nil, ErrClosed
	}

	prepared := false
	s.Prepare(e, func(ok bool) { prepared = ok })
	if !prepared {
		e.countFailed()
		return uuid.Nil, fmt.Errorf("%s: %w", s, ErrNotPrepared)
	}

	gen, ok := s.(sound.SynchronouslyGenerated)
	if !ok {
		e.countFailed()
		return uuid.Nil, fmt.Errorf("%s: %w", s, ErrUnsupportedSound)
	}

	samples, err := e.render(gen)
	if err != nil {
		e.countFailed()
		return uuid.Nil, err
	}

	if err := s.Play(heading, location); err != nil {
		e.countFailed()
		return uuid.Nil, fmt.Errorf("%s: play failed: %w", s, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &activePlayer{sound: s, cancel: cancel, done: make(chan struct{})}
	id := uuid.New()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		cancel()
		return uuid.Nil, ErrClosed
	}
	e.players[id] = p
	e.stats.Started++
	e.mu.Unlock()

	e.logger.Info().Str("player", id.String()).Str("sound", s.String()).Msg("Started player")

	e.wg.Add(1)
	go e.stream(ctx, id, p, samples)

	return id, nil
}

// render mixes every layer of gen at the output's format
func (e *Engine) render(gen sound.SynchronouslyGenerated) ([]int32, error) {
	return renderLayers(gen, func(buf *audio.SampleBuffer) (int, int, error) {
		if err := e.out.Open(buf.SampleRate(), buf.Channels()); err != nil {
			return 0, 0, fmt.Errorf("failed to open output: %w", err)
		}
		rate, channels := e.out.Format()
		return rate, channels, nil
	})
}

// Render prepares s and mixes its layers into interleaved samples without
// playing them. Zero sampleRate or channels keep the first layer's value.
func Render(s sound.Sound, sampleRate, channels int) ([]int32, audio.Format, error) {
	prepared := false
	s.Prepare(nil, func(ok bool) { prepared = ok })
	if !prepared {
		return nil, audio.Format{}, fmt.Errorf("%s: %w", s, ErrNotPrepared)
	}

	gen, ok := s.(sound.SynchronouslyGenerated)
	if !ok {
		return nil, audio.Format{}, fmt.Errorf("%s: %w", s, ErrUnsupportedSound)
	}

	var format audio.Format
	samples, err := renderLayers(gen, func(buf *audio.SampleBuffer) (int, int, error) {
		if format.SampleRate == 0 {
			format = audio.Format{Codec: "pcm", SampleRate: sampleRate, Channels: channels, BitDepth: buf.Format().BitDepth}
			if format.SampleRate <= 0 {
				format.SampleRate = buf.SampleRate()
			}
			if format.Channels <= 0 {
				format.Channels = buf.Channels()
			}
		}
		return format.SampleRate, format.Channels, nil
	})
	if err != nil {
		return nil, audio.Format{}, err
	}
	return samples, format, nil
}

// renderLayers converts each layer to the format chosen by target, applies
// volume and EQ gain, and sums the layers
func renderLayers(gen sound.SynchronouslyGenerated, target func(*audio.SampleBuffer) (int, int, error)) ([]int32, error) {
	var mixed []int32
	for layer := 0; layer < gen.LayerCount(); layer++ {
		buf := gen.GenerateBuffer(layer)
		if buf == nil {
			return nil, fmt.Errorf("%s: layer %d has no buffer: %w", gen, layer, ErrNotPrepared)
		}

		outRate, outChannels, err := target(buf)
		if err != nil {
			return nil, err
		}

		samples := remix(buf, outChannels)
		if buf.SampleRate() != outRate {
			samples = resample.New(buf.SampleRate(), outRate, outChannels).Convert(samples)
		}

		gain := float64(gen.Volume())
		if eq := gen.EqualizerParams(layer); eq != nil {
			gain *= DecibelsToLinear(eq.GlobalGain)
		}
		samples = output.ApplyGain(samples, gain)

		mixed = mix(mixed, samples)
	}
	return mixed, nil
}

// stream writes samples in chunks until done or cancelled, then waits for
// the output to play them. done closes only after that.
func (e *Engine) stream(ctx context.Context, id uuid.UUID, p *activePlayer, samples []int32) {
	defer e.wg.Done()
	defer close(p.done)

	rate, channels := e.out.Format()
	chunk := rate * channels * e.chunkMs / 1000
	if chunk <= 0 {
		chunk = len(samples)
	}

	completed := true
	for off := 0; off < len(samples); off += chunk {
		if ctx.Err() != nil {
			completed = false
			break
		}
		end := off + chunk
		if end > len(samples) {
			end = len(samples)
		}

		e.writeMu.Lock()
		err := e.out.Write(samples[off:end])
		e.writeMu.Unlock()
		if err != nil {
			e.logger.Error().Err(err).Str("player", id.String()).Msg("Output write failed")
			completed = false
			break
		}
	}

	if completed {
		completed = e.drain(ctx, id)
	}

	e.mu.Lock()
	// Stop already removed and counted the player
	_, owned := e.players[id]
	delete(e.players, id)
	completed = completed && owned
	if completed {
		e.stats.Completed++
	}
	e.mu.Unlock()

	if completed {
		e.logger.Info().Str("player", id.String()).Msg("Player finished")
	}
}

// drain waits for the output to play what was written. It reports false
// when the player was cancelled meanwhile.
func (e *Engine) drain(ctx context.Context, id uuid.UUID) bool {
	drainCtx, cancel := context.WithTimeout(ctx, e.drainTimeout)
	defer cancel()

	err := e.out.Drain(drainCtx)
	if err == nil {
		return true
	}
	if ctx.Err() != nil {
		return false
	}
	e.logger.Warn().Err(err).Str("player", id.String()).Msg("Output did not drain in time")
	return true
}

// Stop cancels a player and tells its sound to stop. Unknown ids are ignored.
func (e *Engine) Stop(id uuid.UUID) {
	e.mu.Lock()
	p, ok := e.players[id]
	if ok {
		delete(e.players, id)
		e.stats.Stopped++
		p.cancel()
	}
	e.mu.Unlock()

	if !ok {
		return
	}

	<-p.done
	p.sound.Stop()
	e.logger.Info().Str("player", id.String()).Msg("Stopped player")
}

// Done returns a channel closed when the player finishes or is stopped.
// Unknown ids get an already closed channel.
func (e *Engine) Done(id uuid.UUID) <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.players[id]; ok {
		return p.done
	}
	done := make(chan struct{})
	close(done)
	return done
}

// IsActive reports whether the player is still streaming
func (e *Engine) IsActive(id uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.players[id]
	return ok
}

// Stats returns a snapshot of engine counters
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Close stops all players and closes the output
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	ids := make([]uuid.UUID, 0, len(e.players))
	for id := range e.players {
		ids = append(ids, id)
	}
	e.mu.Unlock()

	for _, id := range ids {
		e.Stop(id)
	}
	e.wg.Wait()

	return e.out.Close()
}

func (e *Engine) countFailed() {
	e.mu.Lock()
	e.stats.Failed++
	e.mu.Unlock()
}

// DecibelsToLinear converts a gain in dB to a linear multiplier
func DecibelsToLinear(db float32) float64 {
	return math.Pow(10, float64(db)/20)
}

// remix converts buffer frames to interleaved samples with the given channel count
func remix(buf *audio.SampleBuffer, channels int) []int32 {
	if channels < 1 {
		channels = 1
	}
	out := make([]int32, buf.FrameLength()*channels)
	for i := 0; i < buf.FrameLength(); i++ {
		f := buf.Frame(i)
		if channels == 1 {
			v := f[0]
			if buf.Channels() == 2 {
				v = (f[0] + f[1]) / 2
			}
			out[i] = audio.SampleFromFloat(v)
			continue
		}
		for ch := 0; ch < channels; ch++ {
			out[i*channels+ch] = audio.SampleFromFloat(f[ch%2])
		}
	}
	return out
}

// mix sums b into a with clipping, growing a as needed
func mix(a, b []int32) []int32 {
	if a == nil {
		return b
	}
	if len(b) > len(a) {
		a, b = b, a
	}
	out := append([]int32(nil), a...)
	for i, s := range b {
		sum := int64(out[i]) + int64(s)
		if sum > audio.Max24Bit {
			sum = audio.Max24Bit
		} else if sum < audio.Min24Bit {
			sum = audio.Min24Bit
		}
		out[i] = int32(sum)
	}
	return out
}
