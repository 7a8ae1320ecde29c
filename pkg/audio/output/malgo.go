// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Uses miniaudio via malgo with a ring buffer drained by the device callback
package output

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog"
	"github.com/soundscape-community/vertical-audio/pkg/audio/encode"
)

// ringCapacityMs is how much audio the ring buffer holds
const ringCapacityMs = 250

// Malgo output implementation using malgo/miniaudio library
type Malgo struct {
	mu         sync.Mutex
	malgoCtx   *malgo.AllocatedContext
	device     *malgo.Device
	sampleRate int
	channels   int
	ready      bool
	ring       *RingBuffer
	logger     zerolog.Logger
}

// RingBuffer provides thread-safe circular buffer for audio samples
type RingBuffer struct {
	buffer   []int32
	readPos  int
	writePos int
	size     int
	count    int
	mu       sync.Mutex
}

// NewRingBuffer creates a ring buffer with given capacity (in samples)
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{
		buffer: make([]int32, capacity),
		size:   capacity,
	}
}

// Write adds as many samples as fit and returns how many were taken
func (rb *RingBuffer) Write(samples []int32) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	written := 0
	for i := 0; i < len(samples) && rb.count < rb.size; i++ {
		rb.buffer[rb.writePos] = samples[i]
		rb.writePos = (rb.writePos + 1) % rb.size
		rb.count++
		written++
	}
	return written
}

// Read fills samples, zero-filling on underrun, and returns how many were real
func (rb *RingBuffer) Read(samples []int32) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	read := 0
	for i := 0; i < len(samples) && rb.count > 0; i++ {
		samples[i] = rb.buffer[rb.readPos]
		rb.readPos = (rb.readPos + 1) % rb.size
		rb.count--
		read++
	}

	for i := read; i < len(samples); i++ {
		samples[i] = 0
	}

	return read
}

// Available returns the number of samples waiting to be read
func (rb *RingBuffer) Available() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// NewMalgo creates a new Malgo output
func NewMalgo(logger zerolog.Logger) *Malgo {
	return &Malgo{
		logger: logger.With().Str("output", "malgo").Logger(),
	}
}

// Open initializes a 16-bit playback device
func (m *Malgo) Open(sampleRate, channels int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil && m.sampleRate == sampleRate && m.channels == channels {
		return nil
	}

	if m.device != nil {
		m.logger.Info().Msgf("Format change detected (%dHz/%dch -> %dHz/%dch), reinitializing device",
			m.sampleRate, m.channels, sampleRate, channels)
		m.closeDevice()
	}

	if m.malgoCtx == nil {
		ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
		if err != nil {
			return fmt.Errorf("failed to initialize malgo context: %w", err)
		}
		m.malgoCtx = ctx
	}

	m.ring = NewRingBuffer(sampleRate * channels * ringCapacityMs / 1000)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = uint32(channels)
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.Alsa.NoMMap = 1

	channelCount := channels
	ring := m.ring
	pcm, _ := encode.NewPCM(16)
	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, _ []byte, frameCount uint32) {
			samples := make([]int32, int(frameCount)*channelCount)
			ring.Read(samples)
			pcm.EncodeInto(pOutput, samples)
		},
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, callbacks)
	if err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("failed to start device: %w", err)
	}

	m.device = device
	m.sampleRate = sampleRate
	m.channels = channels
	m.ready = true

	m.logger.Info().Msgf("Audio output initialized: %dHz, %d channels", sampleRate, channels)

	return nil
}

// Format returns the open format
func (m *Malgo) Format() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sampleRate, m.channels
}

// Write queues samples, waiting for the device to drain when the ring is full
func (m *Malgo) Write(samples []int32) error {
	m.mu.Lock()
	ready, ring := m.ready, m.ring
	m.mu.Unlock()

	if !ready {
		return fmt.Errorf("output not initialized")
	}

	// Poll at a tenth of the ring's duration
	wait := time.Duration(ringCapacityMs/10) * time.Millisecond

	written := 0
	for written < len(samples) {
		n := ring.Write(samples[written:])
		written += n
		if n == 0 {
			time.Sleep(wait)
			m.mu.Lock()
			stillOpen := m.ready && m.ring == ring
			m.mu.Unlock()
			if !stillOpen {
				return fmt.Errorf("output closed during write")
			}
		}
	}

	return nil
}

// Drain waits for the device callback to empty the ring
func (m *Malgo) Drain(ctx context.Context) error {
	m.mu.Lock()
	ready := m.ready
	m.mu.Unlock()
	if !ready {
		return nil
	}

	return waitDrained(ctx, func() int {
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.ready || m.ring == nil {
			return 0
		}
		return m.ring.Available()
	}, drainTail)
}

// Close releases output resources
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeDevice()

	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			m.logger.Warn().Err(err).Msg("malgo context uninit error")
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
	return nil
}

// closeDevice stops and uninitializes the device (must hold m.mu)
func (m *Malgo) closeDevice() {
	if m.device == nil {
		return
	}
	if err := m.device.Stop(); err != nil {
		m.logger.Warn().Err(err).Msg("device stop error")
	}
	m.device.Uninit()
	m.device = nil
	m.ready = false
}
