// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends and the gain helper they share
package output

import (
	"context"
	"time"

	"github.com/soundscape-community/vertical-audio/pkg/audio"
)

const (
	// drainPoll is how often Drain checks a backend's queue
	drainPoll = 5 * time.Millisecond
	// drainTail covers the period the device already took from its queue
	drainTail = 50 * time.Millisecond
)

// Output represents an audio output device
type Output interface {
	// Open initializes the output device. Backends that cannot change format
	// once opened keep their first format; check Format afterwards.
	Open(sampleRate, channels int) error

	// Format returns the open format, or zeros before Open
	Format() (sampleRate, channels int)

	// Write outputs interleaved 24-bit range samples (blocks until queued)
	Write(samples []int32) error

	// Drain blocks until queued samples have been played or ctx ends
	Drain(ctx context.Context) error

	// Close releases output resources. Samples still queued are dropped.
	Close() error
}

// waitDrained polls pending until it reports nothing queued, then waits
// tail for the device to finish the period it already pulled
func waitDrained(ctx context.Context, pending func() int, tail time.Duration) error {
	ticker := time.NewTicker(drainPoll)
	defer ticker.Stop()

	for pending() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	if tail <= 0 {
		return nil
	}
	timer := time.NewTimer(tail)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ApplyGain scales samples by a linear gain with clipping protection
func ApplyGain(samples []int32, gain float64) []int32 {
	result := make([]int32, len(samples))
	for i, sample := range samples {
		scaled := int64(float64(sample) * gain)

		// Clamp to 24-bit range to prevent overflow
		if scaled > audio.Max24Bit {
			scaled = audio.Max24Bit
		} else if scaled < audio.Min24Bit {
			scaled = audio.Min24Bit
		}

		result[i] = int32(scaled)
	}
	return result
}
