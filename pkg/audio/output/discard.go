// ABOUTME: Silent audio output
// ABOUTME: Accepts samples and drops them, for headless runs and CI machines
package output

import (
	"context"
	"fmt"
	"sync"
)

// Discard is an Output that plays nothing. It counts what it was given.
type Discard struct {
	mu         sync.Mutex
	sampleRate int
	channels   int
	written    int64
}

// NewDiscard creates a silent output
func NewDiscard() *Discard {
	return &Discard{}
}

func (d *Discard) Open(sampleRate, channels int) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid output format: %dHz, %d channels", sampleRate, channels)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sampleRate == 0 {
		d.sampleRate = sampleRate
		d.channels = channels
	}
	return nil
}

func (d *Discard) Format() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sampleRate, d.channels
}

func (d *Discard) Write(samples []int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sampleRate == 0 {
		return fmt.Errorf("output not initialized")
	}
	d.written += int64(len(samples))
	return nil
}

// Written returns the total number of samples accepted
func (d *Discard) Written() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.written
}

// Drain returns at once; nothing is ever queued
func (d *Discard) Drain(context.Context) error { return nil }

func (d *Discard) Close() error { return nil }
