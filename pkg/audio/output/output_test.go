// ABOUTME: Audio output tests
// ABOUTME: Verifies interface conformance, gain clipping, ring buffer, draining and Discard
package output

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/soundscape-community/vertical-audio/pkg/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendsImplementOutput(t *testing.T) {
	var _ Output = (*Oto)(nil)
	var _ Output = (*Malgo)(nil)
	var _ Output = (*Discard)(nil)
}

func TestApplyGain(t *testing.T) {
	tests := []struct {
		name     string
		input    []int32
		gain     float64
		expected []int32
	}{
		{"unity", []int32{100, -100}, 1.0, []int32{100, -100}},
		{"half", []int32{1000, -1000}, 0.5, []int32{500, -500}},
		{"silence", []int32{1000, -1000}, 0, []int32{0, 0}},
		{"clip high", []int32{audio.Max24Bit}, 2.0, []int32{audio.Max24Bit}},
		{"clip low", []int32{audio.Min24Bit}, 2.0, []int32{audio.Min24Bit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ApplyGain(tt.input, tt.gain))
		})
	}
}

func TestApplyGainDoesNotMutateInput(t *testing.T) {
	in := []int32{10, 20}
	_ = ApplyGain(in, 3)
	assert.Equal(t, []int32{10, 20}, in)
}

func TestRingBuffer(t *testing.T) {
	rb := NewRingBuffer(4)

	assert.Equal(t, 3, rb.Write([]int32{1, 2, 3}))
	assert.Equal(t, 1, rb.Write([]int32{4, 5}), "only one free slot")
	assert.Equal(t, 4, rb.Available())

	out := make([]int32, 6)
	assert.Equal(t, 4, rb.Read(out))
	assert.Equal(t, []int32{1, 2, 3, 4, 0, 0}, out, "underrun is zero-filled")

	assert.Equal(t, 2, rb.Write([]int32{7, 8}))
	out = make([]int32, 2)
	assert.Equal(t, 2, rb.Read(out))
	assert.Equal(t, []int32{7, 8}, out, "wraps around")
}

func TestDiscard(t *testing.T) {
	d := NewDiscard()

	require.Error(t, d.Write([]int32{1}), "write before open")
	require.Error(t, d.Open(0, 1))

	require.NoError(t, d.Open(44100, 1))
	require.NoError(t, d.Open(48000, 2))
	rate, ch := d.Format()
	assert.Equal(t, 44100, rate, "first format sticks")
	assert.Equal(t, 1, ch)

	require.NoError(t, d.Write(make([]int32, 10)))
	require.NoError(t, d.Write(make([]int32, 5)))
	assert.Equal(t, int64(15), d.Written())
	require.NoError(t, d.Drain(context.Background()))
	require.NoError(t, d.Close())
}

func TestWaitDrainedFollowsReader(t *testing.T) {
	rb := NewRingBuffer(400)
	require.Equal(t, 400, rb.Write(make([]int32, 400)))

	// Stand in for a device callback pulling 40 samples per tick
	go func() {
		buf := make([]int32, 40)
		for rb.Available() > 0 {
			rb.Read(buf)
			time.Sleep(time.Millisecond)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, waitDrained(ctx, rb.Available, 10*time.Millisecond))
	assert.Zero(t, rb.Available())
}

func TestWaitDrainedStopsOnCancel(t *testing.T) {
	rb := NewRingBuffer(8)
	rb.Write([]int32{1, 2, 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := waitDrained(ctx, rb.Available, 0)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, rb.Available(), "nothing read while waiting")
}

func TestWaitDrainedCancelDuringTail(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := waitDrained(ctx, func() int { return 0 }, time.Minute)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDrainBeforeOpenReturns(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, NewMalgo(zerolog.Nop()).Drain(ctx))
	require.NoError(t, NewOto(zerolog.Nop()).Drain(ctx))
}
