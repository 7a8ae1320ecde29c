// ABOUTME: Tests for the test menu model
// ABOUTME: Tests navigation, triggering, status updates and rendering
package menu

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/soundscape-community/vertical-audio/pkg/sound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrigger struct {
	dirs     []sound.Direction
	err      error
	finished chan uuid.UUID
}

func newFakeTrigger() *fakeTrigger {
	return &fakeTrigger{finished: make(chan uuid.UUID, 1)}
}

func (f *fakeTrigger) Trigger(dir sound.Direction) error {
	f.dirs = append(f.dirs, dir)
	return f.err
}

func (f *fakeTrigger) Finished() <-chan uuid.UUID { return f.finished }

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Model)
	}
	return m, cmd
}

func TestItemLabels(t *testing.T) {
	assert.Equal(t, "Test Vertical Audio", ItemTestVertical.String())
	assert.Equal(t, "Test Down Audio", ItemTestDown.String())
	assert.Equal(t, "Quit", ItemQuit.String())

	dir, ok := ItemTestVertical.Direction()
	assert.True(t, ok)
	assert.Equal(t, sound.Up, dir)

	dir, ok = ItemTestDown.Direction()
	assert.True(t, ok)
	assert.Equal(t, sound.Down, dir)

	_, ok = ItemQuit.Direction()
	assert.False(t, ok)
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want Item
	}{
		{"initial", nil, ItemTestVertical},
		{"down once", []string{"down"}, ItemTestDown},
		{"vim keys", []string{"j", "j"}, ItemQuit},
		{"clamped at bottom", []string{"down", "down", "down", "down"}, ItemQuit},
		{"clamped at top", []string{"up", "k"}, ItemTestVertical},
		{"down then up", []string{"down", "up"}, ItemTestVertical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := press(t, NewModel(newFakeTrigger()), tt.keys...)
			assert.Equal(t, tt.want, m.Selected())
		})
	}
}

func TestEnterTriggersSelectedCue(t *testing.T) {
	trig := newFakeTrigger()

	m, cmd := press(t, NewModel(trig), "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, []sound.Direction{sound.Up}, trig.dirs)
	assert.Equal(t, "Playing up sound", m.Status())

	m, _ = press(t, m, "down", "enter")
	assert.Equal(t, []sound.Direction{sound.Up, sound.Down}, trig.dirs)
	assert.Equal(t, "Playing down sound", m.Status())
}

func TestTriggerErrorsShowInStatus(t *testing.T) {
	trig := newFakeTrigger()

	trig.err = ErrAlreadyPlaying
	m, _ := press(t, NewModel(trig), "enter")
	assert.Equal(t, "Audio is already playing", m.Status())
	assert.NotContains(t, m.View(), "failed")

	trig.err = errors.New("failed to play up sound: boom")
	m, _ = press(t, m, "enter")
	assert.Equal(t, "failed to play up sound: boom", m.Status())
	assert.Contains(t, m.View(), "boom")
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name string
		keys []string
	}{
		{"q key", []string{"q"}},
		{"quit item", []string{"down", "down", "enter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trig := newFakeTrigger()
			m, cmd := press(t, NewModel(trig), tt.keys...)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
			assert.Empty(t, trig.dirs)
		})
	}
}

func TestFinishedUpdatesStatus(t *testing.T) {
	trig := newFakeTrigger()
	m := NewModel(trig)

	cmd := m.Init()
	require.NotNil(t, cmd)

	id := uuid.New()
	trig.finished <- id
	msg := cmd()
	assert.Equal(t, finishedMsg(id), msg)

	next, cmd := m.Update(msg)
	assert.Equal(t, "Stopped test sound", next.(Model).Status())
	assert.NotNil(t, cmd)
}

func TestViewListsItems(t *testing.T) {
	view := NewModel(newFakeTrigger()).View()
	for _, item := range Items {
		assert.Contains(t, view, item.String())
	}
	assert.Contains(t, view, "> Test Vertical Audio")
	assert.Contains(t, view, "Ready")
}
