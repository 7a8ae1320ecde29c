// ABOUTME: Tests for bundled asset resolution
// ABOUTME: Tests search order, fallbacks, caching and the embedded sounds
package bundle

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/soundscape-community/vertical-audio/internal/wavtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSearchOrder(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{
			name:  "primary location",
			files: []string{"Assets/Sounds/VerticalAudio/pitch_up.wav", "pitch_up.wav"},
			want:  "Assets/Sounds/VerticalAudio/pitch_up.wav",
		},
		{
			name:  "first fallback",
			files: []string{"Assets/Sounds/pitch_up.wav", "VerticalAudio/pitch_up.wav"},
			want:  "Assets/Sounds/pitch_up.wav",
		},
		{
			name:  "sounds directory",
			files: []string{"Sounds/VerticalAudio/pitch_up.wav"},
			want:  "Sounds/VerticalAudio/pitch_up.wav",
		},
		{
			name:  "vertical audio directory",
			files: []string{"VerticalAudio/pitch_up.wav", "pitch_up.wav"},
			want:  "VerticalAudio/pitch_up.wav",
		},
		{
			name:  "bundle root",
			files: []string{"pitch_up.wav"},
			want:  "pitch_up.wav",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(wavtest.Bundle(8000, 80, tt.files...), Config{})
			got, err := b.Resolve("pitch_up", "wav")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	b := New(wavtest.Bundle(8000, 80, "Other/pitch_up.wav", "Assets/Sounds/pitch_down.wav"), Config{})

	_, err := b.Resolve("pitch_up", "wav")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAssetNotFound))
	assert.Contains(t, err.Error(), "pitch_up.wav")
}

func TestResolveSkipsDirectories(t *testing.T) {
	fsys := fstest.MapFS{
		"Assets/Sounds/VerticalAudio/pitch_up.wav/readme": {Data: []byte("a directory, not a file")},
		"VerticalAudio/pitch_up.wav":                      {Data: wavtest.PCM16(8000, 1, []int16{1})},
	}
	got, err := New(fsys, Config{}).Resolve("pitch_up", "wav")
	require.NoError(t, err)
	assert.Equal(t, "VerticalAudio/pitch_up.wav", got)
}

func TestResolveCustomSearchPaths(t *testing.T) {
	fsys := wavtest.Bundle(8000, 80, "custom/pitch_down.wav", "pitch_down.wav")
	b := New(fsys, Config{SearchPaths: []string{"custom"}})

	got, err := b.Resolve("pitch_down", "wav")
	require.NoError(t, err)
	assert.Equal(t, "custom/pitch_down.wav", got)
	assert.Equal(t, []string{"custom"}, b.SearchPaths())
}

func TestResolveCachesHitsOnly(t *testing.T) {
	fsys := wavtest.Bundle(8000, 80, "Sounds/VerticalAudio/pitch_up.wav")
	b := New(fsys, Config{CacheTTL: -1})

	got, err := b.Resolve("pitch_up", "wav")
	require.NoError(t, err)
	assert.Equal(t, "Sounds/VerticalAudio/pitch_up.wav", got)

	_, err = b.Resolve("pitch_down", "wav")
	require.Error(t, err)

	// A miss is not remembered
	fsys["pitch_down.wav"] = &fstest.MapFile{Data: wavtest.PCM16(8000, 1, []int16{1})}
	got, err = b.Resolve("pitch_down", "wav")
	require.NoError(t, err)
	assert.Equal(t, "pitch_down.wav", got)

	// A hit is remembered even if a better location appears later
	fsys["Assets/Sounds/VerticalAudio/pitch_up.wav"] = &fstest.MapFile{Data: wavtest.PCM16(8000, 1, []int16{1})}
	got, err = b.Resolve("pitch_up", "wav")
	require.NoError(t, err)
	assert.Equal(t, "Sounds/VerticalAudio/pitch_up.wav", got)

	b.Forget()
	got, err = b.Resolve("pitch_up", "wav")
	require.NoError(t, err)
	assert.Equal(t, "Assets/Sounds/VerticalAudio/pitch_up.wav", got)
}

func TestEmbedded(t *testing.T) {
	b := Embedded(Config{})
	for _, name := range []string{"pitch_up", "pitch_down"} {
		got, err := b.Resolve(name, "wav")
		require.NoError(t, err, name)
		assert.Equal(t, "Assets/Sounds/VerticalAudio/"+name+".wav", got)
	}
}
