// ABOUTME: Viper-backed settings store for vertical audio
// ABOUTME: Loads YAML config, serves volume and gain to sounds, and reloads on file changes
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/soundscape-community/vertical-audio/pkg/bundle"
	"github.com/soundscape-community/vertical-audio/pkg/sound"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Keys understood in the settings file
const (
	KeyOtherVolume     = "other_volume"
	KeyAFXGain         = "afx_gain"
	KeyAssetsDir       = "assets_dir"
	KeySearchPaths     = "search_paths"
	KeyResolveCacheTTL = "resolve_cache_ttl"
	KeyLogLevel        = "log_level"
	KeyLogFile         = "log_file"
	KeyTestLength      = "test_length"
)

// Config is the decoded settings file
type Config struct {
	OtherVolume     float32       `mapstructure:"other_volume" yaml:"other_volume"`
	AFXGain         float32       `mapstructure:"afx_gain" yaml:"afx_gain"`
	AssetsDir       string        `mapstructure:"assets_dir" yaml:"assets_dir,omitempty"`
	SearchPaths     []string      `mapstructure:"search_paths" yaml:"search_paths"`
	ResolveCacheTTL time.Duration `mapstructure:"resolve_cache_ttl" yaml:"resolve_cache_ttl"`
	LogLevel        string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile         string        `mapstructure:"log_file" yaml:"log_file,omitempty"`
	TestLength      time.Duration `mapstructure:"test_length" yaml:"test_length"`
}

// Defaults returns full volume, no EQ gain and the embedded assets
func Defaults() Config {
	return Config{
		OtherVolume:     1.0,
		AFXGain:         0,
		SearchPaths:     append([]string(nil), bundle.DefaultSearchPaths...),
		ResolveCacheTTL: bundle.DefaultCacheTTL,
		LogLevel:        "info",
		TestLength:      1500 * time.Millisecond,
	}
}

// Store holds the live settings. It is safe for concurrent use.
type Store struct {
	v      *viper.Viper
	logger zerolog.Logger

	mu  sync.RWMutex
	cfg Config
}

var _ sound.Settings = (*Store)(nil)

func newViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyOtherVolume, d.OtherVolume)
	v.SetDefault(KeyAFXGain, d.AFXGain)
	v.SetDefault(KeyAssetsDir, d.AssetsDir)
	v.SetDefault(KeySearchPaths, d.SearchPaths)
	v.SetDefault(KeyResolveCacheTTL, d.ResolveCacheTTL)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyTestLength, d.TestLength)
	v.SetEnvPrefix("VERTICAL_AUDIO")
	v.AutomaticEnv()
	return v
}

// New returns a store holding only defaults and environment overrides
func New(logger zerolog.Logger) (*Store, error) {
	s := &Store{v: newViper(), logger: logger.With().Str("component", "settings").Logger()}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the YAML file at path on top of the defaults
func Load(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{v: newViper(), logger: logger.With().Str("component", "settings").Logger()}

	s.v.SetConfigFile(path)
	s.v.SetConfigType("yaml")
	if err := s.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	if err := s.refresh(); err != nil {
		return nil, err
	}

	s.logger.Info().Msgf("Loaded settings from %s", path)
	return s, nil
}

// LoadOrDefault loads path when it exists and falls back to defaults otherwise
func LoadOrDefault(path string, logger zerolog.Logger) (*Store, error) {
	if path == "" {
		return New(logger)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return New(logger)
	}
	return Load(path, logger)
}

// refresh decodes viper's view into cfg
func (s *Store) refresh() error {
	var cfg Config
	if err := s.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding settings: %w", err)
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Watch reloads the file whenever it changes and calls onChange with the
// new config. onChange may be nil.
func (s *Store) Watch(onChange func(Config)) {
	s.v.OnConfigChange(func(e fsnotify.Event) {
		if err := s.refresh(); err != nil {
			s.logger.Error().Err(err).Msgf("Failed to reload settings after %s", e.Op)
			return
		}
		cfg := s.Config()
		s.logger.Info().
			Float32(KeyOtherVolume, cfg.OtherVolume).
			Float32(KeyAFXGain, cfg.AFXGain).
			Msgf("Reloaded settings from %s", e.Name)
		if onChange != nil {
			onChange(cfg)
		}
	})
	s.v.WatchConfig()
}

// Set overrides a key for this process, as command-line flags do
func (s *Store) Set(key string, value any) error {
	s.v.Set(key, value)
	return s.refresh()
}

// Config returns a snapshot of the current settings
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.cfg
	cfg.SearchPaths = append([]string(nil), s.cfg.SearchPaths...)
	return cfg
}

// OtherVolume is the configured volume clamped to 0..1
func (s *Store) OtherVolume() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.cfg.OtherVolume
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// AFXGain is the global EQ gain in decibels
func (s *Store) AFXGain() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.AFXGain
}

// ConfigFile returns the file backing the store, or "" for defaults only
func (s *Store) ConfigFile() string {
	return s.v.ConfigFileUsed()
}

const defaultHeader = `# Vertical audio settings
#
# other_volume: linear volume for non-beacon sounds (0..1)
# afx_gain: global equalizer gain in decibels (0 disables EQ)
# assets_dir: directory holding the sound bundle (empty uses built-in sounds)
# search_paths: directories tried, in order, inside the bundle
# test_length: how long the test menu plays a cue

`

// WriteDefault writes a settings file with default values to path,
// creating the parent directory if needed
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("encoding default settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(defaultHeader), data...), 0600); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// DefaultPath is the per-user settings file location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vertical-audio.yaml"
	}
	return filepath.Join(dir, "vertical-audio", "config.yaml")
}
