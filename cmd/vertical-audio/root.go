// ABOUTME: Root command and shared wiring for the vertical-audio CLI
// ABOUTME: Loads settings, builds the logger, bundle, sounds and playback engine
package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/soundscape-community/vertical-audio/internal/log"
	"github.com/soundscape-community/vertical-audio/internal/player"
	"github.com/soundscape-community/vertical-audio/internal/settings"
	"github.com/soundscape-community/vertical-audio/pkg/audio/output"
	"github.com/soundscape-community/vertical-audio/pkg/bundle"
	"github.com/soundscape-community/vertical-audio/pkg/sound"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagAssets   string
	flagLogLevel string
	flagLogFile  string
	flagNoAudio  bool
	flagBackend  string
)

var rootCmd = &cobra.Command{
	Use:   "vertical-audio",
	Short: "Load and play vertical audio cues",
	Long: `Loads the pitch_up and pitch_down cues from a sound bundle and plays
them through the local audio device.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "settings file (default: user config dir)")
	pf.StringVar(&flagAssets, "assets", "", "sound bundle directory (default: built-in sounds)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error, off")
	pf.StringVar(&flagLogFile, "log-file", "", "append logs to this file instead of stderr")
	pf.BoolVar(&flagNoAudio, "no-audio", false, "render audio without opening a device")
	pf.StringVar(&flagBackend, "backend", "oto", "audio backend: oto or malgo")
}

// env is the wired application state shared by subcommands
type env struct {
	logger    zerolog.Logger
	logCloser io.Closer
	store     *settings.Store

	mu     sync.Mutex
	bundle *bundle.Bundle
}

// setup loads settings, applies flag overrides and builds the logger and bundle
func setup(cmd *cobra.Command, defaultLogFile string) (*env, error) {
	path := flagConfig
	var (
		store *settings.Store
		err   error
	)
	if path != "" {
		store, err = settings.Load(path, zerolog.Nop())
	} else {
		store, err = settings.LoadOrDefault(settings.DefaultPath(), zerolog.Nop())
	}
	if err != nil {
		return nil, err
	}

	overrides := map[string]string{
		settings.KeyAssetsDir: flagAssets,
		settings.KeyLogLevel:  flagLogLevel,
		settings.KeyLogFile:   flagLogFile,
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := store.Set(key, value); err != nil {
			return nil, err
		}
	}

	cfg := store.Config()
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = defaultLogFile
	}
	logger, closer, err := log.New(log.Options{Level: cfg.LogLevel, File: logFile, Out: cmd.ErrOrStderr()})
	if err != nil {
		return nil, err
	}

	b := newBundle(cfg, logger)

	if file := store.ConfigFile(); file != "" {
		logger.Debug().Msgf("Using settings from %s", file)
	}

	return &env{logger: logger, logCloser: closer, store: store, bundle: b}, nil
}

// newBundle opens the configured assets directory, or the built-in sounds
func newBundle(cfg settings.Config, logger zerolog.Logger) *bundle.Bundle {
	bcfg := bundle.Config{SearchPaths: cfg.SearchPaths, CacheTTL: cfg.ResolveCacheTTL, Logger: logger}
	if cfg.AssetsDir != "" {
		return bundle.Dir(cfg.AssetsDir, bcfg)
	}
	return bundle.Embedded(bcfg)
}

// assets returns the current bundle
func (e *env) assets() *bundle.Bundle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bundle
}

// reload swaps in a bundle for new asset settings. Sounds already loaded
// keep their buffers.
func (e *env) reload(cfg settings.Config) {
	b := newBundle(cfg, e.logger)
	e.mu.Lock()
	e.bundle = b
	e.mu.Unlock()
	e.logger.Info().Str("assets_dir", cfg.AssetsDir).Strs("search_paths", cfg.SearchPaths).Msg("Reloaded sound bundle")
}

// sound loads the cue for dir against the live settings
func (e *env) sound(dir sound.Direction) *sound.Vertical {
	return sound.NewVertical(dir, sound.VerticalConfig{
		Resolver: e.assets(),
		Settings: e.store,
		Logger:   e.logger,
	})
}

// engine opens the selected audio backend
func (e *env) engine() (*player.Engine, error) {
	out, err := newOutput(flagBackend, flagNoAudio, e.logger)
	if err != nil {
		return nil, err
	}
	return player.NewEngine(player.Config{Output: out, Logger: e.logger}), nil
}

func (e *env) close() {
	_ = e.logCloser.Close()
}

func newOutput(backend string, noAudio bool, logger zerolog.Logger) (output.Output, error) {
	if noAudio {
		return output.NewDiscard(), nil
	}
	switch backend {
	case "oto", "":
		return output.NewOto(logger), nil
	case "malgo":
		return output.NewMalgo(logger), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q (expected oto or malgo)", backend)
	}
}

// parseDirections maps args to directions; no args means both
func parseDirections(args []string) ([]sound.Direction, error) {
	if len(args) == 0 {
		return []sound.Direction{sound.Up, sound.Down}, nil
	}
	dirs := make([]sound.Direction, 0, len(args))
	for _, a := range args {
		d, err := sound.ParseDirection(a)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}
