// ABOUTME: Test-trigger controller for vertical audio cues
// ABOUTME: Plays one cue at a time and stops it after a fixed test length
package menu

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/soundscape-community/vertical-audio/pkg/sound"
)

// DefaultTestLength is how long a triggered cue plays before it is stopped
const DefaultTestLength = 1500 * time.Millisecond

var (
	// ErrAlreadyPlaying is returned while a previous test cue is active
	ErrAlreadyPlaying = errors.New("audio is already playing")
	// ErrNoLocation is returned when a Locator is set but has no fix
	ErrNoLocation = errors.New("no user location available")
)

// Player is the part of the playback engine the controller drives
type Player interface {
	Play(s sound.Sound, heading *sound.Heading, location *sound.Location) (uuid.UUID, error)
	Stop(id uuid.UUID)
}

// Locator supplies the user's current position
type Locator interface {
	Location() (*sound.Location, bool)
}

// Factory builds the sound for a direction
type Factory func(dir sound.Direction) sound.Sound

// Config holds controller configuration
type Config struct {
	Player     Player
	Factory    Factory
	Locator    Locator
	TestLength time.Duration
	Logger     zerolog.Logger
}

// Controller starts test cues and stops them after TestLength
type Controller struct {
	player     Player
	factory    Factory
	locator    Locator
	testLength time.Duration
	logger     zerolog.Logger

	mu      sync.Mutex
	current *uuid.UUID
	timer   *time.Timer
	// finished is signalled each time an active cue is stopped
	finished chan uuid.UUID
}

// NewController creates a controller. Player and Factory are required.
func NewController(cfg Config) *Controller {
	length := cfg.TestLength
	if length <= 0 {
		length = DefaultTestLength
	}
	return &Controller{
		player:     cfg.Player,
		factory:    cfg.Factory,
		locator:    cfg.Locator,
		testLength: length,
		logger:     cfg.Logger.With().Str("component", "menu").Logger(),
		finished:   make(chan uuid.UUID, 1),
	}
}

// Trigger plays the cue for dir unless one is already playing
func (c *Controller) Trigger(dir sound.Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		c.logger.Info().Msg("Audio is already playing")
		return ErrAlreadyPlaying
	}

	c.logger.Info().Msgf("Starting %s audio test", dir)

	var location *sound.Location
	if c.locator != nil {
		loc, ok := c.locator.Location()
		if !ok {
			c.logger.Error().Msg("No user location available")
			return ErrNoLocation
		}
		location = loc
	}

	s := c.factory(dir)
	if s == nil {
		err := fmt.Errorf("failed to create %s sound", dir)
		c.logger.Error().Err(err).Msg("Test cue unavailable")
		return err
	}

	id, err := c.player.Play(s, nil, location)
	if err != nil {
		c.logger.Error().Err(err).Msgf("Failed to start playing %s sound", dir)
		return fmt.Errorf("failed to play %s sound: %w", dir, err)
	}

	c.logger.Info().Str("player", id.String()).Msgf("Started playing %s sound", dir)
	c.current = &id
	c.timer = time.AfterFunc(c.testLength, func() { c.finish(id, dir) })
	return nil
}

// finish stops the player if it is still the active one
func (c *Controller) finish(id uuid.UUID, dir sound.Direction) {
	c.mu.Lock()
	if c.current == nil || *c.current != id {
		c.mu.Unlock()
		return
	}
	c.current = nil
	c.timer = nil
	c.mu.Unlock()

	c.player.Stop(id)
	c.logger.Info().Msgf("Stopped %s sound", dir)

	select {
	case c.finished <- id:
	default:
	}
}

// Playing returns the active player id, if any
func (c *Controller) Playing() (uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return uuid.Nil, false
	}
	return *c.current, true
}

// Finished delivers the id of each cue as it is stopped. Slow readers miss
// notifications rather than blocking the controller.
func (c *Controller) Finished() <-chan uuid.UUID {
	return c.finished
}

// Close stops any active cue immediately
func (c *Controller) Close() {
	c.mu.Lock()
	id := c.current
	if c.timer != nil {
		c.timer.Stop()
	}
	c.current = nil
	c.timer = nil
	c.mu.Unlock()

	if id != nil {
		c.player.Stop(*id)
	}
}
