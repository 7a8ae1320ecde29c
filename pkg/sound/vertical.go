// ABOUTME: Vertical audio sound object
// ABOUTME: Loads pitch_up/pitch_down into memory and adapts it to the Sound contract
package sound

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/soundscape-community/vertical-audio/pkg/audio"
	"github.com/soundscape-community/vertical-audio/pkg/audio/decode"
	"github.com/soundscape-community/vertical-audio/pkg/bundle"
)

// Direction selects the vertical cue
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// AssetName is the bundled file name (without extension) for the direction
func (d Direction) AssetName() string {
	if d == Down {
		return "pitch_down"
	}
	return "pitch_up"
}

// ParseDirection accepts "up" or "down" in any case
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return Up, fmt.Errorf("invalid direction %q (expected up or down)", s)
	}
}

// assetExt is the extension vertical cues are bundled with
const assetExt = "wav"

// Resolver maps an asset name to a path the decoder understands
type Resolver interface {
	Resolve(name, ext string) (string, error)
}

// VerticalConfig holds the collaborators of a vertical sound. Zero fields
// fall back to the embedded bundle, its file decoder and DefaultSettings.
type VerticalConfig struct {
	Resolver Resolver
	Decoder  decode.Decoder
	Settings Settings
	Logger   zerolog.Logger
}

// Vertical is a non-positional sound that plays a short rising or falling
// pitch. Its buffer is decoded once at construction and never changes.
type Vertical struct {
	direction Direction
	buffer    *audio.SampleBuffer
	err       error
	settings  Settings
	logger    zerolog.Logger
}

var _ SynchronouslyGenerated = (*Vertical)(nil)

// NewVertical loads the asset for direction. Load failures are logged and
// recorded; the returned sound is always usable and reports no buffer.
func NewVertical(direction Direction, cfg VerticalConfig) *Vertical {
	v := &Vertical{
		direction: direction,
		settings:  cfg.Settings,
		logger:    cfg.Logger.With().Str("sound", "vertical").Str("direction", direction.String()).Logger(),
	}
	if v.settings == nil {
		v.settings = DefaultSettings
	}

	resolver := cfg.Resolver
	if resolver == nil {
		resolver = bundle.Embedded(bundle.Config{Logger: cfg.Logger})
	}
	decoder := cfg.Decoder
	if decoder == nil {
		if fsr, ok := resolver.(interface{ FS() fs.FS }); ok {
			decoder = decode.NewFileDecoder(fsr.FS())
		}
	}

	v.buffer, v.err = v.load(resolver, decoder)
	return v
}

func (v *Vertical) load(resolver Resolver, decoder decode.Decoder) (*audio.SampleBuffer, error) {
	file := v.direction.AssetName() + "." + assetExt
	v.logger.Info().Msgf("Loading vertical audio file: %s", file)

	path, err := resolver.Resolve(v.direction.AssetName(), assetExt)
	if err != nil {
		v.logger.Error().Err(err).Msgf("Could not find vertical audio file: %s", file)
		return nil, err
	}
	v.logger.Info().Msgf("Found audio file at: %s", path)

	if decoder == nil {
		err := &decode.DecodeError{Path: path, Err: errors.New("no decoder configured")}
		v.logger.Error().Err(err).Msg("Failed to load vertical audio file")
		return nil, err
	}

	buf, err := decoder.Decode(path)
	if err != nil {
		v.logger.Error().Err(err).Msg("Failed to load vertical audio file")
		return nil, err
	}

	v.logger.Info().
		Int("frames", buf.FrameLength()).
		Int("sample_rate", buf.SampleRate()).
		Int("channels", buf.Channels()).
		Msgf("Successfully loaded audio file: %s", file)
	return buf, nil
}

// Direction returns the cue direction
func (v *Vertical) Direction() Direction { return v.direction }

// Err returns why loading failed, or nil
func (v *Vertical) Err() error { return v.err }

func (v *Vertical) String() string {
	return fmt.Sprintf("VerticalAudioSound(%s)", v.direction)
}

// Duration is FrameLength / SampleRate; ok is false without a buffer
func (v *Vertical) Duration() (d time.Duration, ok bool) {
	if v.buffer == nil {
		return 0, false
	}
	return v.buffer.Duration(), true
}

func (v *Vertical) LayerCount() int { return 1 }

// GenerateBuffer returns the decoded buffer for layer 0
func (v *Vertical) GenerateBuffer(layer int) *audio.SampleBuffer {
	if v.buffer == nil {
		v.logger.Error().Msg("No buffer available for playback")
		return nil
	}
	if layer != 0 {
		v.logger.Error().Int("layer", layer).Msg("Requested layer does not exist")
		return nil
	}
	return v.buffer
}

func (v *Vertical) Type() Type { return TypeStandard }

// Is3D is false: vertical cues are not positioned in space
func (v *Vertical) Is3D() bool { return false }

// Volume follows the shared other-sounds volume
func (v *Vertical) Volume() float32 { return v.settings.OtherVolume() }

// SetVolume does nothing; volume is owned by Settings
func (v *Vertical) SetVolume(float32) {}

func (v *Vertical) IsPlaying() bool { return false }

func (v *Vertical) State() PlayerState { return StateNotPrepared }

func (v *Vertical) ConnectionState() ConnectionState { return NotConnected }

func (v *Vertical) UpdateConnectionState(ConnectionState) {}

// Prepare succeeds if and only if a buffer was loaded
func (v *Vertical) Prepare(_ Engine, completion func(ok bool)) {
	v.logger.Info().Msg("Preparing vertical audio for playback")

	if v.buffer == nil {
		v.logger.Error().Msg("No buffer available for preparation")
		if completion != nil {
			completion(false)
		}
		return
	}

	v.logger.Info().Int("frames", v.buffer.FrameLength()).Msg("Successfully prepared vertical audio")
	if completion != nil {
		completion(true)
	}
}

// Play only logs; heading and location are ignored since the sound is not 3D
func (v *Vertical) Play(_ *Heading, _ *Location) error {
	v.logger.Info().Msgf("Attempting to play vertical audio: %s", v.direction)
	return nil
}

func (v *Vertical) ResumeIfNecessary() (bool, error) { return false, nil }

func (v *Vertical) Stop() {
	v.logger.Info().Msg("Stopping vertical audio")
}

// EqualizerParams returns a descriptor only when the shared gain is non-zero
func (v *Vertical) EqualizerParams(int) *EQParameters {
	gain := v.settings.AFXGain()
	if gain == 0 {
		return nil
	}
	return &EQParameters{GlobalGain: gain}
}
