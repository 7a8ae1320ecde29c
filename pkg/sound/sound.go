// ABOUTME: Sound object contracts consumed by playback engines
// ABOUTME: Defines Sound, SynchronouslyGenerated, states, EQ descriptors and settings
package sound

import (
	"github.com/soundscape-community/vertical-audio/pkg/audio"
)

// Type classifies how an engine should schedule a sound
type Type int

const (
	TypeStandard Type = iota
	TypeLocalized
)

func (t Type) String() string {
	switch t {
	case TypeStandard:
		return "standard"
	case TypeLocalized:
		return "localized"
	default:
		return "unknown"
	}
}

// PlayerState is the engine-managed lifecycle state of a sound
type PlayerState int

const (
	StateNotPrepared PlayerState = iota
	StatePreparing
	StatePrepared
)

func (s PlayerState) String() string {
	switch s {
	case StateNotPrepared:
		return "not prepared"
	case StatePreparing:
		return "preparing"
	case StatePrepared:
		return "prepared"
	default:
		return "unknown"
	}
}

// ConnectionState tracks whether a sound is attached to an engine graph
type ConnectionState int

const (
	NotConnected ConnectionState = iota
	Connecting
	Connected
)

func (s ConnectionState) String() string {
	switch s {
	case NotConnected:
		return "not connected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Heading is the user's facing direction in degrees from true north
type Heading struct {
	Degrees float64
}

// Location is the user's geographic position
type Location struct {
	Latitude  float64
	Longitude float64
}

// EQBand is one filter of an equalizer
type EQBand struct {
	Frequency float32
	Bandwidth float32
	Gain      float32
}

// EQParameters describes equalization applied to a layer during playback.
// GlobalGain is in decibels.
type EQParameters struct {
	GlobalGain float32
	Bands      []EQBand
}

// Engine is the playback engine a sound is prepared against
type Engine interface {
	OutputFormat() audio.Format
}

// Settings is the shared, read-only configuration sounds consult
type Settings interface {
	// OtherVolume is the linear volume for non-beacon sounds (0..1)
	OtherVolume() float32
	// AFXGain is the global equalizer gain in decibels
	AFXGain() float32
}

// StaticSettings is a fixed Settings value
type StaticSettings struct {
	Volume float32
	Gain   float32
}

func (s StaticSettings) OtherVolume() float32 { return s.Volume }
func (s StaticSettings) AFXGain() float32     { return s.Gain }

// DefaultSettings is full volume without equalization
var DefaultSettings Settings = StaticSettings{Volume: 1.0}

// Sound is the uniform contract every sound source offers an engine
type Sound interface {
	String() string
	Type() Type
	Is3D() bool

	Volume() float32
	SetVolume(v float32)

	IsPlaying() bool
	State() PlayerState
	ConnectionState() ConnectionState
	UpdateConnectionState(s ConnectionState)

	// Prepare reports through completion whether the sound can play.
	// completion may be nil.
	Prepare(engine Engine, completion func(ok bool))
	// Play starts playback. heading and location may be nil.
	Play(heading *Heading, location *Location) error
	ResumeIfNecessary() (bool, error)
	Stop()

	// EqualizerParams returns nil when no equalization applies
	EqualizerParams(layer int) *EQParameters
}

// SynchronouslyGenerated is a Sound whose audio is available up front as
// one buffer per layer
type SynchronouslyGenerated interface {
	Sound
	LayerCount() int
	// GenerateBuffer returns the layer's buffer, or nil if unavailable
	GenerateBuffer(layer int) *audio.SampleBuffer
}
