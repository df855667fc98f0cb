// Package audio synthesizes the game's sound effects and menu music with
// beep streamers and plays them through a system audio tool reading raw
// PCM on stdin. Without a usable tool the engine runs silent.
package audio

import "errors"

// Sound identifies a sound effect.
type Sound int

const (
	SoundMove Sound = iota
	SoundPush
	SoundComplete
	SoundMenuSelect
	soundCount
)

func (s Sound) String() string {
	switch s {
	case SoundMove:
		return "move"
	case SoundPush:
		return "push"
	case SoundComplete:
		return "complete"
	case SoundMenuSelect:
		return "menu-select"
	default:
		return "unknown"
	}
}

// Player is the fire-and-forget audio interface used by the screens.
type Player interface {
	PlaySound(s Sound)
	StartMusic()
	StopMusic()
}

// Silent is a Player that does nothing.
type Silent struct{}

func (Silent) PlaySound(Sound) {}
func (Silent) StartMusic()     {}
func (Silent) StopMusic()      {}

var (
	ErrNoBackend  = errors.New("audio: no compatible audio backend found")
	ErrPipeClosed = errors.New("audio: pipe closed")
)

// Config holds volumes in [0, 1] and the output sample rate.
type Config struct {
	Enabled      bool
	MasterVolume float64
	MusicVolume  float64
	SfxVolume    float64
	SampleRate   int
}

// DefaultConfig returns the stock volumes at 44.1 kHz.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.7,
		MusicVolume:  0.5,
		SfxVolume:    0.8,
		SampleRate:   44100,
	}
}
