// Package host defines the capabilities the metronome borrows from its host
// environment and ships two hosts: a local one that synthesizes the built-in
// effects, and a recording one for dry runs and tests
package host

import "fmt"

// EffectID identifies a built-in host sound effect
type EffectID int

// Built-in effects used as cue fallbacks
const (
	EffectIncrementPlop EffectID = 3813 // tick-like
	EffectDecrementPlop EffectID = 3814 // tock-like
)

func (id EffectID) String() string {
	switch id {
	case EffectIncrementPlop:
		return "increment_plop"
	case EffectDecrementPlop:
		return "decrement_plop"
	default:
		return fmt.Sprintf("effect(%d)", int(id))
	}
}

// Preferences exposes the host's single shared effects volume
// The metronome only perturbs it inside a scoped override around a fallback play
type Preferences interface {
	SoundEffectsVolume() int
	SetSoundEffectsVolume(volume int)
}

// EffectPlayer plays a built-in sound effect at volume 0-100
type EffectPlayer interface {
	PlayBuiltinEffect(id EffectID, volume int)
}

// Client is everything the metronome needs from a host
type Client interface {
	Preferences
	EffectPlayer
}

func clampVolume(v int) int {
	return max(0, min(100, v))
}
