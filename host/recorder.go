package host

import (
	"slices"
	"sync"
)

// EffectCall is one recorded PlayBuiltinEffect invocation
type EffectCall struct {
	Effect EffectID
	Volume int
	// EffectsVolume is the shared effects volume at the time of the call
	EffectsVolume int
}

// Recorder is a host that plays nothing and records every call
type Recorder struct {
	mu     sync.Mutex
	volume int
	calls  []EffectCall
	writes []int

	// OnPlay runs inside PlayBuiltinEffect after recording, if set
	OnPlay func(EffectCall)
}

// NewRecorder creates a recording host with the given effects volume
func NewRecorder(effectsVolume int) *Recorder {
	return &Recorder{volume: effectsVolume}
}

func (r *Recorder) SoundEffectsVolume() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.volume
}

func (r *Recorder) SetSoundEffectsVolume(volume int) {
	r.mu.Lock()
	r.volume = volume
	r.writes = append(r.writes, volume)
	r.mu.Unlock()
}

func (r *Recorder) PlayBuiltinEffect(id EffectID, volume int) {
	r.mu.Lock()
	call := EffectCall{Effect: id, Volume: volume, EffectsVolume: r.volume}
	r.calls = append(r.calls, call)
	hook := r.OnPlay
	r.mu.Unlock()

	if hook != nil {
		hook(call)
	}
}

// Calls returns a copy of the recorded effect calls
func (r *Recorder) Calls() []EffectCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// VolumeWrites returns every value passed to SetSoundEffectsVolume, in order
func (r *Recorder) VolumeWrites() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.writes)
}

// Reset clears recorded calls and writes, keeping the current volume
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.writes = nil
	r.mu.Unlock()
}
