package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/metronome/constant"
	"github.com/lixenwraith/metronome/status"
)

// Manager owns clip loading, gain, retriggering and release
// No load failure propagates past it: callers only ever see Loaded or Unloaded
type Manager struct {
	mu    sync.RWMutex
	sink  Sink
	cache *ClipCache
	log   *slog.Logger

	statLoaded   *atomic.Int64
	statFailures *atomic.Int64
	statTriggers *atomic.Int64
	statReleased *atomic.Int64
}

// NewManager creates a manager playing into sink
// A nil sink means no output device: every Load yields Unloaded(ErrNoDevice)
func NewManager(sink Sink, cache *ClipCache, reg *status.Registry, logger *slog.Logger) *Manager {
	if cache == nil {
		cache = NewClipCache()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		sink:         sink,
		cache:        cache,
		log:          logger.With("component", "audio"),
		statLoaded:   reg.Ints.Get(constant.StatClipsLoaded),
		statFailures: reg.Ints.Get(constant.StatLoadFailures),
		statTriggers: reg.Ints.Get(constant.StatClipTriggers),
		statReleased: reg.Ints.Get(constant.StatClipsReleased),
	}
}

// Load decodes path and applies the gain for volume
// An empty path is "not configured" and is not logged
func (m *Manager) Load(path string, volume int) Slot {
	if path == "" {
		return Unloaded{}
	}

	clip, err := m.open(path, volume)
	if err != nil {
		m.statFailures.Add(1)
		m.log.Warn("clip unavailable, falling back to built-in effect", "path", path, "error", err)
		return Unloaded{Path: path, Reason: err}
	}

	m.statLoaded.Add(1)
	m.log.Debug("clip loaded", "path", path, "duration", clip.Duration(), "gain_db", GainDB(volume))
	return Loaded{Clip: clip}
}

func (m *Manager) open(path string, volume int) (*Clip, error) {
	sink := m.Sink()
	if sink == nil {
		return nil, ErrNoDevice
	}
	buf, err := m.cache.Load(path, sink.Format())
	if err != nil {
		return nil, err
	}
	return newClip(path, buf, sink, volume), nil
}

// Attach sets the sink used by subsequent loads; nil detaches
// Clips already loaded keep the sink they were created with
func (m *Manager) Attach(sink Sink) {
	m.mu.Lock()
	m.sink = sink
	m.mu.Unlock()
}

// Sink returns the attached sink, nil when no device is available
func (m *Manager) Sink() Sink {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sink
}

// SetGain applies a new volume to a loaded clip; Unloaded is a no-op
func (m *Manager) SetGain(s Slot, volume int) {
	loaded, ok := s.(Loaded)
	if !ok {
		return
	}
	if err := loaded.Clip.SetGain(volume); err != nil {
		m.log.Error("set gain on released clip", "path", loaded.Clip.Path(), "error", err)
		return
	}
	m.log.Debug("clip gain updated", "path", loaded.Clip.Path(), "gain_db", GainDB(volume))
}

// Trigger restarts a loaded clip from zero, false when the slot is Unloaded
func (m *Manager) Trigger(s Slot) bool {
	switch s := s.(type) {
	case Loaded:
		if err := s.Clip.Trigger(); err != nil {
			m.log.Error("trigger on released clip", "path", s.Clip.Path(), "error", err)
			return false
		}
		m.statTriggers.Add(1)
		return true
	case Unloaded:
		return false
	default:
		return false
	}
}

// Release stops and frees a loaded clip; Unloaded and nil are no-ops
func (m *Manager) Release(s Slot) {
	loaded, ok := s.(Loaded)
	if !ok || loaded.Clip.Released() {
		return
	}
	loaded.Clip.Release()
	m.statReleased.Add(1)
	m.log.Debug("clip released", "path", loaded.Clip.Path())
}

// Reload releases old before loading path
// An invalid path leaves the slot Unloaded
func (m *Manager) Reload(old Slot, path string, volume int) Slot {
	m.Release(old)
	return m.Load(path, volume)
}

// Cache exposes the decoded clip cache
func (m *Manager) Cache() *ClipCache {
	return m.cache
}

// Describe renders a slot for status output
func Describe(name string, s Slot) string {
	if s == nil {
		s = Unloaded{}
	}
	return fmt.Sprintf("%s: %s", name, s)
}
