package host

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/metronome/audio"
)

// LocalClient is a standalone host: it owns the shared effects volume and
// synthesizes its built-in effects into an audio sink
type LocalClient struct {
	mu     sync.RWMutex
	sink   audio.Sink
	log    *slog.Logger
	volume atomic.Int32
	played atomic.Int64
}

// NewLocalClient creates a host with the given initial effects volume
// A nil sink plays nothing
func NewLocalClient(sink audio.Sink, effectsVolume int, logger *slog.Logger) *LocalClient {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &LocalClient{sink: sink, log: logger.With("component", "host")}
	c.volume.Store(int32(clampVolume(effectsVolume)))
	return c
}

func (c *LocalClient) SoundEffectsVolume() int {
	return int(c.volume.Load())
}

func (c *LocalClient) SetSoundEffectsVolume(volume int) {
	c.volume.Store(int32(clampVolume(volume)))
}

// Attach sets the sink effects are played into; nil silences the host
func (c *LocalClient) Attach(sink audio.Sink) {
	c.mu.Lock()
	c.sink = sink
	c.mu.Unlock()
}

// PlayBuiltinEffect plays id at the lower of volume and the shared effects volume
// A zero effects volume mutes every built-in effect
func (c *LocalClient) PlayBuiltinEffect(id EffectID, volume int) {
	c.mu.RLock()
	sink := c.sink
	c.mu.RUnlock()

	level := min(clampVolume(volume), c.SoundEffectsVolume())
	if level == 0 || sink == nil {
		return
	}

	st, err := plop(sink.Format().SampleRate, id, float64(level)/100)
	if err != nil {
		c.log.Error("effect synthesis failed", "effect", id, "error", err)
		return
	}
	sink.Play(st)
	c.played.Add(1)
	c.log.Debug("built-in effect played", "effect", id, "volume", level)
}

// Played returns the number of effects sent to the sink
func (c *LocalClient) Played() int64 {
	return c.played.Load()
}
