// Package metronome decides on every host tick whether a tick or tock cue
// sounds, and plays it through a loaded clip or the host's built-in effect
package metronome

import (
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lixenwraith/metronome/audio"
	"github.com/lixenwraith/metronome/config"
	"github.com/lixenwraith/metronome/constant"
	"github.com/lixenwraith/metronome/event"
	"github.com/lixenwraith/metronome/host"
	"github.com/lixenwraith/metronome/status"
)

// Clips is the clip lifecycle the plugin drives; implemented by *audio.Manager
type Clips interface {
	Load(path string, volume int) audio.Slot
	SetGain(s audio.Slot, volume int)
	Trigger(s audio.Slot) bool
	Release(s audio.Slot)
	Reload(old audio.Slot, path string, volume int) audio.Slot
}

// CueEvent describes one candidate firing, delivered to the observer
// Cue is CueNone when the candidate was silent
type CueEvent struct {
	Cue  Cue
	Tick int64
	// Clip is true when a loaded clip played, false for the built-in fallback
	Clip bool
	// Volume is the fallback volume; zero for clips
	Volume int
}

// Plugin wires the scheduler to clips and the host
// Not safe for concurrent use: the driver goroutine owns it once started
type Plugin struct {
	cfg   config.Provider
	clips Clips
	host  host.Client
	base  *slog.Logger
	log   *slog.Logger

	sched    Scheduler
	tickSlot audio.Slot
	tockSlot audio.Slot
	active   bool
	session  string
	observer func(CueEvent)

	statTicks       *atomic.Int64
	statCandidates  *atomic.Int64
	statTockCounter *atomic.Int64
	statCueTick     *atomic.Int64
	statCueTock     *atomic.Int64
	statFallbacks   *atomic.Int64
	statLastCue     *status.AtomicString
	statActive      *atomic.Bool
}

// NewPlugin creates an inactive plugin
func NewPlugin(cfg config.Provider, clips Clips, client host.Client, reg *status.Registry, logger *slog.Logger) *Plugin {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	base := logger.With("component", "metronome")
	return &Plugin{
		cfg:      cfg,
		clips:    clips,
		host:     client,
		base:     base,
		log:      base,
		tickSlot: audio.Unloaded{},
		tockSlot: audio.Unloaded{},

		statTicks:       reg.Ints.Get(constant.StatTicks),
		statCandidates:  reg.Ints.Get(constant.StatCandidates),
		statTockCounter: reg.Ints.Get(constant.StatTockCounter),
		statCueTick:     reg.Ints.Get(constant.StatCueTick),
		statCueTock:     reg.Ints.Get(constant.StatCueTock),
		statFallbacks:   reg.Ints.Get(constant.StatFallbacks),
		statLastCue:     reg.Strings.Get(constant.StatLastCue),
		statActive:      reg.Bools.Get(constant.StatActive),
	}
}

// SetObserver registers fn to receive every candidate firing; nil removes it
func (p *Plugin) SetObserver(fn func(CueEvent)) {
	p.observer = fn
}

// Name implements service.Service
func (p *Plugin) Name() string {
	return "metronome"
}

// Dependencies implements service.Service
func (p *Plugin) Dependencies() []string {
	return []string{"config", "audio"}
}

// Init implements service.Service
func (p *Plugin) Init(args ...any) error {
	return nil
}

// Start activates the plugin: a new session loads both clip slots
func (p *Plugin) Start() error {
	if p.active {
		return nil
	}
	p.session = uuid.NewString()
	p.log = p.base.With("session", p.session)

	cfg := p.cfg.Current()
	p.tickSlot = p.clips.Load(cfg.TickPath, cfg.Volume)
	p.tockSlot = p.clips.Load(cfg.TockPath, cfg.Volume)
	p.active = true
	p.statActive.Store(true)

	p.log.Info("metronome activated",
		"tick", audio.Describe("tick", p.tickSlot),
		"tock", audio.Describe("tock", p.tockSlot))
	return nil
}

// Stop deactivates the plugin: counters reset and both clips are released
func (p *Plugin) Stop() error {
	if !p.active {
		return nil
	}
	tick, tock := p.sched.Counters()
	p.sched.Reset()
	p.clips.Release(p.tickSlot)
	p.clips.Release(p.tockSlot)
	p.tickSlot = audio.Unloaded{}
	p.tockSlot = audio.Unloaded{}
	p.active = false
	p.statActive.Store(false)

	p.log.Info("metronome deactivated", "ticks", tick, "tock_counter", tock)
	p.log = p.base
	return nil
}

// Active reports whether the plugin is started
func (p *Plugin) Active() bool {
	return p.active
}

// Session returns the current activation id, empty when inactive
func (p *Plugin) Session() string {
	if !p.active {
		return ""
	}
	return p.session
}

// Slots returns the tick and tock clip slots
func (p *Plugin) Slots() (tick, tock audio.Slot) {
	return p.tickSlot, p.tockSlot
}

// Counters returns the scheduler's tick and tock counters
func (p *Plugin) Counters() (tick, tock int64) {
	return p.sched.Counters()
}

// EventTypes implements engine.EventHandler
func (p *Plugin) EventTypes() []event.EventType {
	return []event.EventType{event.EventGameTick, event.EventConfigChanged}
}

// HandleEvent implements engine.EventHandler
func (p *Plugin) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventGameTick:
		p.OnTick()
	case event.EventConfigChanged:
		if payload, ok := ev.Payload.(*event.ConfigChangedPayload); ok {
			p.OnConfigChanged(payload.Group, payload.Key)
		}
	}
}

// OnTick advances the pattern by one host tick and sounds the resulting cue
func (p *Plugin) OnTick() Decision {
	if !p.active {
		return Decision{}
	}

	cfg := p.cfg.Current()
	d := p.sched.Advance(cfg)
	p.statTicks.Store(d.Tick)
	p.statTockCounter.Store(d.TockCounter)
	if !d.Candidate {
		return d
	}
	p.statCandidates.Add(1)

	switch d.Cue {
	case CueTock:
		p.statCueTock.Add(1)
		p.sound(d, p.tockSlot, host.EffectDecrementPlop, cfg.TockVolume)
	case CueTick:
		p.statCueTick.Add(1)
		p.sound(d, p.tickSlot, host.EffectIncrementPlop, cfg.TickVolume)
	default:
		p.log.Debug("silent candidate", "tick", d.Tick)
		if p.observer != nil {
			p.observer(CueEvent{Cue: CueNone, Tick: d.Tick})
		}
	}
	return d
}

// sound plays slot, or the built-in effect at volume when no clip is loaded
func (p *Plugin) sound(d Decision, slot audio.Slot, effect host.EffectID, volume int) {
	ev := CueEvent{Cue: d.Cue, Tick: d.Tick}

	if p.clips.Trigger(slot) {
		ev.Clip = true
	} else {
		p.statFallbacks.Add(1)
		ev.Volume = volume
		withEffectsVolume(p.host, volume, func() {
			p.host.PlayBuiltinEffect(effect, volume)
		})
	}

	p.statLastCue.Store(d.Cue.String())
	p.log.Debug("cue", "cue", d.Cue, "tick", d.Tick, "clip", ev.Clip, "volume", ev.Volume)
	if p.observer != nil {
		p.observer(ev)
	}
}

// OnConfigChanged re-applies the settings affected by key
// Only this plugin's group is handled, only while active; counters are never reset
func (p *Plugin) OnConfigChanged(group, key string) {
	if group != constant.ConfigGroup || !p.active {
		return
	}

	cfg := p.cfg.Current()
	switch key {
	case config.KeyVolume:
		p.clips.SetGain(p.tickSlot, cfg.Volume)
		p.clips.SetGain(p.tockSlot, cfg.Volume)
	case config.KeyTickPath:
		p.tickSlot = p.clips.Reload(p.tickSlot, cfg.TickPath, cfg.Volume)
		p.log.Info("tick clip reloaded", "slot", audio.Describe("tick", p.tickSlot))
	case config.KeyTockPath:
		p.tockSlot = p.clips.Reload(p.tockSlot, cfg.TockPath, cfg.Volume)
		p.log.Info("tock clip reloaded", "slot", audio.Describe("tock", p.tockSlot))
	}
}
