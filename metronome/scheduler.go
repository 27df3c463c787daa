package metronome

import "github.com/lixenwraith/metronome/config"

// Cue is the audible outcome of one tick
type Cue int

const (
	CueNone Cue = iota
	CueTick
	CueTock
)

func (c Cue) String() string {
	switch c {
	case CueTick:
		return "tick"
	case CueTock:
		return "tock"
	default:
		return "none"
	}
}

// Decision is the scheduler's verdict for one tick
type Decision struct {
	// Tick is the tick counter after this tick; unchanged when the pattern is disabled
	Tick int64
	// Candidate is true when the period test passed
	Candidate bool
	// Cue is the cue to sound; CueNone on a silent candidate
	Cue Cue
	// TockCounter is the tock counter after this tick
	TockCounter int64
}

// Scheduler holds the per-session counters and decides when and which cue fires
// Counters start at zero and only Reset clears them
type Scheduler struct {
	tickCounter int64
	tockCounter int64
}

// Advance evaluates one tick against cfg
//
//  1. TickCount <= 0: disabled, counters untouched
//  2. tickCounter++; candidate iff (tickCounter + TickOffset) mod TickCount == 0
//  3. On a candidate, tock is eligible iff TockVolume > 0 and TockNumber > 0;
//     an eligible candidate increments tockCounter and is a tock iff
//     tockCounter mod TockNumber == 0
//  4. Tock wins; otherwise a tick sounds iff TickVolume > 0
//
// tockCounter counts eligible candidates, not tocks, so the tock cadence is
// measured over candidate firings
func (s *Scheduler) Advance(cfg config.Config) Decision {
	if cfg.TickCount <= 0 {
		return Decision{Tick: s.tickCounter, TockCounter: s.tockCounter}
	}

	s.tickCounter++
	d := Decision{Tick: s.tickCounter, TockCounter: s.tockCounter}

	phase := (s.tickCounter + int64(cfg.TickOffset)) % int64(cfg.TickCount)
	if phase != 0 {
		return d
	}
	d.Candidate = true

	tock := false
	if cfg.TockVolume > 0 && cfg.TockNumber > 0 {
		s.tockCounter++
		d.TockCounter = s.tockCounter
		tock = s.tockCounter%int64(cfg.TockNumber) == 0
	}

	switch {
	case tock:
		d.Cue = CueTock
	case cfg.TickVolume > 0:
		d.Cue = CueTick
	}
	return d
}

// Reset zeroes both counters
func (s *Scheduler) Reset() {
	s.tickCounter = 0
	s.tockCounter = 0
}

// Counters returns the tick and tock counters
func (s *Scheduler) Counters() (tick, tock int64) {
	return s.tickCounter, s.tockCounter
}
