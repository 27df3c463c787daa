package host

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/metronome/constant"
)

// envelope shapes a finite streamer with a linear attack and release
type envelope struct {
	beep.Streamer
	total   int
	attack  int
	release int
	pos     int
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.Streamer.Stream(samples)
	for i := range samples[:n] {
		g := e.level(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

// level is the envelope gain at sample i
func (e *envelope) level(i int) float64 {
	releaseStart := max(e.total-e.release, e.attack)
	switch {
	case i < e.attack && e.attack > 0:
		return float64(i) / float64(e.attack)
	case i >= releaseStart && e.release > 0:
		return float64(e.total-i) / float64(e.release)
	default:
		return 1.0
	}
}

func effectFreq(id EffectID) float64 {
	if id == EffectDecrementPlop {
		return constant.DecrementPlopFreq
	}
	return constant.IncrementPlopFreq
}

// plop synthesizes one built-in effect at level 0..1
func plop(sr beep.SampleRate, id EffectID, level float64) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, effectFreq(id))
	if err != nil {
		return nil, err
	}
	n := sr.N(constant.PlopDuration)
	env := &envelope{
		Streamer: beep.Take(n, tone),
		total:    n,
		attack:   sr.N(constant.PlopAttack),
		release:  sr.N(constant.PlopRelease),
	}
	// Gain multiplies by 1+Gain
	return &effects.Gain{Streamer: env, Gain: level - 1}, nil
}
