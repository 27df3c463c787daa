package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGainDB(t *testing.T) {
	tests := []struct {
		volume int
		want   float64
	}{
		{0, -35},
		{50, -15},
		{100, 5},
		{25, -25},
		{-10, -35},
		{150, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, GainDB(tt.volume), 1e-9, "volume %d", tt.volume)
	}
}

func TestGainDB_LinearProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.IntRange(0, 99).Draw(t, "volume")
		step := GainDB(v+1) - GainDB(v)
		if math.Abs(step-0.4) > 1e-9 {
			t.Fatalf("gain step at %d = %f, want 0.4", v, step)
		}
	})
}
