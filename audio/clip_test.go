package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestClip(t *testing.T, m *Manager, samples int, volume int) *Clip {
	t.Helper()
	sr := OutputFormat().SampleRate
	path := writeWAV(t, t.TempDir(), "tick.wav", sr, samples, 0.5)
	slot := m.Load(path, volume)
	loaded, ok := slot.(Loaded)
	require.True(t, ok, "expected Loaded, got %v", slot)
	return loaded.Clip
}

func TestClip_TriggerRestartsFromZero(t *testing.T) {
	m, sink := newTestManager(t)
	clip := loadTestClip(t, m, 4000, 100)

	require.NoError(t, clip.Trigger())
	sink.Pull(1000)
	assert.True(t, clip.Playing())
	assert.Equal(t, 1000, clip.Position())

	// Retrigger while playing: stop, rewind, play again
	require.NoError(t, clip.Trigger())
	assert.True(t, clip.Playing())
	assert.Equal(t, 0, clip.Position())

	sink.Pull(10)
	assert.Equal(t, 10, clip.Position())
	assert.Equal(t, 1, sink.Active(), "stopped instance must leave the mixer")
}

func TestClip_NoOverlapAmplitude(t *testing.T) {
	m, sink := newTestManager(t)
	clip := loadTestClip(t, m, 4000, 100)

	require.NoError(t, clip.Trigger())
	sink.Pull(100)
	require.NoError(t, clip.Trigger())
	out := sink.Pull(10)

	// Overlapping instances would double the amplitude
	want := 0.5 * math.Pow(10, GainDB(100)/20)
	assert.InDelta(t, want, out[5][0], 1e-3)
}

func TestClip_PlaysToEnd(t *testing.T) {
	m, sink := newTestManager(t)
	clip := loadTestClip(t, m, 500, 50)

	require.NoError(t, clip.Trigger())
	sink.Pull(2000)
	assert.False(t, clip.Playing())
	assert.Equal(t, 500, clip.Position())
	assert.Equal(t, 0, sink.Active())

	// Retrigger after natural end restarts as well
	require.NoError(t, clip.Trigger())
	assert.True(t, clip.Playing())
	assert.Equal(t, 0, clip.Position())
}

func TestClip_GainApplied(t *testing.T) {
	m, sink := newTestManager(t)
	clip := loadTestClip(t, m, 4000, 50)
	assert.InDelta(t, -15.0, clip.GainDB(), 1e-9)

	require.NoError(t, clip.Trigger())
	out := sink.Pull(10)
	assert.InDelta(t, 0.5*math.Pow(10, -15.0/20), out[0][0], 1e-3)

	// Gain change reaches the playing instance without reload
	require.NoError(t, clip.SetGain(100))
	out = sink.Pull(10)
	assert.InDelta(t, 0.5*math.Pow(10, 5.0/20), out[0][0], 1e-3)
	assert.InDelta(t, 5.0, clip.GainDB(), 1e-9)
}

func TestClip_ReleasedRejectsUse(t *testing.T) {
	m, sink := newTestManager(t)
	clip := loadTestClip(t, m, 4000, 50)

	require.NoError(t, clip.Trigger())
	clip.Release()
	clip.Release()

	assert.True(t, clip.Released())
	assert.False(t, clip.Playing())
	assert.ErrorIs(t, clip.Trigger(), ErrClipReleased)
	assert.ErrorIs(t, clip.SetGain(10), ErrClipReleased)

	sink.Pull(10)
	assert.Equal(t, 0, sink.Active())
}

func TestClip_StopRewinds(t *testing.T) {
	m, sink := newTestManager(t)
	clip := loadTestClip(t, m, 4000, 50)

	require.NoError(t, clip.Trigger())
	sink.Pull(300)
	clip.Stop()
	assert.False(t, clip.Playing())
	assert.Equal(t, 0, clip.Position())
}
