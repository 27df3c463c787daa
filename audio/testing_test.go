package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/require"
)

// constantStreamer emits a fixed amplitude on both channels
func constantStreamer(amp float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{amp, amp}
		}
		return len(samples), true
	})
}

// writeWAV writes a constant-amplitude clip of n samples and returns its path
func writeWAV(t *testing.T, dir, name string, sr beep.SampleRate, n int, amp float64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Take(n, constantStreamer(amp)), format))
	return path
}

func newTestManager(t *testing.T) (*Manager, *MemorySink) {
	t.Helper()
	sink := NewMemorySink()
	return NewManager(sink, NewClipCache(), nil, nil), sink
}
