package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lixenwraith/metronome/constant"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 35, cfg.Volume)
	assert.Equal(t, 1, cfg.TickCount)
	assert.Equal(t, 0, cfg.TockNumber)
	assert.Equal(t, 96, cfg.TickVolume)
	assert.Equal(t, 0, cfg.TockVolume)
	assert.Empty(t, cfg.TickPath)
	assert.Equal(t, cfg, cfg.Normalize(), "defaults are already normalized")
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{"volume above range", Config{Volume: 140}, Config{Volume: 100}},
		{"volume below range", Config{Volume: -1}, Config{Volume: 0}},
		{"fallback volumes", Config{TickVolume: 101, TockVolume: -5}, Config{TickVolume: 100, TockVolume: 0}},
		{"negative counts disable", Config{TickCount: -4, TockNumber: -2}, Config{}},
		{"negative offset kept", Config{TickOffset: -3}, Config{TickOffset: -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func genConfig() *rapid.Generator[Config] {
	return rapid.Custom(func(t *rapid.T) Config {
		paths := rapid.SampledFrom([]string{"", "a.wav", "b.ogg"})
		return Config{
			Volume:     rapid.IntRange(0, 100).Draw(t, "volume"),
			TickCount:  rapid.IntRange(0, 8).Draw(t, "tickCount"),
			TickOffset: rapid.IntRange(-8, 8).Draw(t, "tickOffset"),
			TockNumber: rapid.IntRange(0, 8).Draw(t, "tockNumber"),
			TickVolume: rapid.IntRange(0, 100).Draw(t, "tickVolume"),
			TockVolume: rapid.IntRange(0, 100).Draw(t, "tockVolume"),
			TickPath:   paths.Draw(t, "tickPath"),
			TockPath:   paths.Draw(t, "tockPath"),
		}
	})
}

func TestDiff_ReportsExactlyChangedKeys(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genConfig().Draw(t, "a")
		b := genConfig().Draw(t, "b")

		assert.Empty(t, Diff(a, a))

		changed := Diff(a, b)
		for _, key := range Keys() {
			differs := a.Value(key) != b.Value(key)
			assert.Equal(t, differs, contains(changed, key), key)
		}
	})
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func TestValue_UnknownKey(t *testing.T) {
	assert.Nil(t, Defaults().Value("nope"))
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "metronome.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestStore_LoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
volume: 80
tickCount: 4
tockNumber: 2
tockVolume: 70
tickSoundFilePath: /tmp/tick.wav
`)
	s := NewStore(path, nil)
	changed, err := s.Load()
	require.NoError(t, err)

	cfg := s.Current()
	assert.Equal(t, 80, cfg.Volume)
	assert.Equal(t, 4, cfg.TickCount)
	assert.Equal(t, 2, cfg.TockNumber)
	assert.Equal(t, 70, cfg.TockVolume)
	assert.Equal(t, 96, cfg.TickVolume, "unset keys keep defaults")
	assert.Equal(t, "/tmp/tick.wav", cfg.TickPath)
	assert.Equal(t, []string{KeyVolume, KeyTickCount, KeyTockNumber, KeyTockVolume, KeyTickPath}, changed)
}

func TestStore_MissingFileUsesDefaults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	changed, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Equal(t, Defaults(), s.Current())
}

func TestStore_InvalidFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "volume: [unterminated\n")
	s := NewStore(path, nil)
	_, err := s.Load()
	assert.Error(t, err)
	assert.Equal(t, Defaults(), s.Current())
}

func TestStore_ClampsOutOfRange(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "volume: 250\ntickCount: -3\n")
	s := NewStore(path, nil)
	_, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 100, s.Current().Volume)
	assert.Equal(t, 0, s.Current().TickCount)
}

func TestStore_EnvOverride(t *testing.T) {
	t.Setenv("METRONOME_TICKCOUNT", "6")
	t.Setenv("METRONOME_TOCKSOUNDFILEPATH", "/sounds/tock.ogg")

	path := writeConfig(t, t.TempDir(), "tickCount: 2\n")
	s := NewStore(path, nil)
	_, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 6, s.Current().TickCount)
	assert.Equal(t, "/sounds/tock.ogg", s.Current().TockPath)
}

func TestStore_SetNotifiesChangedKeysOnly(t *testing.T) {
	s := NewStore("", nil)
	_, err := s.Load()
	require.NoError(t, err)

	var got []Change
	s.Subscribe(func(c Change) { got = append(got, c) })

	assert.Equal(t, []string{KeyVolume}, s.Set(KeyVolume, 60))
	assert.Empty(t, s.Set(KeyVolume, 60), "same value is not a change")
	assert.Equal(t, []string{KeyTickPath}, s.Set(KeyTickPath, "x.wav"))

	assert.Equal(t, []Change{
		{Group: constant.ConfigGroup, Key: KeyVolume},
		{Group: constant.ConfigGroup, Key: KeyTickPath},
	}, got)
	assert.Equal(t, 60, s.Current().Volume)
}

func TestStore_WatchReloadsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "volume: 10\n")

	s := NewStore(path, nil)
	require.NoError(t, s.Init())
	require.NoError(t, s.Start())
	t.Cleanup(func() { s.Stop() })

	var mu sync.Mutex
	var keys []string
	s.Subscribe(func(c Change) {
		mu.Lock()
		keys = append(keys, c.Key)
		mu.Unlock()
	})

	require.NoError(t, os.WriteFile(path, []byte("volume: 90\n"), 0600))

	require.Eventually(t, func() bool {
		return s.Current().Volume == 90
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, keys, KeyVolume)
	assert.NotContains(t, keys, KeyTickCount)

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop(), "stop is idempotent")
}

func TestRender_RoundTripsThroughStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "metronome.yaml")
	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# Metronome configuration")
	assert.Contains(t, text, "# Every Nth cue is a tock; 0 disables tocks")
	assert.Contains(t, text, "tickSoundFilePath:")

	s := NewStore(path, nil)
	_, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s.Current())
}

func TestStatic(t *testing.T) {
	cfg := Config{TickCount: 3}
	var p Provider = Static(cfg)
	assert.Equal(t, cfg, p.Current())
}
