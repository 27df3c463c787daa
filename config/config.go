// Package config provides the metronome configuration, its defaults and a
// file-backed store with change notification.
package config

// Keys of the metronome configuration group, in canonical order.
const (
	KeyVolume     = "volume"
	KeyTickCount  = "tickCount"
	KeyTickOffset = "tickOffset"
	KeyTockNumber = "tockNumber"
	KeyTickVolume = "tickVolume"
	KeyTockVolume = "tockVolume"
	KeyTickPath   = "tickSoundFilePath"
	KeyTockPath   = "tockSoundFilePath"
)

// Keys returns every configuration key in canonical order.
func Keys() []string {
	return []string{
		KeyVolume, KeyTickCount, KeyTickOffset, KeyTockNumber,
		KeyTickVolume, KeyTockVolume, KeyTickPath, KeyTockPath,
	}
}

// Config holds the metronome settings.
// Zero counts and zero volumes are valid values that disable behavior.
type Config struct {
	Volume     int    `mapstructure:"volume" yaml:"volume"`
	TickCount  int    `mapstructure:"tickCount" yaml:"tickCount"`
	TickOffset int    `mapstructure:"tickOffset" yaml:"tickOffset"`
	TockNumber int    `mapstructure:"tockNumber" yaml:"tockNumber"`
	TickVolume int    `mapstructure:"tickVolume" yaml:"tickVolume"`
	TockVolume int    `mapstructure:"tockVolume" yaml:"tockVolume"`
	TickPath   string `mapstructure:"tickSoundFilePath" yaml:"tickSoundFilePath"`
	TockPath   string `mapstructure:"tockSoundFilePath" yaml:"tockSoundFilePath"`
}

// Provider exposes a read-only snapshot of the current configuration.
type Provider interface {
	Current() Config
}

// Static is a Provider that never changes.
type Static Config

// Current implements Provider.
func (s Static) Current() Config {
	return Config(s)
}

// Defaults returns the default configuration: a tick on every host tick and no tocks.
func Defaults() Config {
	return Config{
		Volume:     35,
		TickCount:  1,
		TickOffset: 0,
		TockNumber: 0,
		TickVolume: 96,
		TockVolume: 0,
	}
}

// Normalize clamps out-of-range values instead of rejecting them.
// Volumes clamp to 0-100; negative counts clamp to 0 (disabled).
func (c Config) Normalize() Config {
	c.Volume = clamp(c.Volume, 0, 100)
	c.TickVolume = clamp(c.TickVolume, 0, 100)
	c.TockVolume = clamp(c.TockVolume, 0, 100)
	c.TickCount = max(c.TickCount, 0)
	c.TockNumber = max(c.TockNumber, 0)
	return c
}

// Value returns the field for key, nil for an unknown key.
func (c Config) Value(key string) any {
	switch key {
	case KeyVolume:
		return c.Volume
	case KeyTickCount:
		return c.TickCount
	case KeyTickOffset:
		return c.TickOffset
	case KeyTockNumber:
		return c.TockNumber
	case KeyTickVolume:
		return c.TickVolume
	case KeyTockVolume:
		return c.TockVolume
	case KeyTickPath:
		return c.TickPath
	case KeyTockPath:
		return c.TockPath
	default:
		return nil
	}
}

// Diff returns the keys whose values differ between old and new, in canonical order.
func Diff(old, new Config) []string {
	var changed []string
	for _, key := range Keys() {
		if old.Value(key) != new.Value(key) {
			changed = append(changed, key)
		}
	}
	return changed
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
