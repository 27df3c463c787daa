package constant

import "time"

// Audio Output Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
	AudioPrecision  = 2 // bytes per sample when buffering decoded clips

	// AudioBufferDuration determines speaker latency
	// Well under one host tick so retriggers land on the tick they were requested
	AudioBufferDuration = 50 * time.Millisecond

	// AudioResampleQuality is the beep resampler quality for clips recorded at other rates
	AudioResampleQuality = 4
)

// Clip Gain Mapping: gain_dB = volume * ClipGainRangeDB / 100 + ClipGainFloorDB
const (
	ClipGainFloorDB = -35.0
	ClipGainRangeDB = 40.0

	// ClipGainBase is the effects.Volume base; Volume = dB / 20 yields amplitude in dB
	ClipGainBase = 10.0
)

// Decoded Clip Cache
const (
	ClipCacheExpiration = 10 * time.Minute
	ClipCacheCleanup    = 15 * time.Minute
)

// Built-in Effect Synthesis (local host)
const (
	PlopDuration = 90 * time.Millisecond
	PlopAttack   = 4 * time.Millisecond
	PlopRelease  = 70 * time.Millisecond

	IncrementPlopFreq = 880.0 // Hz
	DecrementPlopFreq = 587.3 // Hz
)
