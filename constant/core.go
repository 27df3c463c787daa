package constant

import "time"

// Host Timing
const (
	// HostTickInterval is the host simulation step (one tick event per step)
	HostTickInterval = 600 * time.Millisecond

	// FrameUpdateInterval is the terminal display refresh interval
	FrameUpdateInterval = 50 * time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Configuration
const (
	// ConfigGroup is the group identifier carried by change notifications owned by this plugin
	ConfigGroup = "metronome"

	// ConfigEnvPrefix prefixes environment overrides, e.g. METRONOME_VOLUME=80
	ConfigEnvPrefix = "METRONOME"

	// DefaultConfigFile is used when no --config flag is given
	DefaultConfigFile = "metronome.yaml"
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "metronome.log"
	MaxLogSize  = 10 * 1024 * 1024
)
