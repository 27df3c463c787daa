package event

// EventType represents the type of host event
type EventType int

const (
	// EventGameTick marks one host simulation step
	// Trigger: engine.ClockScheduler, simulate driver
	// Consumer: metronome.Plugin | Payload: nil
	EventGameTick EventType = iota

	// EventConfigChanged signals one changed configuration key
	// Trigger: config.Store after a file reload or Set
	// Consumer: metronome.Plugin | Payload: *ConfigChangedPayload
	EventConfigChanged

	// EventShutdown requests the driver loop to stop after the current frame
	// Trigger: signal handler, terminal quit key
	// Consumer: engine.ClockScheduler | Payload: nil
	EventShutdown
)

// GameEvent is one queued host event
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64 // Host tick number at emission
}
