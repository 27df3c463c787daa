package constant

// Status registry keys
const (
	StatTicks       = "metronome.ticks"
	StatCandidates  = "metronome.candidates"
	StatTockCounter = "metronome.tock_counter"
	StatCueTick     = "metronome.cues.tick"
	StatCueTock     = "metronome.cues.tock"
	StatFallbacks   = "metronome.fallbacks"
	StatLastCue     = "metronome.last_cue"
	StatActive      = "metronome.active"

	StatClipsLoaded   = "audio.loaded"
	StatLoadFailures  = "audio.load_failures"
	StatClipTriggers  = "audio.triggers"
	StatClipsReleased = "audio.released"

	StatEngineTicks  = "engine.ticks"
	StatEngineEvents = "engine.events"
)
