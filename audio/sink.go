package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/metronome/constant"
)

// Sink is an output that clip instances are mixed into
// Lock/Unlock guard state shared with the mixing goroutine; Play must not be
// called while the lock is held
type Sink interface {
	Format() beep.Format
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// OutputFormat is the format clips are decoded into
func OutputFormat() beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(constant.AudioSampleRate),
		NumChannels: constant.AudioChannels,
		Precision:   constant.AudioPrecision,
	}
}

// SpeakerSink plays through the system audio device via beep's speaker
type SpeakerSink struct {
	mu          sync.Mutex
	format      beep.Format
	initialized bool
}

// NewSpeakerSink creates an uninitialized speaker sink
func NewSpeakerSink() *SpeakerSink {
	return &SpeakerSink{format: OutputFormat()}
}

// Initialize opens the audio device, safe to call twice
func (s *SpeakerSink) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	sr := s.format.SampleRate
	if err := speaker.Init(sr, sr.N(constant.AudioBufferDuration)); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the device
func (s *SpeakerSink) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

func (s *SpeakerSink) Format() beep.Format { return s.format }

func (s *SpeakerSink) Play(st beep.Streamer) {
	s.mu.Lock()
	ready := s.initialized
	s.mu.Unlock()
	if !ready {
		return
	}
	speaker.Play(st)
}

func (s *SpeakerSink) Lock()   { speaker.Lock() }
func (s *SpeakerSink) Unlock() { speaker.Unlock() }

// MemorySink is a pull-driven mixer with no device behind it
// Used by tests, dry runs and headless hosts; samples only advance on Pull
type MemorySink struct {
	mu     sync.Mutex
	format beep.Format
	mixer  beep.Mixer
}

// NewMemorySink creates a sink in the standard output format
func NewMemorySink() *MemorySink {
	return &MemorySink{format: OutputFormat()}
}

func (m *MemorySink) Format() beep.Format { return m.format }

func (m *MemorySink) Play(st beep.Streamer) {
	m.mu.Lock()
	m.mixer.Add(st)
	m.mu.Unlock()
}

func (m *MemorySink) Lock()   { m.mu.Lock() }
func (m *MemorySink) Unlock() { m.mu.Unlock() }

// Pull mixes n samples out of every active streamer
func (m *MemorySink) Pull(n int) [][2]float64 {
	buf := make([][2]float64, n)
	m.mu.Lock()
	m.mixer.Stream(buf)
	m.mu.Unlock()
	return buf
}

// Advance pulls d worth of samples and discards them
func (m *MemorySink) Advance(d time.Duration) {
	m.Pull(m.format.SampleRate.N(d))
}

// Active returns the number of streamers still in the mixer
func (m *MemorySink) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mixer.Len()
}

// Drive advances the sink in real time until ctx is done
func (m *MemorySink) Drive(ctx context.Context) {
	ticker := time.NewTicker(constant.AudioBufferDuration)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Advance(constant.AudioBufferDuration)
		}
	}
}
