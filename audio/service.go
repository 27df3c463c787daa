package audio

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// AudioService owns the output sink as a service.Service and attaches it to a Manager
// A missing audio device is not an error: the service stays up with no sink
// and every clip load degrades to the host's built-in effects
type AudioService struct {
	headless bool
	log      *slog.Logger
	manager  *Manager

	speaker  *SpeakerSink
	memory   *MemorySink
	cancel   context.CancelFunc
	disabled atomic.Bool
}

// NewService creates a new audio service feeding manager
func NewService(manager *Manager, logger *slog.Logger) *AudioService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AudioService{manager: manager, log: logger.With("component", "audio")}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: bool - headless (mix into a real-time MemorySink instead of the device)
func (s *AudioService) Init(args ...any) error {
	if len(args) > 0 {
		if headless, ok := args[0].(bool); ok {
			s.headless = headless
		}
	}
	return nil
}

// Start implements Service
// Opens the device; on failure the service is disabled and Sink returns nil
func (s *AudioService) Start() error {
	if s.headless {
		ctx, cancel := context.WithCancel(context.Background())
		s.memory = NewMemorySink()
		s.cancel = cancel
		go s.memory.Drive(ctx)
		s.attach()
		s.log.Info("audio running headless")
		return nil
	}

	sp := NewSpeakerSink()
	if err := sp.Initialize(); err != nil {
		s.disabled.Store(true)
		s.log.Warn("audio device unavailable, clips disabled", "error", err)
		return nil
	}
	s.speaker = sp
	s.attach()
	s.log.Info("audio device opened", "sample_rate", sp.Format().SampleRate)
	return nil
}

func (s *AudioService) attach() {
	if s.manager != nil {
		s.manager.Attach(s.Sink())
	}
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.manager != nil {
		s.manager.Attach(nil)
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.speaker != nil {
		s.speaker.Cleanup()
		s.speaker = nil
	}
	s.memory = nil
	return nil
}

// IsDisabled returns true if no output is available
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Sink returns the active output, nil when disabled or not started
func (s *AudioService) Sink() Sink {
	switch {
	case s.disabled.Load():
		return nil
	case s.memory != nil:
		return s.memory
	case s.speaker != nil:
		return s.speaker
	default:
		return nil
	}
}
