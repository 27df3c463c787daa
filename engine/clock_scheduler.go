package engine

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/metronome/constant"
	"github.com/lixenwraith/metronome/event"
	"github.com/lixenwraith/metronome/status"
)

// ClockScheduler is the host tick source: it emits one tick event per interval
// and dispatches everything queued, in order, on its own goroutine
// Events pushed between frames (config changes) are dispatched ahead of the
// tick of the next frame
type ClockScheduler struct {
	queue  *event.EventQueue
	router *EventRouter
	clock  TimeProvider
	log    *slog.Logger

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time // Next tick deadline for drift correction
	mu               sync.RWMutex

	frame    atomic.Int64
	paused   atomic.Bool
	shutdown atomic.Bool

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	done     chan struct{}
	err      atomic.Pointer[error]

	// Cached metric pointers
	statTicks  *atomic.Int64
	statEvents *atomic.Int64
}

// NewClockScheduler creates a scheduler ticking every tickInterval
// The scheduler registers itself on router for EventShutdown
func NewClockScheduler(queue *event.EventQueue, router *EventRouter, tickInterval time.Duration, reg *status.Registry, logger *slog.Logger) *ClockScheduler {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cs := &ClockScheduler{
		queue:        queue,
		router:       router,
		clock:        NewMonotonicTimeProvider(),
		log:          logger.With("component", "clock"),
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
		done:         make(chan struct{}),
		statTicks:    reg.Ints.Get(constant.StatEngineTicks),
		statEvents:   reg.Ints.Get(constant.StatEngineEvents),
	}
	router.Register(cs)
	return cs
}

// SetTimeProvider replaces the clock; must be called before Start
func (cs *ClockScheduler) SetTimeProvider(tp TimeProvider) {
	cs.clock = tp
}

// EventTypes implements EventHandler
func (cs *ClockScheduler) EventTypes() []event.EventType {
	return []event.EventType{event.EventShutdown}
}

// HandleEvent implements EventHandler; a shutdown ends the loop after the current frame
func (cs *ClockScheduler) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventShutdown {
		cs.shutdown.Store(true)
	}
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		go cs.schedulerLoop()
	}
}

// Stop halts the scheduler loop and waits for it to exit
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		close(cs.stopChan)
	})
	cs.wg.Wait()
}

// Done is closed when the loop exits: Stop, shutdown event or crash
func (cs *ClockScheduler) Done() <-chan struct{} {
	return cs.done
}

// Err returns the recovered crash, nil after a clean exit
func (cs *ClockScheduler) Err() error {
	if p := cs.err.Load(); p != nil {
		return *p
	}
	return nil
}

// Pause suppresses tick events; queued events are still dispatched
func (cs *ClockScheduler) Pause() { cs.paused.Store(true) }

// Resume re-enables tick events
func (cs *ClockScheduler) Resume() { cs.paused.Store(false) }

// IsPaused returns current pause state
func (cs *ClockScheduler) IsPaused() bool { return cs.paused.Load() }

// Frame returns the number of ticks emitted
func (cs *ClockScheduler) Frame() int64 { return cs.frame.Load() }

// Step emits one tick and dispatches synchronously, bypassing the timer
// For dry runs; must not be mixed with a running loop
func (cs *ClockScheduler) Step() {
	cs.processTick()
}

// schedulerLoop runs the fixed-interval loop with drift correction
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()
	defer close(cs.done)
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("clock scheduler crashed: %v", r)
			cs.err.Store(&err)
			cs.log.Error("driver loop crashed", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	cs.mu.Lock()
	cs.nextTickDeadline = cs.clock.Now().Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		now := cs.clock.Now()

		cs.mu.RLock()
		deadline := cs.nextTickDeadline
		cs.mu.RUnlock()

		if !now.Before(deadline) {
			cs.processTick()
			if cs.shutdown.Load() {
				cs.log.Info("shutdown requested", "frame", cs.frame.Load())
				return
			}

			cs.mu.Lock()
			cs.nextTickDeadline = advanceDeadline(cs.nextTickDeadline, now, cs.tickInterval)
			deadline = cs.nextTickDeadline
			cs.mu.Unlock()
		}

		sleepDuration := deadline.Sub(cs.clock.Now())
		if sleepDuration <= 0 {
			continue
		}

		timer.Reset(sleepDuration)
		select {
		case <-timer.C:
		case <-cs.stopChan:
			return
		}
	}
}

// advanceDeadline moves deadline one interval forward
// When more than two intervals behind, missed ticks are skipped rather than burst
func advanceDeadline(deadline, now time.Time, interval time.Duration) time.Time {
	next := deadline.Add(interval)
	if now.Sub(next) > interval*2 {
		next = now.Add(interval)
	}
	return next
}

// processTick executes one clock cycle: queue the tick, then dispatch everything pending
func (cs *ClockScheduler) processTick() {
	if !cs.paused.Load() {
		frame := cs.frame.Add(1)
		event.EmitTick(cs.queue, frame)
		cs.statTicks.Store(frame)
	}

	n := cs.router.DispatchAll()
	cs.statEvents.Add(int64(n))
}
