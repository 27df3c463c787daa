package event

import (
	"sync/atomic"

	"github.com/lixenwraith/metronome/constant"
)

// EventQueue is a lock-free MPSC ring buffer for host events
// Producers: clock goroutine, config watcher, signal handler
// Consumer: the driver loop only
//
// A slot is readable once its published flag is set; when producers lap the
// consumer the oldest events are overwritten
type EventQueue struct {
	events    [constant.EventQueueSize]GameEvent
	published [constant.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // next slot to read
	tail      atomic.Uint64 // next slot to write
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push reserves a slot by CAS on tail, writes it, then publishes it
func (eq *EventQueue) Push(ev GameEvent) {
	for {
		tail := eq.tail.Load()
		if !eq.tail.CompareAndSwap(tail, tail+1) {
			continue
		}

		idx := tail & constant.EventBufferMask
		eq.events[idx] = ev
		eq.published[idx].Store(true)

		// Lapped: drag head forward so the consumer skips overwritten slots
		head := eq.head.Load()
		if tail+1-head > constant.EventQueueSize {
			eq.head.CompareAndSwap(head, tail+1-constant.EventQueueSize)
		}
		return
	}
}

// Consume returns pending events in FIFO order, stopping at the first unpublished slot
func (eq *EventQueue) Consume() []GameEvent {
	for {
		head := eq.head.Load()
		tail := eq.tail.Load()
		if tail == head {
			return nil
		}

		avail := tail - head
		if avail > constant.EventQueueSize {
			avail = constant.EventQueueSize
			head = tail - constant.EventQueueSize
		}

		out := make([]GameEvent, 0, avail)
		for i := uint64(0); i < avail; i++ {
			idx := (head + i) & constant.EventBufferMask
			if !eq.published[idx].Load() {
				break
			}
			out = append(out, eq.events[idx])
			eq.published[idx].Store(false)
		}

		if eq.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns an approximate pending count
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	if n := tail - head; n < constant.EventQueueSize {
		return int(n)
	}
	return constant.EventQueueSize
}
