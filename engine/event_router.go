package engine

import "github.com/lixenwraith/metronome/event"

// EventHandler processes specific event types
// Plugins implement this interface to receive routed events
type EventHandler interface {
	// HandleEvent processes a single event
	// Called synchronously on the driver goroutine during the dispatch phase
	HandleEvent(ev event.GameEvent)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []event.EventType
}

// EventRouter dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch on the driver goroutine
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Every event is handled to completion before the next one
//
// Usage:
//  1. Create router: NewEventRouter(queue)
//  2. Register handlers: router.Register(plugin)
//  3. Each frame: router.DispatchAll()
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
	queue    *event.EventQueue
}

// NewEventRouter creates a router attached to the given queue
func NewEventRouter(queue *event.EventQueue) *EventRouter {
	return &EventRouter{
		handlers: make(map[event.EventType][]EventHandler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
// Must be called before the driver starts
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending events and routes them to handlers in FIFO order
// All handlers for an event are called before moving to the next event
// Returns the number of events consumed
func (r *EventRouter) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
	return len(events)
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *EventRouter) HasHandlers(t event.EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *EventRouter) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}
