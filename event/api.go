package event

// EmitTick pushes a payload-free tick event
func EmitTick(q *EventQueue, frame int64) {
	q.Push(GameEvent{Type: EventGameTick, Frame: frame})
}

// EmitConfigChanged pushes one change notification for group/key
func EmitConfigChanged(q *EventQueue, group, key string, frame int64) {
	q.Push(GameEvent{
		Type:    EventConfigChanged,
		Payload: &ConfigChangedPayload{Group: group, Key: key},
		Frame:   frame,
	})
}

// EmitShutdown pushes a stop request
func EmitShutdown(q *EventQueue, frame int64) {
	q.Push(GameEvent{Type: EventShutdown, Frame: frame})
}
