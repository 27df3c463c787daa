package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/metronome/constant"
)

func TestEventQueue_FIFO(t *testing.T) {
	q := NewEventQueue()
	EmitConfigChanged(q, constant.ConfigGroup, "volume", 1)
	EmitTick(q, 1)
	EmitShutdown(q, 2)

	require.Equal(t, 3, q.Len())
	events := q.Consume()
	require.Len(t, events, 3)
	assert.Equal(t, EventConfigChanged, events[0].Type)
	assert.Equal(t, EventGameTick, events[1].Type)
	assert.Equal(t, EventShutdown, events[2].Type)

	payload, ok := events[0].Payload.(*ConfigChangedPayload)
	require.True(t, ok)
	assert.Equal(t, "volume", payload.Key)
	assert.Equal(t, constant.ConfigGroup, payload.Group)

	assert.Nil(t, q.Consume())
	assert.Equal(t, 0, q.Len())
}

func TestEventQueue_OverflowKeepsNewest(t *testing.T) {
	q := NewEventQueue()
	total := constant.EventQueueSize + 10
	for i := 0; i < total; i++ {
		EmitTick(q, int64(i))
	}

	events := q.Consume()
	require.Len(t, events, constant.EventQueueSize)
	assert.Equal(t, int64(10), events[0].Frame)
	assert.Equal(t, int64(total-1), events[len(events)-1].Frame)
}

func TestEventQueue_ConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	const producers, each = 4, 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				EmitTick(q, int64(i))
			}
		}()
	}
	wg.Wait()

	got := 0
	for batch := q.Consume(); batch != nil; batch = q.Consume() {
		got += len(batch)
	}
	assert.Equal(t, producers*each, got)
}

func TestRegistry_Names(t *testing.T) {
	assert.Equal(t, "EventGameTick", EventGameTick.String())
	assert.Equal(t, "EventConfigChanged", GetEventName(EventConfigChanged))

	et, ok := GetEventType("tick")
	require.True(t, ok)
	assert.Equal(t, EventGameTick, et)

	et, ok = GetEventType("EventShutdown")
	require.True(t, ok)
	assert.Equal(t, EventShutdown, et)

	_, ok = NewPayloadStruct(EventConfigChanged).(*ConfigChangedPayload)
	assert.True(t, ok)
	assert.Nil(t, NewPayloadStruct(EventGameTick))
}
