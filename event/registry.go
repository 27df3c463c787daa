package event

import (
	"reflect"
	"strings"
	"sync"
)

var (
	registryMu    sync.RWMutex
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
	registryOnce  sync.Once
)

// RegisterType maps a name to an EventType and its payload struct type
// payloadInstance is a pointer to the payload struct, or nil when the event has none
func RegisterType(name string, et EventType, payloadInstance any) {
	registryMu.Lock()
	defer registryMu.Unlock()

	nameToType[name] = et
	typeToName[et] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

// GetEventType resolves a name, case-insensitive for the bare "Tick" alias
func GetEventType(name string) (EventType, bool) {
	InitRegistry()
	if strings.EqualFold(name, "Tick") {
		return EventGameTick, true
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the registered name, "Unknown" for unregistered types
func GetEventName(et EventType) string {
	InitRegistry()
	registryMu.RLock()
	defer registryMu.RUnlock()
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "Unknown"
}

// NewPayloadStruct returns a pointer to a zero payload, nil if the type carries none
func NewPayloadStruct(et EventType) any {
	InitRegistry()
	registryMu.RLock()
	t, ok := typeToPayload[et]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

// InitRegistry registers the built-in host events, safe to call repeatedly
func InitRegistry() {
	registryOnce.Do(func() {
		RegisterType("EventGameTick", EventGameTick, nil)
		RegisterType("EventConfigChanged", EventConfigChanged, &ConfigChangedPayload{})
		RegisterType("EventShutdown", EventShutdown, nil)
	})
}

// String implements fmt.Stringer
func (et EventType) String() string {
	return GetEventName(et)
}
