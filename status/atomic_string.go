package status

import "sync/atomic"

// MaxStringLen bounds stored labels (cue names, slot states)
const MaxStringLen = 20

// AtomicString holds a short label, truncated to MaxStringLen
// Zero value reads as ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
