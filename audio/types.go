package audio

import (
	"errors"
	"fmt"
)

// Sentinel errors
// Load failures never escape the Manager; they end up as Unloaded.Reason
var (
	ErrNoDevice          = errors.New("audio output device unavailable")
	ErrClipNotFound      = errors.New("clip file not found")
	ErrUnsupportedFormat = errors.New("unsupported clip format")
	ErrDecode            = errors.New("clip decode failed")
	ErrEmptyClip         = errors.New("clip contains no samples")
	ErrClipReleased      = errors.New("clip already released")
)

// Slot is the clip state of one cue: Loaded or Unloaded
// Callers type-switch on it; a nil Slot behaves as Unloaded
type Slot interface {
	isSlot()
	fmt.Stringer
}

// Loaded holds a decoded, playable clip
type Loaded struct {
	Clip *Clip
}

// Unloaded means cues of this slot use the host's built-in effect
// Reason is nil when no path is configured
type Unloaded struct {
	Path   string
	Reason error
}

func (Loaded) isSlot()   {}
func (Unloaded) isSlot() {}

func (l Loaded) String() string {
	return "loaded " + l.Clip.Path()
}

func (u Unloaded) String() string {
	switch {
	case u.Path == "":
		return "unloaded (no path)"
	case u.Reason != nil:
		return fmt.Sprintf("unloaded %s: %v", u.Path, u.Reason)
	default:
		return "unloaded " + u.Path
	}
}

// IsLoaded reports whether s carries a clip
func IsLoaded(s Slot) bool {
	_, ok := s.(Loaded)
	return ok
}
