package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/metronome/constant"
)

// Clip is a decoded audio resource bound to one output sink
// At most one playback instance exists at a time; Trigger restarts it
type Clip struct {
	path   string
	sink   Sink
	buffer *beep.Buffer

	// Guarded by the sink lock, shared with the mixing goroutine
	gainDB   float64
	current  *instance
	playing  bool
	released bool
}

// instance is one pass through the buffer
type instance struct {
	seeker beep.StreamSeeker
	volume *effects.Volume
	ctrl   *beep.Ctrl
}

func newClip(path string, buf *beep.Buffer, sink Sink, volume int) *Clip {
	return &Clip{
		path:   path,
		sink:   sink,
		buffer: buf,
		gainDB: GainDB(volume),
	}
}

// Path returns the file the clip was decoded from
func (c *Clip) Path() string { return c.path }

// Duration returns the clip length at the output rate
func (c *Clip) Duration() time.Duration {
	return c.buffer.Format().SampleRate.D(c.buffer.Len())
}

// Len returns the clip length in samples
func (c *Clip) Len() int { return c.buffer.Len() }

// GainDB returns the current gain
func (c *Clip) GainDB() float64 {
	c.sink.Lock()
	defer c.sink.Unlock()
	return c.gainDB
}

// SetGain recomputes gain from a 0-100 volume without touching the audio data
// A playing instance picks up the new gain immediately
func (c *Clip) SetGain(volume int) error {
	c.sink.Lock()
	defer c.sink.Unlock()

	if c.released {
		return ErrClipReleased
	}
	c.gainDB = GainDB(volume)
	if c.current != nil {
		c.current.volume.Volume = volumeExponent(c.gainDB)
	}
	return nil
}

// Trigger plays the clip from position zero
// A still-playing instance is stopped first, so the same clip never overlaps itself
func (c *Clip) Trigger() error {
	c.sink.Lock()
	if c.released {
		c.sink.Unlock()
		return ErrClipReleased
	}
	c.stopLocked()
	inst := c.newInstanceLocked()
	c.current = inst
	c.playing = true
	c.sink.Unlock()

	c.sink.Play(inst.ctrl)
	return nil
}

// Stop halts playback and rewinds
func (c *Clip) Stop() {
	c.sink.Lock()
	defer c.sink.Unlock()
	c.stopLocked()
}

// Release stops playback and drops the audio data, idempotent
func (c *Clip) Release() {
	c.sink.Lock()
	defer c.sink.Unlock()
	if c.released {
		return
	}
	c.stopLocked()
	c.current = nil
	c.buffer = beep.NewBuffer(c.buffer.Format())
	c.released = true
}

// Released reports whether Release was called
func (c *Clip) Released() bool {
	c.sink.Lock()
	defer c.sink.Unlock()
	return c.released
}

// Playing reports whether an instance is still sounding
func (c *Clip) Playing() bool {
	c.sink.Lock()
	defer c.sink.Unlock()
	return c.playing
}

// Position returns the playback position of the current instance in samples
func (c *Clip) Position() int {
	c.sink.Lock()
	defer c.sink.Unlock()
	if c.current == nil {
		return 0
	}
	return c.current.seeker.Position()
}

// stopLocked detaches the current instance from the mixer and rewinds it
func (c *Clip) stopLocked() {
	if c.current == nil {
		return
	}
	if c.playing {
		// A nil streamer makes the mixer drop the Ctrl on its next pass
		c.current.ctrl.Streamer = nil
		c.playing = false
	}
	_ = c.current.seeker.Seek(0)
}

func (c *Clip) newInstanceLocked() *instance {
	seeker := c.buffer.Streamer(0, c.buffer.Len())
	vol := &effects.Volume{
		Streamer: seeker,
		Base:     constant.ClipGainBase,
		Volume:   volumeExponent(c.gainDB),
	}
	inst := &instance{seeker: seeker, volume: vol}
	// Callback runs on the mixing goroutine with the sink lock already held
	done := beep.Callback(func() {
		if c.current == inst {
			c.playing = false
		}
	})
	inst.ctrl = &beep.Ctrl{Streamer: beep.Seq(vol, done)}
	return inst
}
