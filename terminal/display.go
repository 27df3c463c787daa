// Package terminal renders a live beat display with tcell
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/metronome/config"
	"github.com/lixenwraith/metronome/constant"
	"github.com/lixenwraith/metronome/metronome"
	"github.com/lixenwraith/metronome/status"
)

// flashDuration is how long the beat indicator stays lit after a cue
const flashDuration = 180 * time.Millisecond

var (
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleLabel  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleValue  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTick   = tcell.StyleDefault.Background(tcell.ColorGreen)
	styleTock   = tcell.StyleDefault.Background(tcell.ColorOrange)
	styleIdle   = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray)
	stylePaused = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Controls are the actions the display can request from its owner
type Controls struct {
	// Quit is called once when the user asks to exit
	Quit func()
	// TogglePause flips tick emission and returns the new paused state
	TogglePause func() bool
}

// Display draws cue flashes, counters and the active configuration
type Display struct {
	screen tcell.Screen
	reg    *status.Registry
	cfg    config.Provider
	log    *slog.Logger

	mu      sync.Mutex
	lastCue metronome.CueEvent
	cueAt   time.Time
	paused  bool
	now     func() time.Time
}

// NewDisplay creates a display on an initialized screen
func NewDisplay(screen tcell.Screen, reg *status.Registry, cfg config.Provider, logger *slog.Logger) *Display {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Display{
		screen: screen,
		reg:    reg,
		cfg:    cfg,
		log:    logger.With("component", "terminal"),
		now:    time.Now,
	}
}

// OnCue records a sounded cue; safe to call from the driver goroutine
// Silent candidates do not flash
func (d *Display) OnCue(ev metronome.CueEvent) {
	if ev.Cue == metronome.CueNone {
		return
	}
	d.mu.Lock()
	d.lastCue = ev
	d.cueAt = d.now()
	d.mu.Unlock()
}

// Run draws at the frame interval until ctx is done or the user quits
func (d *Display) Run(ctx context.Context, controls Controls) {
	ticker := time.NewTicker(constant.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	d.draw()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-eventChan:
			if !d.handleInput(ev, controls) {
				if controls.Quit != nil {
					controls.Quit()
				}
				return
			}
		case <-ticker.C:
			d.draw()
		}
	}
}

// handleInput returns false when the user asked to quit
func (d *Display) handleInput(ev tcell.Event, controls Controls) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			if controls.TogglePause != nil {
				paused := controls.TogglePause()
				d.mu.Lock()
				d.paused = paused
				d.mu.Unlock()
				d.log.Info("pause toggled", "paused", paused)
			}
		}
	case *tcell.EventResize:
		d.screen.Sync()
	}
	return true
}

func (d *Display) draw() {
	d.mu.Lock()
	cue, cueAt, paused := d.lastCue, d.cueAt, d.paused
	now := d.now()
	d.mu.Unlock()

	d.screen.Clear()

	title := "metronome"
	d.text(0, 0, title, styleTitle)
	if paused {
		d.text(len(title)+2, 0, "[paused]", stylePaused)
	}

	// Beat indicator
	beat := styleIdle
	label := ""
	if !cueAt.IsZero() && now.Sub(cueAt) < flashDuration {
		label = cue.Cue.String()
		if cue.Cue == metronome.CueTock {
			beat = styleTock
		} else {
			beat = styleTick
		}
	}
	for y := 2; y < 5; y++ {
		for x := 0; x < 12; x++ {
			d.screen.SetContent(x, y, ' ', nil, beat)
		}
	}
	d.text(4, 3, label, beat)

	cfg := d.cfg.Current()
	row := 6
	d.pair(row, "period", fmt.Sprintf("%d (offset %d)", cfg.TickCount, cfg.TickOffset))
	row++
	d.pair(row, "tock every", fmt.Sprintf("%d", cfg.TockNumber))
	row++
	d.pair(row, "volumes", fmt.Sprintf("clip %d  tick %d  tock %d", cfg.Volume, cfg.TickVolume, cfg.TockVolume))
	row += 2

	for _, key := range []string{
		constant.StatEngineTicks,
		constant.StatTicks,
		constant.StatCandidates,
		constant.StatTockCounter,
		constant.StatCueTick,
		constant.StatCueTock,
		constant.StatFallbacks,
		constant.StatClipTriggers,
	} {
		d.pair(row, key, fmt.Sprintf("%d", d.reg.Ints.Get(key).Load()))
		row++
	}
	d.pair(row, constant.StatLastCue, d.reg.Strings.Get(constant.StatLastCue).Load())

	_, h := d.screen.Size()
	d.text(0, h-1, "space pause  q quit", styleLabel)

	d.screen.Show()
}

func (d *Display) pair(y int, label, value string) {
	d.text(0, y, label, styleLabel)
	d.text(24, y, value, styleValue)
}

func (d *Display) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		d.screen.SetContent(x+i, y, r, nil, style)
	}
}
