package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/metronome/config"
	"github.com/lixenwraith/metronome/constant"
	"github.com/lixenwraith/metronome/metronome"
	"github.com/lixenwraith/metronome/status"
)

func newTestDisplay(t *testing.T) (*Display, tcell.SimulationScreen, *status.Registry) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	reg := status.NewRegistry()
	cfg := config.Static(config.Config{TickCount: 4, TockNumber: 2, Volume: 35, TickVolume: 50, TockVolume: 80})
	return NewDisplay(screen, reg, cfg, nil), screen, reg
}

// row returns the text of screen line y
func row(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDisplay_DrawsCountersAndFlash(t *testing.T) {
	d, screen, reg := newTestDisplay(t)
	base := time.Unix(100, 0)
	d.now = func() time.Time { return base }

	reg.Ints.Get(constant.StatCueTock).Store(3)
	reg.Strings.Get(constant.StatLastCue).Store("tock")
	d.OnCue(metronome.CueEvent{Cue: metronome.CueTock, Tick: 8})
	d.draw()

	assert.Equal(t, "metronome", row(screen, 0))
	assert.Contains(t, row(screen, 3), "tock")
	assert.Contains(t, row(screen, 6), "4 (offset 0)")

	var found bool
	for y := 0; y < 24; y++ {
		line := row(screen, y)
		if strings.HasPrefix(line, constant.StatCueTock) {
			assert.True(t, strings.HasSuffix(line, "3"), line)
			found = true
		}
	}
	assert.True(t, found)

	// Flash fades after the flash window
	d.now = func() time.Time { return base.Add(time.Second) }
	d.draw()
	assert.NotContains(t, row(screen, 3), "tock")
}

func TestDisplay_HandleInput(t *testing.T) {
	d, screen, _ := newTestDisplay(t)
	paused := false
	controls := Controls{TogglePause: func() bool { paused = !paused; return paused }}

	assert.True(t, d.handleInput(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), controls))
	assert.True(t, paused)
	d.draw()
	assert.Contains(t, row(screen, 0), "[paused]")

	assert.True(t, d.handleInput(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), controls))
	assert.False(t, d.handleInput(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), controls))
	assert.False(t, d.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), controls))
	assert.False(t, d.handleInput(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), controls))
}

func TestDisplay_RunQuitsOnKey(t *testing.T) {
	d, screen, _ := newTestDisplay(t)
	quit := make(chan struct{})
	done := make(chan struct{})

	go func() {
		d.Run(context.Background(), Controls{Quit: func() { close(quit) }})
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("display did not quit")
	}
	select {
	case <-quit:
	default:
		t.Fatal("quit callback not called")
	}
}

func TestDisplay_RunStopsOnContext(t *testing.T) {
	d, _, _ := newTestDisplay(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx, Controls{})
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("display did not stop")
	}
}
