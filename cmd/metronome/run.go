package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/metronome/audio"
	"github.com/lixenwraith/metronome/config"
	"github.com/lixenwraith/metronome/constant"
	"github.com/lixenwraith/metronome/engine"
	"github.com/lixenwraith/metronome/event"
	"github.com/lixenwraith/metronome/host"
	"github.com/lixenwraith/metronome/metronome"
	"github.com/lixenwraith/metronome/service"
	"github.com/lixenwraith/metronome/status"
	"github.com/lixenwraith/metronome/terminal"
)

var (
	runVisual        bool
	runHeadless      bool
	runEffectsVolume int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the metronome on a live 600ms host tick",
	Long: `Run the metronome against the local host: clips play through the audio device
(or a silent in-memory mixer with --headless) and the config file is watched for changes.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runVisual, "visual", false, "show the terminal beat display")
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "mix into memory instead of the audio device")
	runCmd.Flags().IntVar(&runEffectsVolume, "effects-volume", 100, "initial shared effects volume of the local host")
	rootCmd.AddCommand(runCmd)
}

// app is the wired runtime of the run command
type app struct {
	reg    *status.Registry
	store  *config.Store
	mgr    *audio.Manager
	client *host.LocalClient
	plugin *metronome.Plugin
	queue  *event.EventQueue
	clock  *engine.ClockScheduler
	hub    *service.Hub
}

func newApp(path string) (*app, error) {
	a := &app{
		reg:   status.NewRegistry(),
		queue: event.NewEventQueue(),
		hub:   service.NewHub(),
	}
	a.store = config.NewStore(path, logger)
	a.mgr = audio.NewManager(nil, audio.NewClipCache(), a.reg, logger)
	a.client = host.NewLocalClient(nil, runEffectsVolume, logger)
	a.plugin = metronome.NewPlugin(a.store, a.mgr, a.client, a.reg, logger)

	router := engine.NewEventRouter(a.queue)
	router.Register(a.plugin)
	a.clock = engine.NewClockScheduler(a.queue, router, constant.HostTickInterval, a.reg, logger)

	for _, svc := range []service.Service{a.store, audio.NewService(a.mgr, logger), a.plugin} {
		if err := a.hub.Register(svc); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfgFile)
	if err != nil {
		return err
	}

	if err := a.hub.InitAll(map[string][]any{
		"config": {true},
		"audio":  {runHeadless},
	}); err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}
	if err := a.hub.StartAll(); err != nil {
		return fmt.Errorf("starting services: %w", err)
	}
	a.client.Attach(a.mgr.Sink())

	// Subscribed after the initial load; changes reach the plugin on the driver goroutine, ahead of the next tick
	a.store.Subscribe(func(c config.Change) {
		event.EmitConfigChanged(a.queue, c.Group, c.Key, a.clock.Frame())
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var screen tcell.Screen
	var display *terminal.Display
	if runVisual {
		screen, err = tcell.NewScreen()
		if err == nil {
			err = screen.Init()
		}
		if err != nil {
			_ = a.hub.StopAll()
			return fmt.Errorf("opening terminal: %w", err)
		}
		display = terminal.NewDisplay(screen, a.reg, a.store, logger)
		a.plugin.SetObserver(display.OnCue)
	} else {
		a.plugin.SetObserver(cuePrinter(cmd.OutOrStdout()))
	}

	a.clock.Start()
	logger.Info("metronome running", "config", a.store.Path(), "session", a.plugin.Session())

	displayCtx, cancelDisplay := context.WithCancel(ctx)
	defer cancelDisplay()
	if display != nil {
		go display.Run(displayCtx, terminal.Controls{
			Quit: func() { event.EmitShutdown(a.queue, a.clock.Frame()) },
			TogglePause: func() bool {
				if a.clock.IsPaused() {
					a.clock.Resume()
				} else {
					a.clock.Pause()
				}
				return a.clock.IsPaused()
			},
		})
	}

	select {
	case <-ctx.Done():
		event.EmitShutdown(a.queue, a.clock.Frame())
		<-a.clock.Done()
	case <-a.clock.Done():
	}
	a.clock.Stop()
	cancelDisplay()
	if screen != nil {
		screen.Fini()
	}

	stopErr := a.hub.StopAll()
	if err := a.clock.Err(); err != nil {
		return err
	}
	return stopErr
}

// cuePrinter writes one line per candidate firing
func cuePrinter(w io.Writer) func(metronome.CueEvent) {
	return func(ev metronome.CueEvent) {
		fmt.Fprintln(w, formatCue(ev))
	}
}

func formatCue(ev metronome.CueEvent) string {
	switch {
	case ev.Cue == metronome.CueNone:
		return fmt.Sprintf("tick %5d  silent", ev.Tick)
	case ev.Clip:
		return fmt.Sprintf("tick %5d  %-4s  clip", ev.Tick, ev.Cue)
	default:
		return fmt.Sprintf("tick %5d  %-4s  effect volume=%d", ev.Tick, ev.Cue, ev.Volume)
	}
}
