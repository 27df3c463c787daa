package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/metronome/audio"
	"github.com/lixenwraith/metronome/config"
	"github.com/lixenwraith/metronome/constant"
	"github.com/lixenwraith/metronome/engine"
	"github.com/lixenwraith/metronome/event"
	"github.com/lixenwraith/metronome/host"
	"github.com/lixenwraith/metronome/metronome"
	"github.com/lixenwraith/metronome/status"
)

var (
	simTicks         int
	simEffectsVolume int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Dry-run the pattern without audio output",
	Long: `Feed a fixed number of host ticks through the metronome using an in-memory mixer
and a recording host, printing one line per candidate firing.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simTicks, "ticks", 16, "number of host ticks to feed")
	simulateCmd.Flags().IntVar(&simEffectsVolume, "effects-volume", 50, "shared effects volume of the recording host")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simTicks < 0 {
		return fmt.Errorf("--ticks must be >= 0, got %d", simTicks)
	}

	store := config.NewStore(cfgFile, logger)
	if _, err := store.Load(); err != nil {
		return err
	}

	reg := status.NewRegistry()
	sink := audio.NewMemorySink()
	mgr := audio.NewManager(sink, nil, reg, logger)
	recorder := host.NewRecorder(simEffectsVolume)
	plugin := metronome.NewPlugin(store, mgr, recorder, reg, logger)

	queue := event.NewEventQueue()
	router := engine.NewEventRouter(queue)
	router.Register(plugin)
	clock := engine.NewClockScheduler(queue, router, constant.HostTickInterval, reg, logger)

	out := cmd.OutOrStdout()
	plugin.SetObserver(cuePrinter(out))
	if err := plugin.Start(); err != nil {
		return err
	}
	tick, tock := plugin.Slots()
	fmt.Fprintln(out, audio.Describe("tick", tick))
	fmt.Fprintln(out, audio.Describe("tock", tock))

	for range simTicks {
		clock.Step()
		sink.Advance(constant.HostTickInterval)
	}
	if err := plugin.Stop(); err != nil {
		return err
	}

	if got := recorder.SoundEffectsVolume(); got != simEffectsVolume {
		return fmt.Errorf("shared effects volume left at %d, want %d", got, simEffectsVolume)
	}

	fmt.Fprintf(out, "ticks=%d candidates=%d ticks_sounded=%d tocks_sounded=%d fallbacks=%d\n",
		reg.Ints.Get(constant.StatEngineTicks).Load(),
		reg.Ints.Get(constant.StatCandidates).Load(),
		reg.Ints.Get(constant.StatCueTick).Load(),
		reg.Ints.Get(constant.StatCueTock).Load(),
		reg.Ints.Get(constant.StatFallbacks).Load())
	return nil
}
