package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/metronome/audio"
	"github.com/lixenwraith/metronome/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and clip files",
	Long: `Load the configuration and try to decode both clips, reporting for each slot
whether the clip loads or cues will fall back to the built-in effect.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	store := config.NewStore(cfgFile, logger)
	if _, err := store.Load(); err != nil {
		return err
	}
	cfg := store.Current()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "config: %s\n", cfgFile)
	for _, key := range config.Keys() {
		fmt.Fprintf(out, "  %-18s %v\n", key, cfg.Value(key))
	}
	fmt.Fprintf(out, "formats: %s\n", strings.Join(audio.SupportedExtensions(), " "))

	// Decode only; no device is needed to validate clips
	mgr := audio.NewManager(audio.NewMemorySink(), nil, nil, logger)
	tick := mgr.Load(cfg.TickPath, cfg.Volume)
	tock := mgr.Load(cfg.TockPath, cfg.Volume)
	defer mgr.Release(tick)
	defer mgr.Release(tock)

	fmt.Fprintln(out, audio.Describe("tick", tick))
	fmt.Fprintln(out, audio.Describe("tock", tock))
	return nil
}
