package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/metronome/constant"
)

var (
	cfgFile string
	debug   bool

	logger  = slog.New(slog.DiscardHandler)
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "metronome",
	Short: "Tick-synchronized tick/tock cue player",
	Long: `Plays a tick or tock cue on a fixed host tick pattern, from audio clips when
configured and from built-in effects otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, f, err := setupLogging(debug)
		if err != nil {
			return err
		}
		logger, logFile = l, f
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			_ = logFile.Close()
			logFile = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", constant.DefaultConfigFile, "config file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug logs to "+constant.LogDir+"/"+constant.LogFileName)
}
