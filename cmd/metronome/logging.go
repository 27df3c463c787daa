package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lixenwraith/metronome/constant"
)

var (
	logDir      = constant.LogDir
	logFileName = constant.LogFileName
	maxLogSize  = int64(constant.MaxLogSize)
)

// setupLogging routes slog and the stdlib logger to logs/metronome.log in debug mode
// Without debug all log output is discarded; the returned file is nil
// A log file over maxLogSize is rotated to a timestamped name first
func setupLogging(debug bool) (*slog.Logger, *os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return slog.New(slog.DiscardHandler), nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return slog.New(slog.DiscardHandler), nil, fmt.Errorf("creating log directory: %w", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(logFileName)
		rotated := filepath.Join(logDir, fmt.Sprintf("%s-%s%s",
			strings.TrimSuffix(logFileName, ext), time.Now().Format("20060102-150405"), ext))
		if err := os.Rename(logPath, rotated); err != nil {
			return slog.New(slog.DiscardHandler), nil, fmt.Errorf("rotating log file: %w", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return slog.New(slog.DiscardHandler), nil, fmt.Errorf("opening log file: %w", err)
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, f, nil
}
