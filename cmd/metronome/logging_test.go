package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempLogDir points logging at a per-test directory
func useTempLogDir(t *testing.T) string {
	t.Helper()
	prev := logDir
	logDir = filepath.Join(t.TempDir(), "logs")
	t.Cleanup(func() {
		logDir = prev
		log.SetOutput(os.Stderr)
	})
	return logDir
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	useTempLogDir(t)

	logger, f, err := setupLogging(false)
	require.NoError(t, err)
	assert.Nil(t, f)
	assert.NotNil(t, logger)
	assert.Equal(t, io.Discard, log.Writer())

	_, err = os.Stat(logDir)
	assert.True(t, os.IsNotExist(err), "no log directory without debug")
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	dir := useTempLogDir(t)

	logger, f, err := setupLogging(true)
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.Close()

	logger.Info("test message", "component", "test")
	log.Println("stdlib message")

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "test message")
	assert.Contains(t, string(data), "component=test")
	assert.Contains(t, string(data), "stdlib message")

	assert.NotEqual(t, os.Stdout, log.Writer())
	assert.NotEqual(t, os.Stderr, log.Writer())
}

func TestSetupLogging_Rotation(t *testing.T) {
	dir := useTempLogDir(t)
	prevMax := maxLogSize
	maxLogSize = 1024
	t.Cleanup(func() { maxLogSize = prevMax })

	require.NoError(t, os.MkdirAll(dir, 0755))
	logPath := filepath.Join(dir, logFileName)
	require.NoError(t, os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644))

	_, f, err := setupLogging(true)
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	assert.True(t, rotated, "expected a timestamped rotated log")

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), maxLogSize)
}
