// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging_DirectSlogInfo(t *testing.T) {
	capture := NewTestLogCaptureQuiet()
	slog.SetDefault(slog.New(slog.NewTextHandler(capture, &slog.HandlerOptions{Level: slog.LevelInfo})))

	slog.Info("test info")

	assert.True(t, capture.ContainsAll("test info"))
}

func TestLogging_LogProxyInfo(t *testing.T) {
	capture := NewTestLogCaptureQuiet()
	slog.SetDefault(slog.New(slog.NewTextHandler(capture, &slog.HandlerOptions{Level: slog.LevelInfo})))
	lw := &slogWriter{}
	log.SetOutput(lw)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	}()

	log.Print("ERROR: test info")

	assert.True(t, capture.ContainsAll("test info", "level=ERROR"))
}

func TestClientHandler_ConsoleAndFile(t *testing.T) {
	console := NewTestLogCaptureQuiet()
	path := filepath.Join(t.TempDir(), "log", "zenith.log")

	logger := slog.New(NewClientHandler(Config{
		FilePath:     path,
		FileLevel:    slog.LevelDebug,
		ConsoleLevel: slog.LevelWarn,
		Console:      console,
	}))

	logger.Debug("debug only in file")
	logger.With("build", "abc").Warn("warned everywhere")

	assert.True(t, console.ContainsAll("warned everywhere", "abc"))
	assert.False(t, console.ContainsAll("debug only in file"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug only in file")
	assert.Contains(t, string(data), "warned everywhere")
}

func TestClientHandler_ConsoleOff(t *testing.T) {
	handler := NewClientHandler(Config{ConsoleLevel: NoLoggingLevel})

	assert.False(t, handler.Enabled(t.Context(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = ParseLevel("off")
	require.NoError(t, err)
	assert.Equal(t, NoLoggingLevel, level)

	_, err = ParseLevel("loud")
	assert.EqualError(t, err, `invalid log level "loud": must be one of debug, info, warn, error, off`)
}
