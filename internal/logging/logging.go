// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/platform-engineering-labs/zenith/internal/util"
)

const NoLoggingLevel = slog.Level(100) // A level higher than any standard level to disable logging

// Config selects where client logs go. Stdout carries built templates, so
// console logs are written to stderr unless Console says otherwise.
type Config struct {
	FilePath     string
	FileLevel    slog.Level
	ConsoleLevel slog.Level
	Console      io.Writer
}

func SetupInitialLogging() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelWarn,
			TimeFormat: time.RFC3339,
		}),
	))

	redirectStandardLog()
}

func SetupClientLogging(cfg Config) {
	slog.SetDefault(slog.New(NewClientHandler(cfg)))

	redirectStandardLog()
}

// NewClientHandler builds the file and console handlers described by cfg.
// The file handler is skipped when no path is set or its folder cannot be
// created.
func NewClientHandler(cfg Config) *MultiLevelHandler {
	handler := &MultiLevelHandler{}

	if cfg.FilePath != "" {
		if err := util.EnsureFileFolderHierarchy(cfg.FilePath); err != nil {
			slog.Error("Failed to create log folder hierarchy", "error", err)
		} else {
			lumber := &lumberjack.Logger{
				Filename: cfg.FilePath,
				Compress: true,
			}
			handler.fileHandler = tint.NewHandler(lumber, &tint.Options{
				Level:      cfg.FileLevel,
				TimeFormat: time.RFC3339,
				NoColor:    true,
			})
		}
	}

	if cfg.ConsoleLevel != NoLoggingLevel {
		console := cfg.Console
		if console == nil {
			console = os.Stderr
		}
		handler.consoleHandler = tint.NewHandler(console, &tint.Options{
			Level:      cfg.ConsoleLevel,
			TimeFormat: time.Kitchen,
		})
	}

	return handler
}

// ParseLevel accepts debug, info, warn, error and off.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return NoLoggingLevel, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error, off", s)
	}

	return level, nil
}

func redirectStandardLog() {
	//overwrite standard log so it's always redirected to slog, in case some deep dep is using it
	lw := &slogWriter{}
	log.Default().SetOutput(lw)
	log.SetOutput(lw)
	log.SetFlags(0)
}

type MultiLevelHandler struct {
	fileHandler    slog.Handler
	consoleHandler slog.Handler
}

func (h *MultiLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.fileHandler != nil && h.fileHandler.Enabled(ctx, level) {
		return true
	}
	if h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, level) {
		return true
	}
	return false
}

func (h *MultiLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.fileHandler != nil && h.fileHandler.Enabled(ctx, r.Level) {
		if err := h.fileHandler.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}

	if h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, r.Level) {
		if err := h.consoleHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	return nil
}

func (h *MultiLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := &MultiLevelHandler{}

	if h.fileHandler != nil {
		newHandler.fileHandler = h.fileHandler.WithAttrs(attrs)
	}

	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithAttrs(attrs)
	}

	return newHandler
}

func (h *MultiLevelHandler) WithGroup(name string) slog.Handler {
	newHandler := &MultiLevelHandler{}

	if h.fileHandler != nil {
		newHandler.fileHandler = h.fileHandler.WithGroup(name)
	}

	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithGroup(name)
	}

	return newHandler
}
