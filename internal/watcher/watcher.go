// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/platform-engineering-labs/zenith/internal/fragment"
)

const DefaultDebounce = 300 * time.Millisecond

type Config struct {
	Dirs      []string
	Extension string
	Debounce  time.Duration
}

// Watcher reports changes to fragment files in a set of project directories.
// Bursts of events are coalesced into one notification per debounce window.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	cfg       Config
	onChange  chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
}

func New(cfg Config) (*Watcher, error) {
	if cfg.Extension == "" {
		cfg.Extension = fragment.DefaultExtension
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		cfg:       cfg,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start watches every configured directory and returns the notification
// channel.
func (w *Watcher) Start() (<-chan struct{}, error) {
	for _, dir := range w.cfg.Dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
		slog.Debug("Watching project directory", "dir", dir)
	}

	go w.loop()

	return w.onChange, nil
}

// Stop ends the watch. It is safe to call more than once.
func (w *Watcher) Stop(force bool) {
	w.stopOnce.Do(func() {
		close(w.done)
		if err := w.fsWatcher.Close(); err != nil {
			slog.Debug("Closing file watcher", "error", err)
		}
	})
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			slog.Debug("Fragment changed", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				timer.Reset(w.cfg.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.onChange <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	return fragment.IsFragment(filepath.Base(event.Name), w.cfg.Extension)
}
