// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch triggers rebuilds when manuscript files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last file event before
// the callback fires. Editors tend to produce bursts of writes.
const DefaultDebounce = 500 * time.Millisecond

// Config describes what to watch and what to do on a change.
type Config struct {
	// Paths are the files to watch.
	Paths []string

	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration

	// OnChange runs after the debounce window closes, with the path of
	// the last changed file.
	OnChange func(path string)
}

// Watch blocks, invoking cfg.OnChange whenever a watched file is
// written or replaced, until ctx is cancelled. Watching the containing
// directories rather than the files themselves keeps events flowing
// across the delete-and-rename save strategy many editors use.
func Watch(ctx context.Context, cfg Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(cfg.Paths))
	dirs := make(map[string]bool)
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var timer *time.Timer
	var pending string
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = abs
			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounce)
			}
		case <-fire:
			timer = nil
			if cfg.OnChange != nil {
				cfg.OnChange(pending)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
