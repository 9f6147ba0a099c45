package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Editors often save in several steps; changes closer together than this
// are reported once.
const watchDebounce = 100 * time.Millisecond

// WatchBindings calls onChange with the re-read bindings every time the
// shortcuts file at path is written or replaced, until ctx is cancelled.
// onChange runs on the watcher goroutine.
func WatchBindings(ctx context.Context, path string, onChange func([]Binding, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory so atomic replace-by-rename is seen.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	log.Printf("Watching shortcuts file %s", abs)

	go func() {
		defer w.Close()

		timer := time.NewTimer(watchDebounce)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				timer.Reset(watchDebounce)
			case <-timer.C:
				bindings, err := LoadBindings(abs)
				if err != nil {
					log.Printf("Shortcuts reload failed: %v", err)
				}
				onChange(bindings, err)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("Shortcuts watcher error: %v", err)
			}
		}
	}()

	return nil
}
