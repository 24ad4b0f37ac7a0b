package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a config file when it changes on disk. Invalid edits are
// logged and skipped; the last good config stays in effect.
type Watcher struct {
	path     string
	log      *zap.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(*Config)
}

// NewWatcher watches the file's directory, so editors that replace the file
// by rename are still seen.
func NewWatcher(path string, log *zap.Logger, onChange func(*Config)) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
	}
	return &Watcher{
		path:     abs,
		log:      log,
		watcher:  w,
		debounce: DefaultDebounce,
		onChange: onChange,
	}, nil
}

func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Run delivers reloads until ctx is done. onChange runs on Run's goroutine;
// hosts hand the config to their loop with frame.Queue.Post.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.shouldProcessEvent(event) {
				w.log.Debug("Config change detected",
					zap.String("file", event.Name),
					zap.String("op", event.Op.String()))
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("Watcher error", zap.Error(err))

		case <-timer.C:
			w.reload()

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	return err == nil && name == w.path
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.log.Warn("Ignoring config change", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("Config reloaded", zap.String("path", w.path))
	w.onChange(cfg)
}
