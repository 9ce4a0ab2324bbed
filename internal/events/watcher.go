package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tartampluch/go-celebrants/internal/config"
)

// FileWatcher emits DataChanged when one of the watched files is written,
// created, renamed or removed. Bursts of events (editors saving through a
// temp file) collapse into one event after the debounce delay.
type FileWatcher struct {
	dir      string
	files    map[string]bool
	debounce time.Duration
}

// NewFileWatcher watches the given files. They must share one directory,
// which is what gets watched so atomic saves are seen.
func NewFileWatcher(debounce time.Duration, files ...string) *FileWatcher {
	w := &FileWatcher{
		files:    make(map[string]bool, len(files)),
		debounce: debounce,
	}
	for _, f := range files {
		f = filepath.Clean(f)
		w.dir = filepath.Dir(f)
		w.files[f] = true
	}
	return w
}

func (*FileWatcher) Name() string { return "fsnotify" }

// Watch blocks until ctx ends or the watcher fails.
func (w *FileWatcher) Watch(ctx context.Context, out chan<- Event) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrWatcherCreate, err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWatcherAdd, err)
	}

	log := slog.With(config.LogKeyComponent, config.CompEvents, config.LogKeyPath, w.dir)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return errors.New(config.ErrSourceStopped)
			}
			if !w.relevant(ev) {
				continue
			}
			log.Debug(config.MsgDataChanged, config.LogKeyFile, filepath.Base(ev.Name), config.LogKeyKind, ev.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New(config.ErrSourceStopped)
			}
			log.Warn(config.ErrWatcherAdd, config.LogKeyError, err)

		case <-timer.C:
			if !send(ctx, out, DataChanged) {
				return nil
			}
		}
	}
}

func (w *FileWatcher) relevant(ev fsnotify.Event) bool {
	if !w.files[filepath.Clean(ev.Name)] {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}
