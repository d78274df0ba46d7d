// Package watch rebuilds the site whenever the content directory changes.
package watch

import (
	"context"
	"github.com/fsnotify/fsnotify"
	"log/slog"
	"time"
)

const DefaultDebounce = 200 * time.Millisecond

// RebuildFunc regenerates the site from scratch.
type RebuildFunc func(ctx context.Context) error

type Watcher struct {
	Dirs     []string
	Rebuild  RebuildFunc
	Debounce time.Duration
	Logger   *slog.Logger
}

func New(dirs []string, rebuild RebuildFunc, logger *slog.Logger) *Watcher {
	return &Watcher{
		Dirs:     dirs,
		Rebuild:  rebuild,
		Debounce: DefaultDebounce,
		Logger:   logger,
	}
}

// Run blocks until ctx is cancelled. Bursts of write, create, remove and
// rename events collapse into one rebuild; rebuild errors are logged and the
// watch carries on.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, dir := range w.Dirs {
		if err := fw.Add(dir); err != nil {
			return err
		}
	}
	return w.loop(ctx, fw.Events, fw.Errors)
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	log := w.logger()
	log.Info("watching for file changes", "dirs", w.Dirs)

	delay := w.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				log.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
				debounce.Reset(delay)
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		case <-debounce.C:
			if err := w.Rebuild(ctx); err != nil {
				log.Error("rebuild failed", "error", err)
				continue
			}
			log.Info("rebuild complete")
		}
	}
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}
