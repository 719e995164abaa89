package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-prepares and re-activates a snapshot whenever the
// configuration file changes. A failed re-preparation keeps the previous
// snapshot active: a half-resolved configuration must never replace a good
// one.
type Watcher struct {
	path    string
	prepare func(ctx context.Context) (*Snapshot, error)
	logger  *slog.Logger
	fs      *fsnotify.Watcher
}

// NewWatcher watches the directory containing path, since most editors and
// config management tools replace files rather than write them in place.
func NewWatcher(path string, prepare func(ctx context.Context) (*Snapshot, error), logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{path: abs, prepare: prepare, logger: logger, fs: fs}, nil
}

// Run blocks until ctx is done, re-activating a fresh snapshot on each
// write or create of the watched file.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			snap, err := w.prepare(ctx)
			if err != nil {
				w.logger.Error("config reload failed; keeping previous snapshot", "error", err)
				continue
			}
			Activate(snap)
			w.logger.Info("config reloaded", "snapshot_id", snap.ID)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}
