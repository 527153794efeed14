// Package watcher reports, debounced, when the snapshot database on disk is
// rewritten by another process so the replica can be reloaded.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/plenum/internal/log"
)

// Change is one debounced notification. Files lists the base names touched
// since the previous notification, sorted.
type Change struct {
	Files []string
	At    time.Time
}

// Config holds watcher configuration options.
type Config struct {
	// Path is the snapshot database. Its -wal and -journal siblings are
	// watched too.
	Path     string
	Debounce time.Duration
}

// DefaultConfig returns the defaults for watching path.
func DefaultConfig(path string) Config {
	return Config{
		Path:     path,
		Debounce: 500 * time.Millisecond,
	}
}

// Watcher monitors the snapshot files for changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	names     []string
	debounce  time.Duration
	changes   chan Change
	done      chan struct{}
	stopOnce  sync.Once
}

// New creates a watcher. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	base := filepath.Base(cfg.Path)
	return &Watcher{
		fsWatcher: fsw,
		dir:       filepath.Dir(cfg.Path),
		names:     []string{base, base + "-wal", base + "-journal"},
		debounce:  cfg.Debounce,
		changes:   make(chan Change, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start watches the snapshot directory until ctx is cancelled or Stop is
// called. Notifications are dropped, not queued, while the previous one is
// still unread.
func (w *Watcher) Start(ctx context.Context) (<-chan Change, error) {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", w.dir, err)
	}
	go w.loop(ctx)
	log.Debug(log.CatWatcher, "watching", "dir", w.dir, "files", fmt.Sprint(w.names))
	return w.changes, nil
}

// Stop terminates the watcher and releases resources. Safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		touched = map[string]struct{}{}
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			touched[filepath.Base(event.Name)] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case at := <-fire:
			fire = nil
			files := make([]string, 0, len(touched))
			for name := range touched {
				files = append(files, name)
			}
			slices.Sort(files)
			clear(touched)

			select {
			case w.changes <- Change{Files: files, At: at}:
			default:
				log.Debug(log.CatWatcher, "change dropped, previous unread", "files", fmt.Sprint(files))
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "fsnotify error", err)

		case <-ctx.Done():
			_ = w.Stop()
			return

		case <-w.done:
			return
		}
	}
}

// isRelevantEvent reports whether event touches one of the snapshot files.
// Renames count because tools replace the snapshot atomically.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	return slices.Contains(w.names, filepath.Base(event.Name))
}
