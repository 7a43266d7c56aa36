// Package watch reports changed files under a directory tree, coalescing
// bursts of filesystem events into debounced batches.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatchLimit indicates the OS refused to add more watches.
var ErrWatchLimit = errors.New("file watch limit reached")

// DefaultDebounce is the quiet period before a batch is delivered.
const DefaultDebounce = 200 * time.Millisecond

// Handler receives the sorted, de-duplicated paths changed during a batch.
type Handler func(ctx context.Context, paths []string)

// Watcher watches a directory tree. New directories are watched as they
// appear. Create with New, run with Run, and release with Close.
type Watcher struct {
	root     string
	debounce time.Duration
	filter   func(path string) bool
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a batch is delivered.
// Negative values are treated as zero.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = max(d, 0)
	}
}

// WithFilter restricts reported files to those for which keep returns true.
func WithFilter(keep func(path string) bool) Option {
	return func(w *Watcher) {
		w.filter = keep
	}
}

// WithLogger sets the logger for watch events.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Watcher over root and every directory below it.
// Hidden directories (".git", ".cache") are skipped.
func New(root string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		debounce: DefaultDebounce,
		filter:   func(string) bool { return true },
		logger:   slog.New(slog.DiscardHandler),
		fsw:      fsw,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops watching and releases OS resources.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run delivers batches of changed files to handle until ctx is done or the
// watcher is closed. Only Create and Write events count as changes. Run
// returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.record(ev, pending) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("watch events dropped", "root", w.root, "error", err)
				continue
			}
			return fmt.Errorf("watching %s: %w", w.root, err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)

			w.logger.Debug("watch batch", "files", len(paths))
			handle(ctx, paths)
		}
	}
}

// record adds a changed file to pending and reports whether it did.
// Newly created directories are watched, and files already inside them
// are recorded, since they may have been written before the watch began.
func (w *Watcher) record(ev fsnotify.Event, pending map[string]struct{}) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}

	if ev.Has(fsnotify.Create) && isDir(ev.Name) {
		added := false
		err := w.walkTree(ev.Name, func(path string) {
			if w.filter(path) {
				pending[path] = struct{}{}
				added = true
			}
		})
		if err != nil {
			w.logger.Warn("cannot watch new directory", "path", ev.Name, "error", err)
		}
		return added
	}

	if !w.filter(ev.Name) {
		return false
	}
	pending[ev.Name] = struct{}{}
	return true
}

// addTree watches dir and its non-hidden subdirectories.
func (w *Watcher) addTree(dir string) error {
	return w.walkTree(dir, nil)
}

// walkTree watches dir and its non-hidden subdirectories, calling file,
// when non-nil, for every regular file found.
func (w *Watcher) walkTree(dir string, file func(path string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if file != nil && d.Type().IsRegular() {
				file(path)
			}
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			if errors.Is(err, syscall.ENOSPC) {
				return fmt.Errorf("%w: %s", ErrWatchLimit, path)
			}
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
