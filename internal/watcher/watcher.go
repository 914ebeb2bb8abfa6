// Package watcher re-runs a callback when local input files change. It is
// what drives `respdiff compare --watch`.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/aleister1102/respdiff/internal/common"
)

// DefaultDebounce is how long the watcher waits after the last change event
// before invoking the callback.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc is invoked once per burst of changes.
type ChangeFunc func(ctx context.Context, changed []string) error

// Options holds options for creating a Watcher
type Options struct {
	Logger   zerolog.Logger
	Debounce time.Duration
}

// DefaultOptions returns default options for Watcher
func DefaultOptions() Options {
	return Options{
		Logger:   zerolog.Nop(),
		Debounce: DefaultDebounce,
	}
}

// Watcher watches a fixed set of files through their parent directories, so
// editors that save by replacing the file are still noticed.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    mapset.Set[string]
	onChange ChangeFunc
	debounce time.Duration
	logger   zerolog.Logger

	stopChan  chan struct{}
	closeOnce sync.Once
}

// New starts watching paths. Watching is active when New returns, but the
// callback only runs while Run is executing.
func New(paths []string, onChange ChangeFunc, opts Options) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, common.NewValidationError("paths", paths, "at least one file is required")
	}
	if onChange == nil {
		return nil, common.NewValidationError("onChange", nil, "callback is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	files := mapset.NewThreadUnsafeSet[string]()
	dirs := mapset.NewThreadUnsafeSet[string]()
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path '%s': %w", p, err)
		}
		files.Add(abs)
		dirs.Add(filepath.Dir(abs))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    files,
		onChange: onChange,
		debounce: opts.Debounce,
		logger:   opts.Logger.With().Str("component", "Watcher").Logger(),
		stopChan: make(chan struct{}),
	}

	for dir := range dirs.Iter() {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch directory '%s': %w", dir, err)
		}
		w.logger.Debug().Str("directory", dir).Msg("Watching directory")
	}

	return w, nil
}

// Files returns the absolute paths being watched.
func (w *Watcher) Files() []string {
	return w.files.ToSlice()
}

// Run dispatches change events until ctx is done or Close is called.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	timer.Stop()
	defer timer.Stop()

	pending := mapset.NewThreadUnsafeSet[string]()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Msg("Watch loop stopped due to context cancellation")
			return nil

		case <-w.stopChan:
			w.logger.Debug().Msg("Watch loop stopped")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Input file change detected")
			pending.Add(filepath.Clean(event.Name))
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("File watcher error")

		case <-timer.C:
			changed := pending.ToSlice()
			pending.Clear()
			if err := w.onChange(ctx, changed); err != nil {
				w.logger.Error().Err(err).Strs("files", changed).Msg("Change handler failed")
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.files.Contains(filepath.Clean(event.Name)) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Close stops Run and releases the underlying watcher. It is safe to call
// more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopChan)
		err = w.fsw.Close()
	})
	return err
}
