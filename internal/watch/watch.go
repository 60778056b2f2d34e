// Package watch re-runs a callback whenever a directory tree or a set of
// extra files changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/simonhull/firebird-suite/nest/internal/logger"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero
const DefaultDebounce = 200 * time.Millisecond

// Config describes what to watch
type Config struct {
	// Root is the directory watched recursively
	Root string

	// Files are extra files to watch (e.g. the schema), matched by name
	// inside their parent directory
	Files []string

	// Debounce is the quiet period before onChange runs
	Debounce time.Duration
}

// Watcher watches a tree for changes
type Watcher struct {
	cfg     Config
	log     logger.Logger
	watcher *fsnotify.Watcher
	files   map[string]bool
}

// New creates a watcher. Call Watch to start it.
func New(cfg Config, log logger.Logger) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		cfg:     cfg,
		log:     log,
		watcher: fw,
		files:   make(map[string]bool, len(cfg.Files)),
	}
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		w.files[abs] = true
	}

	return w, nil
}

// Watch blocks until ctx is cancelled, calling onChange after each burst of
// changes. Calls never overlap; changes during a call schedule one more call.
func (w *Watcher) Watch(ctx context.Context, onChange func(context.Context)) error {
	defer w.watcher.Close()

	if err := w.addTree(w.cfg.Root); err != nil {
		return err
	}
	for f := range w.files {
		if err := w.watcher.Add(filepath.Dir(f)); err != nil {
			return fmt.Errorf("watching %s: %w", f, err)
		}
	}

	w.log.Info("Watching for changes",
		logger.F("root", w.cfg.Root),
		logger.F("debounce", w.cfg.Debounce.String()),
	)

	pending := make(chan struct{}, 1)
	debounce := NewDebouncer(w.cfg.Debounce)
	defer debounce.Stop()

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-pending:
				onChange(ctx)
			}
		}
	}()
	defer func() {
		close(stop)
		<-done
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}

			w.log.Debug("Change detected",
				logger.F("path", event.Name),
				logger.F("op", event.Op.String()),
			)

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && w.inTree(event.Name) {
					if err := w.addTree(event.Name); err != nil {
						w.log.Warn("Could not watch new directory", logger.F("path", event.Name), logger.F("error", err.Error()))
					}
				}
			}

			debounce.Trigger(func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.log.Error("File watcher error", logger.F("error", err.Error()))
		}
	}
}

// addTree watches dir and every directory below it
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watching directory %s: %w", path, err)
		}
		w.log.Debug("Watching directory", logger.F("path", path))
		return nil
	})
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.inTree(event.Name) {
		return true
	}
	abs, err := filepath.Abs(event.Name)
	return err == nil && w.files[abs]
}

func (w *Watcher) inTree(path string) bool {
	rel, err := filepath.Rel(w.cfg.Root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !startsWithParent(rel))
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
