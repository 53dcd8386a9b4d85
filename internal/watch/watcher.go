// Package watch follows the directory being viewed and reports when its set
// of image files changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"ascentviewer/internal/scan"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce collapses bursts of events, such as a file copy, into one
// notification.
const DefaultDebounce = 300 * time.Millisecond

// DirWatcher watches a single directory at a time using fsnotify.
type DirWatcher struct {
	fsWatcher *fsnotify.Watcher
	logger    logrus.FieldLogger
	debounce  time.Duration
	onChange  func(dir string)

	mutex   sync.Mutex
	dir     string
	timer   *time.Timer
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New creates a watcher calling onChange, from its own goroutine, once the
// image files of the watched directory stop changing for debounce.
func New(logger logrus.FieldLogger, debounce time.Duration, onChange func(dir string)) (*DirWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &DirWatcher{
		fsWatcher: fsWatcher,
		logger:    logger,
		debounce:  debounce,
		onChange:  onChange,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Watch switches the watcher to dir. Watching the current directory again is
// a no-op.
func (w *DirWatcher) Watch(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			w.logger.WithError(err).WithField("directory", w.dir).Warn("Failed to stop watching directory")
		}
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		w.dir = ""
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.dir = dir
	w.logger.WithField("directory", dir).Debug("Watching directory")
	return nil
}

// Directory returns the watched directory.
func (w *DirWatcher) Directory() string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.dir
}

// Start runs the event loop until ctx is cancelled or Close is called.
func (w *DirWatcher) Start(ctx context.Context) error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	go func() {
		defer close(w.done)
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if relevant(event) {
					w.schedule()
				}
			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				w.logger.WithError(err).Error("Directory watcher error")
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			}
		}
	}()
	return nil
}

// Close stops the event loop and releases the fsnotify watcher.
func (w *DirWatcher) Close() error {
	w.mutex.Lock()
	running := w.running
	w.running = false
	if w.timer != nil {
		w.timer.Stop()
	}
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	w.mutex.Unlock()

	err := w.fsWatcher.Close()
	if running {
		<-w.done
	}
	return err
}

func (w *DirWatcher) schedule() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	dir := w.dir
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.stop:
			return
		default:
		}
		w.logger.WithField("directory", dir).Debug("Directory contents changed")
		w.onChange(dir)
	})
}

// relevant reports whether event may change a directory's image list.
func relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	return scan.IsImage(event.Name)
}
