package stream

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"filespool/internal/logging"
)

// Watcher is a Notifier backed by filesystem change notifications on the
// spool directory. Bursts of events are coalesced: a signal is posted only
// after the directory has been quiet for the debounce window, bounding how
// stale a Pending answer can be.
type Watcher struct {
	fsw    *fsnotify.Watcher
	sig    chan struct{}
	logger *slog.Logger
}

// NewWatcher watches dir for changes. A non-positive debounce defaults to
// 100ms. The logger may be nil.
func NewWatcher(dir string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch spool directory: %w", err)
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	w := &Watcher{
		fsw:    fsw,
		sig:    make(chan struct{}, 1),
		logger: logging.NewComponentLogger(logger, "spool-watcher"),
	}
	go w.run(debounce)
	return w, nil
}

func (w *Watcher) run(debounce time.Duration) {
	defer close(w.sig)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	dirty := false
	for {
		select {
		case _, ok := <-w.fsw.Events:
			if !ok {
				if dirty {
					w.post()
				}
				return
			}
			if !dirty {
				dirty = true
				timer.Reset(debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("spool watch error", logging.Error(err))
		case <-timer.C:
			if dirty {
				dirty = false
				w.post()
			}
		}
	}
}

func (w *Watcher) post() {
	select {
	case w.sig <- struct{}{}:
	default:
		// A signal is already pending; coalesce.
	}
}

// Pending implements Notifier.
func (w *Watcher) Pending() (bool, bool) {
	select {
	case _, ok := <-w.sig:
		return ok, ok
	default:
		return false, true
	}
}

// Close stops watching. The stream observes End on its next poll once any
// already-signaled changes have been drained.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
