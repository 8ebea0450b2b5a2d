package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the default quiet period before a reload.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a configuration file when it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temp file over the original are seen.
type Watcher struct {
	path     string
	onChange func(*Config)
	onError  func(error)
	debounce time.Duration

	watcher  *fsnotify.Watcher
	closeCh  chan struct{}
	closedWg sync.WaitGroup
	once     sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period between the last change and the
// reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets a callback for reload and watch errors.
// Without one, errors are dropped and the previous configuration stays
// in effect.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// NewWatcher starts watching path. onChange receives each successfully
// loaded configuration.
func NewWatcher(path string, onChange func(*Config), opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     filepath.Clean(abs),
		onChange: onChange,
		debounce: DefaultDebounce,
		watcher:  fw,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.closedWg.Wait()
	})
	return err
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	w.safeCallHandler(cfg)
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// safeCallHandler keeps a panicking callback from killing the watch loop.
func (w *Watcher) safeCallHandler(cfg *Config) {
	defer func() {
		if r := recover(); r != nil {
			w.reportError(fmt.Errorf("config change handler panicked: %v", r))
		}
	}()
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
