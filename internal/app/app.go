// Package app runs the modal editor. It wires the engine to a terminal
// backend and a frame sink and drives three goroutines: the input task
// that polls the backend, the main loop that applies events in batching
// windows, and the render task that turns snapshots into frames.
package app

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/modal/internal/config"
	"github.com/dshills/modal/internal/engine"
	"github.com/dshills/modal/internal/renderer/backend"
)

// Application is the central coordinator for the editor.
// It owns the engine and manages the pipeline lifecycle.
type Application struct {
	// mu guards engine, backend and sink. Events are applied under the
	// write lock; snapshots are taken under the read lock.
	mu      sync.RWMutex
	engine  *engine.Engine
	backend backend.Backend
	sink    backend.Sink

	config      atomic.Pointer[config.Config]
	renderDelay atomic.Int64

	logger  *Logger
	metrics *Metrics
	session string

	// State
	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// Content is the initial buffer text.
	Content string

	// Config holds the settings. Nil means config.Default().
	Config *config.Config

	// ConfigPath, when set, is watched and reloaded while running.
	ConfigPath string

	// Overrides are settings from the command line, keyed by config
	// path. They are applied over every reloaded config file.
	Overrides map[string]string

	// Logger receives application logs. Nil means GetLogger().
	Logger *Logger

	// Metrics collects pipeline counters. Nil creates a fresh instance.
	Metrics *Metrics
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		session: uuid.NewString(),
		metrics: opts.Metrics,
	}
	if app.metrics == nil {
		app.metrics = NewMetrics()
	}

	base := opts.Logger
	if base == nil {
		base = GetLogger()
	}
	app.logger = base.WithField("session", app.session)

	app.ApplyConfig(cfg)
	return app, nil
}

// SetBackend sets the input backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// SetSink sets the frame sink.
// Must be called before Run().
func (app *Application) SetSink(s backend.Sink) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.sink = s
	return nil
}

// Run initializes the backend, starts the input and render tasks and
// runs the batching loop. It blocks until the editor stops, Shutdown is
// called or a component fails. A normal exit returns nil.
//
// A panic while applying events is returned as a *RecoveredPanicError
// after the backend has been shut down.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	b, sink := app.backend, app.sink
	app.mu.RUnlock()

	if b == nil {
		return ErrNoBackend
	}
	if sink == nil {
		return ErrNoSink
	}

	boot := newBootstrapper(app, b)
	if err := boot.bootstrap(); err != nil {
		return err
	}
	defer func() {
		if cerr := boot.cleanup(); cerr != nil {
			app.logComponentError("shutdown", cerr)
		}
	}()

	stop := make(chan struct{})
	defer close(stop)

	events := app.startInputPolling(b, stop)

	signals := make(chan struct{}, 1)
	rt := &renderTask{done: make(chan struct{})}
	go app.renderLoop(sink, signals, rt)

	loopErr := app.runMainLoop(events, signals, rt)

	close(signals)
	<-rt.done

	err := loopErr
	if err == nil {
		err = rt.err
	}
	if err != nil {
		app.logComponentError("pipeline", err)
	}

	app.Logger().Info("stopped after %v", app.metrics.Snapshot())
	return err
}

// runMainLoop runs mainLoop, turning a panic into an error so that the
// render task and the backend are still shut down in order.
func (app *Application) runMainLoop(events <-chan backend.Event, signals chan<- struct{}, rt *renderTask) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()
	return app.mainLoop(events, signals, rt)
}

// Shutdown asks a running application to stop. The main loop notices at
// once, stops the editor and returns from Run. Safe to call from any
// goroutine and more than once.
func (app *Application) Shutdown() {
	if !app.running.Load() {
		return
	}
	app.doneOnce.Do(func() {
		close(app.done)
	})
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Session returns the identifier attached to every log line of this run.
func (app *Application) Session() string {
	return app.session
}

// Config returns the settings currently in effect.
func (app *Application) Config() *config.Config {
	return app.config.Load()
}

// ApplyConfig updates the settings that can change at runtime: the log
// level, the batching window and the unknown-key repaint policy. The
// terminal backend and log file are fixed for the life of the process.
func (app *Application) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	app.renderDelay.Store(int64(cfg.Editor.RenderDelay.Std()))

	app.mu.Lock()
	if app.engine != nil {
		app.engine.SetUnknownKeysDirty(cfg.Editor.UnknownKeysDirty)
	}
	app.mu.Unlock()

	// Stored last: once Config reports cfg, every setting is in effect.
	app.config.Store(cfg.Clone())

	app.logger.Debug("config applied: render_delay=%v unknown_keys_dirty=%v",
		cfg.Editor.RenderDelay.Std(), cfg.Editor.UnknownKeysDirty)
}

// RenderDelay returns the length of one batching window.
func (app *Application) RenderDelay() time.Duration {
	return time.Duration(app.renderDelay.Load())
}

// Snapshot returns a copy of the editor state. ok is false before Run
// has created the engine.
func (app *Application) Snapshot() (snap engine.Snapshot, ok bool) {
	app.mu.RLock()
	defer app.mu.RUnlock()

	if app.engine == nil {
		return engine.Snapshot{}, false
	}
	return app.engine.Snapshot(), true
}
