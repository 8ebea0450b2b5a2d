package app

import (
	"github.com/dshills/modal/internal/config"
	"github.com/dshills/modal/internal/engine"
	"github.com/dshills/modal/internal/renderer/backend"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	backend   backend.Backend
	watcher   *config.Watcher
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for one run.
func newBootstrapper(app *Application, b backend.Backend) *bootstrapper {
	return &bootstrapper{
		app:       app,
		backend:   b,
		initOrder: make([]string, 0, 3),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	// 1. Backend - terminal ownership and the initial size
	if err := b.initBackend(); err != nil {
		_ = b.cleanup()
		return err
	}

	// 2. Engine - sized from the backend
	b.initEngine()

	// 3. Config watcher (optional)
	b.initWatcher()

	return nil
}

// initBackend takes over the terminal.
func (b *bootstrapper) initBackend() error {
	if err := b.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	b.initOrder = append(b.initOrder, "backend")
	return nil
}

// initEngine creates the editor state from the initial content and the
// probed terminal size.
func (b *bootstrapper) initEngine() {
	cfg := b.app.Config()
	w, h := b.backend.Size()

	eng := engine.New(b.app.opts.Content, w, h,
		engine.WithUnknownKeysDirty(cfg.Editor.UnknownKeysDirty))

	b.app.mu.Lock()
	b.app.engine = eng
	b.app.mu.Unlock()

	b.initOrder = append(b.initOrder, "engine")
	b.app.Logger().Info("editor started: %dx%d, %d rows", w, h, eng.NumRows())
}

// initWatcher starts live reload of the config file. Watch errors are
// non-fatal: the editor runs with the settings it started with.
func (b *bootstrapper) initWatcher() {
	path := b.app.opts.ConfigPath
	if path == "" {
		return
	}

	log := b.app.Logger().WithComponent("config")
	w, err := config.NewWatcher(path, func(cfg *config.Config) {
		if err := b.reapplyOverrides(cfg); err != nil {
			log.Warn("reload of %s ignored: %v", path, err)
			return
		}
		log.Info("reloaded %s", path)
		b.app.ApplyConfig(cfg)
	}, config.WithErrorHandler(func(err error) {
		log.Warn("reload failed: %v", err)
	}))
	if err != nil {
		log.Warn("live reload disabled: %v", err)
		return
	}

	b.watcher = w
	b.initOrder = append(b.initOrder, "watcher")
}

// reapplyOverrides puts the command-line settings back over a config
// that was rebuilt from the file and the environment.
func (b *bootstrapper) reapplyOverrides(cfg *config.Config) error {
	if err := cfg.ApplyOverrides(b.app.opts.Overrides); err != nil {
		return err
	}
	return cfg.Validate()
}

// cleanup releases components in reverse initialization order.
func (b *bootstrapper) cleanup() error {
	errs := NewErrorList()
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		errs.Add(b.cleanupComponent(b.initOrder[i]))
	}
	b.initOrder = b.initOrder[:0]
	return errs.AsError()
}

// cleanupComponent cleans up a single component.
func (b *bootstrapper) cleanupComponent(component string) error {
	switch component {
	case "backend":
		b.backend.Shutdown()
	case "engine":
		b.app.mu.Lock()
		if b.app.engine != nil {
			b.app.engine.Stop()
		}
		b.app.mu.Unlock()
	case "watcher":
		if b.watcher != nil {
			err := b.watcher.Close()
			b.watcher = nil
			if err != nil {
				return NewComponentError("config", "close watcher", err)
			}
		}
	}
	return nil
}
