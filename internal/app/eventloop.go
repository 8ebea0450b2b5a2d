package app

import (
	"time"

	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/renderer/backend"
)

// inputBuffer is the capacity of the channel between the input task and
// the main loop.
const inputBuffer = 64

// mainLoop runs batching windows until the editor stops. Each window
// lasts RenderDelay; every event that arrives inside it is applied at
// once under the write lock. At the end of the window one render signal
// is sent if anything changed, however many events were applied.
func (app *Application) mainLoop(events <-chan backend.Event, signals chan<- struct{}, rt *renderTask) error {
	log := app.Logger().WithComponent("pipeline")

	// The engine starts dirty; paint the first frame right away.
	app.signalIfDirty(signals)

	for {
		app.metrics.RecordWindow()
		deadline := time.NewTimer(app.RenderDelay())

	window:
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					log.Warn("%v, stopping editor", ErrInputClosed)
					app.stopEngine()
					break window
				}
				app.applyEvent(ev)

			case <-deadline.C:
				break window

			case <-app.done:
				app.stopEngine()
				break window

			case <-rt.done:
				deadline.Stop()
				return rt.err
			}
		}
		deadline.Stop()

		if !app.engineRunning() {
			return nil
		}
		app.signalIfDirty(signals)
	}
}

// applyEvent applies one backend event to the engine under the write lock.
func (app *Application) applyEvent(ev backend.Event) {
	app.mu.Lock()
	defer app.mu.Unlock()

	switch ev.Type {
	case backend.EventKey:
		app.engine.HandleKey(convertToKeyEvent(ev))
	case backend.EventResize:
		app.engine.HandleResize(ev.Width, ev.Height)
	default:
		return
	}
	app.metrics.RecordEvent()
}

// signalIfDirty sends a render signal without blocking. A signal already
// pending covers this one.
func (app *Application) signalIfDirty(signals chan<- struct{}) {
	app.mu.RLock()
	dirty := app.engine.Dirty()
	app.mu.RUnlock()

	if !dirty {
		return
	}
	select {
	case signals <- struct{}{}:
		app.metrics.RecordSignal()
	default:
		app.metrics.RecordCoalesced()
	}
}

func (app *Application) engineRunning() bool {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.engine.Running()
}

func (app *Application) stopEngine() {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.engine.Stop()
}

// convertToKeyEvent converts a backend.Event to a key.Event.
// Runes typed with Ctrl, Alt or Meta have no binding and become KeyNone.
func convertToKeyEvent(ev backend.Event) key.Event {
	if ev.Key == key.KeyRune {
		if ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt) || ev.Mod.Has(backend.ModMeta) {
			return key.NewSpecialEvent(key.KeyNone)
		}
		return key.NewRuneEvent(ev.Rune)
	}
	return key.NewSpecialEvent(ev.Key)
}

// startInputPolling starts the input task: a goroutine that polls the
// backend and forwards events in arrival order. The returned channel is
// closed when the backend reports EventClosed.
//
// PollEvent is blocking. Shutting down the backend unblocks it; stop
// releases a send that nobody will receive.
func (app *Application) startInputPolling(b backend.Backend, stop <-chan struct{}) <-chan backend.Event {
	events := make(chan backend.Event, inputBuffer)

	go func() {
		defer close(events)

		for {
			ev := b.PollEvent()
			switch ev.Type {
			case backend.EventClosed:
				return
			case backend.EventNone:
				continue
			}

			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	return events
}
