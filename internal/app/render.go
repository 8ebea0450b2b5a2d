package app

import (
	"runtime/debug"

	"github.com/dshills/modal/internal/engine"
	"github.com/dshills/modal/internal/renderer"
	"github.com/dshills/modal/internal/renderer/backend"
)

// renderTask tracks the render goroutine. err is written before done is
// closed and read only after.
type renderTask struct {
	done chan struct{}
	err  error
}

// renderLoop draws one frame per signal until signals is closed or the
// sink fails.
func (app *Application) renderLoop(sink backend.Sink, signals <-chan struct{}, rt *renderTask) {
	defer close(rt.done)
	defer func() {
		if r := recover(); r != nil {
			rt.err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()

	for range signals {
		if err := app.renderFrame(sink); err != nil {
			rt.err = NewComponentError("renderer", "write frame", err)
			return
		}
	}
}

// renderFrame snapshots the engine under the read lock, then builds and
// writes the frame with no lock held.
func (app *Application) renderFrame(sink backend.Sink) error {
	timer := StartTimer()

	snap, dirty := app.takeSnapshot()

	if !dirty {
		app.metrics.RecordSkippedRender()
		return nil
	}

	frame := renderer.Render(snap)
	if err := sink.WriteFrame(frame); err != nil {
		return err
	}

	app.metrics.RecordFrame(timer.Elapsed())
	return nil
}

func (app *Application) takeSnapshot() (engine.Snapshot, bool) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.engine.TakeSnapshot()
}
