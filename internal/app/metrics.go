package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics tracks pipeline counters and frame timing.
type Metrics struct {
	// Batching
	windowCount    atomic.Uint64
	eventCount     atomic.Uint64
	signalCount    atomic.Uint64
	coalescedCount atomic.Uint64

	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	skipped      atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordWindow records the start of a batching window.
func (m *Metrics) RecordWindow() {
	m.windowCount.Add(1)
}

// RecordEvent records one input event applied to the editor.
func (m *Metrics) RecordEvent() {
	m.eventCount.Add(1)
}

// RecordSignal records a render signal sent to the render task.
func (m *Metrics) RecordSignal() {
	m.signalCount.Add(1)
}

// RecordCoalesced records a render signal folded into one already
// pending.
func (m *Metrics) RecordCoalesced() {
	m.coalescedCount.Add(1)
}

// RecordSkippedRender records a render signal that found nothing dirty.
func (m *Metrics) RecordSkippedRender() {
	m.skipped.Add(1)
}

// RecordFrame records the time taken to build and write one frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)

	// Update min (atomic compare-and-swap loop)
	for {
		old := m.frameMinNs.Load()
		if ns >= old {
			break
		}
		if m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (atomic compare-and-swap loop)
	for {
		old := m.frameMaxNs.Load()
		if ns <= old {
			break
		}
		if m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		Windows:        m.windowCount.Load(),
		Events:         m.eventCount.Load(),
		Signals:        m.signalCount.Load(),
		Coalesced:      m.coalescedCount.Load(),
		FrameCount:     frameCount,
		SkippedRenders: m.skipped.Load(),
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	Windows        uint64
	Events         uint64
	Signals        uint64
	Coalesced      uint64
	FrameCount     uint64
	SkippedRenders uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
}

// EventsPerFrame returns how many input events each written frame
// covered on average.
func (s MetricsSnapshot) EventsPerFrame() float64 {
	if s.FrameCount == 0 {
		return 0
	}
	return float64(s.Events) / float64(s.FrameCount)
}

// AvgFrameTime returns the mean frame time.
func (s MetricsSnapshot) AvgFrameTime() time.Duration {
	return time.Duration(s.AvgFrameTimeNs)
}

// String summarizes the snapshot on one line for the log.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("%d windows, %d events, %d frames (%.2f events/frame, %d coalesced, %d skipped), frame avg %v max %v, up %v",
		s.Windows, s.Events, s.FrameCount, s.EventsPerFrame(), s.Coalesced, s.SkippedRenders,
		s.AvgFrameTime(), time.Duration(s.MaxFrameTimeNs), s.Uptime.Round(time.Millisecond))
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Metrics returns the application's metrics instance.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
