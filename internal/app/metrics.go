package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks frame loop counters.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	// Cells the surface refused to draw
	drawFailures atomic.Uint64

	// Input handling
	inputCount   atomic.Uint64
	inputDropped atomic.Uint64

	scriptErrors  atomic.Uint64
	reloads       atomic.Uint64
	reloadFailure atomic.Uint64

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

// RecordFrame records the render time of one frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordDrawFailures adds cells that failed to draw.
func (m *Metrics) RecordDrawFailures(n int) {
	if n > 0 {
		m.drawFailures.Add(uint64(n))
	}
}

// RecordInput records a handled input event.
func (m *Metrics) RecordInput() {
	m.inputCount.Add(1)
}

// RecordInputDropped records an input event lost to a full queue.
func (m *Metrics) RecordInputDropped() {
	m.inputDropped.Add(1)
}

// RecordScriptError records a failed script hook.
func (m *Metrics) RecordScriptError() {
	m.scriptErrors.Add(1)
}

// RecordReload records a live reload attempt.
func (m *Metrics) RecordReload(ok bool) {
	if ok {
		m.reloads.Add(1)
	} else {
		m.reloadFailure.Add(1)
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
		FrameCount:     frameCount,
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		DrawFailures:   m.drawFailures.Load(),
		InputCount:     m.inputCount.Load(),
		InputDropped:   m.inputDropped.Load(),
		ScriptErrors:   m.scriptErrors.Load(),
		Reloads:        m.reloads.Load(),
		ReloadFailures: m.reloadFailure.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	DrawFailures   uint64
	InputCount     uint64
	InputDropped   uint64
	ScriptErrors   uint64
	Reloads        uint64
	ReloadFailures uint64
}

// AvgRenderTime returns the mean frame render time.
func (s MetricsSnapshot) AvgRenderTime() time.Duration {
	return time.Duration(s.AvgFrameTimeNs)
}

// DropRate returns the percentage of input events that were dropped.
func (s MetricsSnapshot) DropRate() float64 {
	total := s.InputCount + s.InputDropped
	if total == 0 {
		return 0
	}
	return float64(s.InputDropped) / float64(total) * 100
}
