// render_backend_headless.go - Recording render sink for tests and headless pipelines

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import (
	"sync"
	"sync/atomic"
)

// HeadlessSink counts frames and retains the most recent one so tests can
// inspect what the engine emitted without any display dependency.
type HeadlessSink struct {
	started    bool
	frameCount uint64
	clearCount uint64

	mu        sync.Mutex
	lastFrame *RenderFrame
	triggered uint64
}

func NewHeadlessSink() *HeadlessSink {
	return &HeadlessSink{}
}

func (h *HeadlessSink) Start() error {
	h.started = true
	return nil
}

func (h *HeadlessSink) Stop() error {
	h.started = false
	return nil
}

func (h *HeadlessSink) Close() error {
	h.started = false
	return nil
}

func (h *HeadlessSink) IsStarted() bool { return h.started }

func (h *HeadlessSink) Clear() error {
	atomic.AddUint64(&h.clearCount, 1)
	return nil
}

func (h *HeadlessSink) SubmitFrame(frame *RenderFrame) error {
	atomic.AddUint64(&h.frameCount, 1)
	h.mu.Lock()
	h.lastFrame = frame
	if frame.Triggered {
		h.triggered++
	}
	h.mu.Unlock()
	return nil
}

func (h *HeadlessSink) Present() error { return nil }

func (h *HeadlessSink) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *HeadlessSink) GetClearCount() uint64 {
	return atomic.LoadUint64(&h.clearCount)
}

// LastFrame returns the newest submitted frame, or nil.
func (h *HeadlessSink) LastFrame() *RenderFrame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastFrame
}

// TriggeredFrames returns how many submitted frames carried the trigger flag.
func (h *HeadlessSink) TriggeredFrames() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.triggered
}
