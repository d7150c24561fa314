// frame_queue.go - Coalescing frame hand-off between ingestion and rendering

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import (
	"context"
	"sync/atomic"
)

// FrameQueue is the bounded channel between the ingestion task and a
// rendering task. Ingestion never blocks on a slow renderer: when the queue
// is full the oldest pending frame is dropped and the newest kept, the same
// policy the circular buffer applies to history.
type FrameQueue struct {
	frames  chan *RenderFrame
	dropped atomic.Uint64
}

func NewFrameQueue(depth int) *FrameQueue {
	if depth < 1 {
		depth = 1
	}
	return &FrameQueue{frames: make(chan *RenderFrame, depth)}
}

// Offer enqueues a frame without ever blocking, coalescing under
// backpressure.
func (q *FrameQueue) Offer(f *RenderFrame) {
	for {
		select {
		case q.frames <- f:
			return
		default:
		}
		select {
		case <-q.frames:
			q.dropped.Add(1)
		default:
		}
	}
}

// Dropped reports how many frames were coalesced away.
func (q *FrameQueue) Dropped() uint64 {
	return q.dropped.Load()
}

// Run delivers queued frames to the sink until the context is canceled.
// An in-flight frame is allowed to complete; its output is simply the last
// thing the sink saw.
func (q *FrameQueue) Run(ctx context.Context, sink RenderSink) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-q.frames:
			if err := sink.SubmitFrame(f); err != nil {
				return err
			}
			if err := sink.Present(); err != nil {
				return err
			}
		}
	}
}
