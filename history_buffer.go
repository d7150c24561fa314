// history_buffer.go - Fixed-capacity circular sample history

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

// Capacity is a power of two so wraparound is a bitmask AND, never a
// modulo by a non-power-of-two.
const (
	BUFFER_CAPACITY = 2048
	BUFFER_MASK     = BUFFER_CAPACITY - 1
)

// HistoryBuffer is a fixed-capacity ring of decoded samples. Multi-channel
// displays interleave one sample per channel into each time slot; the write
// pointer advances once per slot. Overwriting the oldest slot is the defined
// behavior, not a failure. Mutated only by the ingestion path; read-only
// during analysis and render.
type HistoryBuffer struct {
	storage   []int32
	channels  int
	writePtr  uint32
	fillCount uint32
	windowLen uint32
}

func NewHistoryBuffer(channels int) *HistoryBuffer {
	if channels < 1 {
		channels = 1
	}
	return &HistoryBuffer{
		storage:   make([]int32, BUFFER_CAPACITY*channels),
		channels:  channels,
		windowLen: BUFFER_CAPACITY,
	}
}

// SetWindow sets the fill saturation point. The window never exceeds the
// buffer capacity.
func (b *HistoryBuffer) SetWindow(n int) {
	b.windowLen = uint32(clampInt(n, 1, BUFFER_CAPACITY))
	if b.fillCount > b.windowLen {
		b.fillCount = b.windowLen
	}
}

func (b *HistoryBuffer) Window() int   { return int(b.windowLen) }
func (b *HistoryBuffer) Channels() int { return b.channels }

// Put stores a sample for one channel at the current slot without advancing
// the write pointer. Ingestion fills every channel of a slot, then calls
// Advance.
func (b *HistoryBuffer) Put(channel int, sample int32) {
	if channel < 0 || channel >= b.channels {
		return
	}
	b.storage[int(b.writePtr)*b.channels+channel] = sample
}

// Advance moves to the next slot and bumps the fill count until it
// saturates at the configured window length.
func (b *HistoryBuffer) Advance() {
	b.writePtr = (b.writePtr + 1) & BUFFER_MASK
	if b.fillCount < b.windowLen {
		b.fillCount++
	}
}

// Push stores a single-channel sample and advances, the common case for
// the simpler display variants.
func (b *HistoryBuffer) Push(sample int32) {
	b.Put(0, sample)
	b.Advance()
}

// ReadBack returns the sample written k+1 slot-advances ago for the given
// channel. k ranges 0..Fill()-1; anything else reads stale but in-bounds
// storage, which the fill count makes unreachable to well-behaved callers.
func (b *HistoryBuffer) ReadBack(k int, channel int) int32 {
	if channel < 0 || channel >= b.channels {
		channel = 0
	}
	idx := (b.writePtr - uint32(k) - 1) & BUFFER_MASK
	return b.storage[int(idx)*b.channels+channel]
}

func (b *HistoryBuffer) Fill() int {
	return int(b.fillCount)
}

// Full reports whether the fill count has reached the configured window.
func (b *HistoryBuffer) Full() bool {
	return b.fillCount >= b.windowLen
}

// Reset zeroes the fill count and write pointer without clearing storage;
// stale data is simply unreachable until overwritten.
func (b *HistoryBuffer) Reset() {
	b.writePtr = 0
	b.fillCount = 0
}

// Snapshot copies the newest min(Fill, n) samples of a channel into a fresh
// slice, oldest first. Used by the echo-back surface and the frame builders,
// which must not alias ingestion-owned storage.
func (b *HistoryBuffer) Snapshot(channel int, n int) []int32 {
	if n > int(b.fillCount) {
		n = int(b.fillCount)
	}
	if n <= 0 {
		return nil
	}
	out := make([]int32, n)
	for k := 0; k < n; k++ {
		out[n-1-k] = b.ReadBack(k, channel)
	}
	return out
}
