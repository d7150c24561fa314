// scope_display_test.go - End-to-end tests driving the display through element streams

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import (
	"math"
	"testing"
)

func keyNum(kw, n int32) []Element {
	return []Element{KeyElement(kw), NumElement(n)}
}

func sampleElems(samples ...int32) []Element {
	out := []Element{KeyElement(KW_SAMPLES)}
	for _, s := range samples {
		out = append(out, NumElement(s))
	}
	return out
}

func feed(d *ScopeDisplay, groups ...[]Element) {
	var msg []Element
	for _, g := range groups {
		msg = append(msg, g...)
	}
	msg = append(msg, EndElement())
	d.Consume(NewElementReader(msg))
}

// TestEndToEndTriggeredCapture walks a complete session: window 8, trigger
// on masked value 1, then eight samples of which the fifth matches. The
// capture must wait for the window to fill and emit exactly one triggered
// frame, with the newest sample still readable afterwards.
func TestEndToEndTriggeredCapture(t *testing.T) {
	sink := NewHeadlessSink()
	d := NewScopeDisplay(MODE_LOGIC, sink, nil)

	feed(d,
		keyNum(KW_WINDOW, 8),
		[]Element{KeyElement(KW_TRIGGER), NumElement(3), NumElement(1), NumElement(0)},
		sampleElems(0, 0, 2, 3, 1, 0, 1, 3),
	)

	if d.TriggerFires() != 1 {
		t.Errorf("trigger fired %d times, want 1", d.TriggerFires())
	}
	if sink.GetFrameCount() != 1 || sink.TriggeredFrames() != 1 {
		t.Errorf("sink saw %d frames (%d triggered), want 1 triggered frame",
			sink.GetFrameCount(), sink.TriggeredFrames())
	}
	snap := d.BufferSnapshot(0)
	if len(snap) != 8 || snap[len(snap)-1] != 3 {
		t.Errorf("snapshot %v, want 8 samples ending in 3", snap)
	}
	frame := sink.LastFrame()
	if frame == nil || !frame.Triggered || frame.Seq != 1 {
		t.Errorf("last frame %+v, want triggered seq 1", frame)
	}
}

func TestFreeRunGovernedFrames(t *testing.T) {
	sink := NewHeadlessSink()
	d := NewScopeDisplay(MODE_LOGIC, sink, nil)

	feed(d, keyNum(KW_WINDOW, 4), keyNum(KW_RATE, 4))
	for i := int32(0); i < 16; i++ {
		d.IngestWord(i)
	}
	if sink.GetFrameCount() != 4 {
		t.Errorf("%d frames over 16 samples at divisor 4, want 4", sink.GetFrameCount())
	}
	if sink.TriggeredFrames() != 0 {
		t.Error("free-run frames must not carry the trigger flag")
	}
}

func TestWindowClamped(t *testing.T) {
	d := NewScopeDisplay(MODE_LOGIC, NewHeadlessSink(), nil)
	feed(d, keyNum(KW_WINDOW, 5000))
	if d.Window() != WINDOW_MAX {
		t.Errorf("window = %d, want clamp to %d", d.Window(), WINDOW_MAX)
	}
	feed(d, keyNum(KW_WINDOW, 2))
	if d.Window() != WINDOW_MIN {
		t.Errorf("window = %d, want clamp to %d", d.Window(), WINDOW_MIN)
	}
}

func TestSpectralWindowRoundsToPowerOfTwo(t *testing.T) {
	d := NewScopeDisplay(MODE_SPECTRUM, NewHeadlessSink(), nil)
	feed(d, keyNum(KW_WINDOW, 100))
	if d.Window() != 64 {
		t.Errorf("spectral window = %d, want 64", d.Window())
	}
}

func TestUnknownKeywordSkipped(t *testing.T) {
	d := NewScopeDisplay(MODE_LOGIC, NewHeadlessSink(), nil)
	feed(d,
		[]Element{KeyElement(0x55), NumElement(99), StrElement([]byte("junk"))},
		keyNum(KW_WINDOW, 16),
	)
	if d.Window() != 16 {
		t.Errorf("window = %d after unknown keyword, want 16", d.Window())
	}
}

func TestExcessChannelIgnored(t *testing.T) {
	d := NewScopeDisplay(MODE_LOGIC, NewHeadlessSink(), nil)
	feed(d, keyNum(KW_CHANNEL, 20), keyNum(KW_COLOR, 0x123456))
	if got := d.registry.Count(); got != 1 {
		t.Errorf("channel count = %d after out-of-range define, want 1", got)
	}
	// The color keyword still lands on the previously selected channel.
	if got := d.registry.Get(0).Color; got != 0x123456 {
		t.Errorf("channel 0 color = %#x, want 0x123456", got)
	}
}

func TestMultiChannelPackedIngest(t *testing.T) {
	d := NewScopeDisplay(MODE_LOGIC, NewHeadlessSink(), nil)
	feed(d,
		keyNum(KW_CHANNEL, 1),
		[]Element{KeyElement(KW_PACK_16X2)},
		sampleElems(7<<16|5),
	)
	if snap := d.BufferSnapshot(0); len(snap) != 1 || snap[0] != 5 {
		t.Errorf("channel 0 snapshot %v, want [5]", snap)
	}
	if snap := d.BufferSnapshot(1); len(snap) != 1 || snap[0] != 7 {
		t.Errorf("channel 1 snapshot %v, want [7]", snap)
	}
	if d.SamplesIn() != 1 {
		t.Errorf("samplesIn = %d, want 1 completed slot", d.SamplesIn())
	}
}

func TestSignedPackedIngest(t *testing.T) {
	d := NewScopeDisplay(MODE_LOGIC, NewHeadlessSink(), nil)
	feed(d,
		keyNum(KW_SIGNED, 1),
		[]Element{KeyElement(KW_PACK_8X4)},
		sampleElems(0x01FF02FE),
	)
	snap := d.BufferSnapshot(0)
	want := []int32{-2, 2, -1, 1} // lanes low to high, sign-extended
	if len(snap) != len(want) {
		t.Fatalf("snapshot %v, want %v", snap, want)
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, snap[i], want[i])
		}
	}
}

func TestClearResetsPipeline(t *testing.T) {
	sink := NewHeadlessSink()
	d := NewScopeDisplay(MODE_LOGIC, sink, nil)
	feed(d, keyNum(KW_WINDOW, 4), sampleElems(1, 2, 3))
	feed(d, []Element{KeyElement(KW_CLEAR)})
	if sink.GetClearCount() != 1 {
		t.Errorf("sink clears = %d, want 1", sink.GetClearCount())
	}
	if snap := d.BufferSnapshot(0); snap != nil {
		t.Errorf("snapshot after clear = %v, want empty", snap)
	}
}

func TestCloseStopsFrames(t *testing.T) {
	sink := NewHeadlessSink()
	d := NewScopeDisplay(MODE_LOGIC, sink, nil)
	feed(d, keyNum(KW_WINDOW, 4))
	d.Close()
	for i := int32(0); i < 8; i++ {
		d.IngestWord(i)
	}
	if sink.GetFrameCount() != 0 {
		t.Errorf("%d frames after close, want 0", sink.GetFrameCount())
	}
}

func TestTriggerOffsetEvaluatesOlderSample(t *testing.T) {
	d := NewScopeDisplay(MODE_LOGIC, NewHeadlessSink(), nil)
	feed(d,
		keyNum(KW_WINDOW, 8),
		[]Element{KeyElement(KW_TRIGGER), NumElement(1), NumElement(1), NumElement(1)},
		sampleElems(0, 1, 0),
	)
	// The match value entered the buffer one slot before the fire.
	if d.TriggerFires() != 1 {
		t.Errorf("fires = %d, want 1 via the offset readback", d.TriggerFires())
	}
}

func TestSpectrumFramePeakBin(t *testing.T) {
	sink := NewHeadlessSink()
	d := NewScopeDisplay(MODE_SPECTRUM, sink, nil)
	feed(d, keyNum(KW_WINDOW, 8), keyNum(KW_SCALE, 600))

	samples := make([]int32, 16)
	for i := range samples {
		samples[i] = int32(math.Round(1000 * math.Cos(2*math.Pi*2*float64(i)/8)))
	}
	feed(d, sampleElems(samples...))

	frame := sink.LastFrame()
	if frame == nil {
		t.Fatal("no frame emitted")
	}
	if len(frame.Points) != 4 {
		t.Fatalf("%d points, want one per bin (4)", len(frame.Points))
	}
	// Tallest bar (smallest Y) must be bin 2, where the cosine sits.
	for b, p := range frame.Points {
		if b != 2 && p.Y <= frame.Points[2].Y {
			t.Errorf("bin %d bar (Y=%d) not below peak bin 2 (Y=%d)",
				b, p.Y, frame.Points[2].Y)
		}
	}
}

func TestSpectrogramScrollsColumns(t *testing.T) {
	sink := NewHeadlessSink()
	d := NewScopeDisplay(MODE_SPECTROGRAM, sink, nil)
	feed(d, keyNum(KW_WINDOW, 8))
	feed(d, sampleElems(make([]int32, 10)...))

	if sink.GetFrameCount() != 3 {
		t.Fatalf("%d frames over 10 samples with window 8, want 3", sink.GetFrameCount())
	}
	frame := sink.LastFrame()
	if len(frame.Cells) != 4 {
		t.Fatalf("%d cells, want one per bin (4)", len(frame.Cells))
	}
	for _, c := range frame.Cells {
		if c.Column != 2 {
			t.Errorf("cell column %d on third pass, want 2", c.Column)
		}
	}
	if len(frame.Palette) != PALETTE_SIZE {
		t.Errorf("palette size %d, want %d", len(frame.Palette), PALETTE_SIZE)
	}
}

func TestModeSwitchRebuildsSpectralWindow(t *testing.T) {
	d := NewScopeDisplay(MODE_LOGIC, NewHeadlessSink(), nil)
	feed(d, keyNum(KW_WINDOW, 100))
	if d.Window() != 100 {
		t.Fatalf("logic window = %d, want raw 100", d.Window())
	}
	feed(d, keyNum(KW_MODE, MODE_SPECTRUM))
	if d.Window() != 64 {
		t.Errorf("window after switch to spectrum = %d, want 64", d.Window())
	}
}
