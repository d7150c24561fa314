// scope_display.go - Display engine: element dispatch, ingestion and the gated pipeline pass

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import "sync/atomic"

const (
	WINDOW_MIN = 4
	WINDOW_MAX = 2048

	HOLDOFF_MIN = 2
	HOLDOFF_MAX = 2048

	DEFAULT_DISPLAY_WIDTH  = 512
	DEFAULT_DISPLAY_HEIGHT = 256
)

// ScopeDisplay is one debug-visualization window: it owns the channel
// registry, history buffer, trigger, rate governor and FFT context, consumes
// the device's element stream and emits render frames. Ingestion is a
// synchronous, non-blocking sequence per element; the expensive analysis
// pass only runs once the window is full and a capture or governed tick
// asks for it.
type ScopeDisplay struct {
	mode   DisplayMode
	width  int
	height int

	registry *ChannelRegistry
	buffer   *HistoryBuffer
	trigger  *Trigger
	governor *RateGovernor
	fft      *FFTContext
	packing  PackingMode

	windowLen int
	logScale  bool

	curChannel    int
	slotFill      int
	scratch       []int32
	spectroColumn int

	// pendingCapture latches a trigger fire until the analysis pass
	// consumes it; trigger evaluation pauses while a capture is pending.
	pendingCapture bool

	frameSeq  uint64
	fires     uint64
	samplesIn uint64
	closed    atomic.Bool

	sink  RenderSink
	queue *FrameQueue
}

// NewScopeDisplay creates a display of the given variant emitting frames to
// sink. Pass a nil queue for synchronous delivery (tests, single-threaded
// hosts); with a queue, frames are coalesced toward a rendering task.
func NewScopeDisplay(mode DisplayMode, sink RenderSink, queue *FrameQueue) *ScopeDisplay {
	d := &ScopeDisplay{
		mode:      mode,
		width:     DEFAULT_DISPLAY_WIDTH,
		height:    DEFAULT_DISPLAY_HEIGHT,
		registry:  NewChannelRegistry(),
		buffer:    NewHistoryBuffer(1),
		trigger:   NewTrigger(),
		governor:  NewRateGovernor(1),
		packing:   UnpackedMode,
		windowLen: WINDOW_MAX,
		sink:      sink,
		queue:     queue,
	}
	d.setWindow(WINDOW_MAX)
	return d
}

// SetDimensions sets the output geometry frames are scaled into.
func (d *ScopeDisplay) SetDimensions(width, height int) {
	if width > 0 {
		d.width = width
	}
	if height > 0 {
		d.height = height
	}
}

func (d *ScopeDisplay) Mode() DisplayMode    { return d.mode }
func (d *ScopeDisplay) Window() int          { return d.windowLen }
func (d *ScopeDisplay) SamplesIn() uint64    { return d.samplesIn }
func (d *ScopeDisplay) TriggerFires() uint64 { return d.fires }

func (d *ScopeDisplay) spectral() bool {
	return d.mode == MODE_SPECTRUM || d.mode == MODE_SPECTROGRAM
}

// Consume dispatches every element of one tokenized message. Decoding is
// best-effort: a tag mismatch leaves the cursor for the main loop to skip,
// unknown keywords fall through the same way, and the loop always
// terminates on AtEnd.
func (d *ScopeDisplay) Consume(r *ElementReader) {
	for !r.AtEnd() {
		kw, ok := r.NextKey()
		if !ok {
			r.Skip()
			continue
		}
		d.dispatch(kw, r)
	}
}

func (d *ScopeDisplay) dispatch(kw int32, r *ElementReader) {
	if m, ok := PackingModeForKeyword(kw); ok {
		m.SignExtend = d.packing.SignExtend
		m.AltOrder = d.packing.AltOrder
		d.packing = m
		return
	}

	switch kw {
	case KW_WINDOW:
		if n, ok := r.NextNum(); ok {
			d.setWindow(int(n))
		}
	case KW_CHANNEL:
		if n, ok := r.NextNum(); ok {
			if d.registry.Define(int(n)) {
				d.curChannel = int(n)
				d.syncChannels()
			}
			// excess channel definitions are ignored; curChannel stays
		}
	case KW_LABEL:
		if s, ok := r.NextStr(); ok {
			d.registry.Get(d.curChannel).Label = string(s)
		}
	case KW_COLOR:
		if n, ok := r.NextNum(); ok {
			d.registry.Get(d.curChannel).Color = uint32(n) & 0xFFFFFF
		}
	case KW_BITS:
		if n, ok := r.NextNum(); ok {
			d.registry.Get(d.curChannel).SetBitWidth(int(n))
		}
	case KW_SCALE:
		if n, ok := r.NextNum(); ok {
			d.registry.Get(d.curChannel).SetScaleMax(int64(n))
		}
	case KW_MAGSHIFT:
		if n, ok := r.NextNum(); ok {
			d.registry.Get(d.curChannel).SetMagnitudeShift(int(n))
			if d.fft != nil {
				d.fft.SetMagnitudeShift(int(n))
			}
		}
	case KW_BASELINE:
		if n, ok := r.NextNum(); ok {
			d.registry.Get(d.curChannel).Baseline = int(n)
		}
	case KW_HEIGHT:
		if n, ok := r.NextNum(); ok {
			d.registry.Get(d.curChannel).DisplayHeight = int(n)
		}
	case KW_GRID:
		if n, ok := r.NextNum(); ok {
			d.registry.Get(d.curChannel).GridFlags = uint32(n)
		}
	case KW_TRIGGER:
		cfg := d.trigger.Config()
		if n, ok := r.NextNum(); ok {
			cfg.Mask = n
		}
		if n, ok := r.NextNum(); ok {
			cfg.Match = n
		}
		if n, ok := r.NextNum(); ok {
			cfg.Offset = clampInt(int(n), 0, d.windowLen-1)
		}
		d.trigger.Configure(cfg)
		d.pendingCapture = false
	case KW_HOLDOFF:
		if n, ok := r.NextNum(); ok {
			cfg := d.trigger.Config()
			cfg.Holdoff = clampInt32(n, HOLDOFF_MIN, HOLDOFF_MAX)
			d.trigger.Configure(cfg)
		}
	case KW_RATE:
		if n, ok := r.NextNum(); ok {
			d.governor.SetDivisor(int(n))
		}
	case KW_LOGSCALE:
		if n, ok := r.NextNum(); ok {
			d.logScale = n != 0
			if d.fft != nil {
				d.fft.SetLogScale(d.logScale)
			}
		}
	case KW_MODE:
		if n, ok := r.NextNum(); ok {
			d.mode = DisplayMode(clampInt32(n, MODE_LOGIC, MODE_SPECTROGRAM))
			d.setWindow(d.windowLen)
		}
	case KW_SIGNED:
		if n, ok := r.NextNum(); ok {
			d.packing.SignExtend = n != 0
		}
	case KW_ALTBITS:
		if n, ok := r.NextNum(); ok {
			d.packing.AltOrder = n != 0
		}
	case KW_CLEAR:
		d.Clear()
	case KW_SAMPLES:
		for {
			n, ok := r.NextNum()
			if !ok {
				break
			}
			d.IngestWord(n)
		}
	default:
		// Unknown keyword: ignored; its argument elements are stepped
		// over by the Consume loop, keeping the protocol forward-compatible.
	}
}

// setWindow clamps the window length to 4..2048 and, for the spectral
// variants, rounds it down to the nearest power of two and rebuilds the FFT
// context.
func (d *ScopeDisplay) setWindow(n int) {
	n = clampInt(n, WINDOW_MIN, WINDOW_MAX)
	if d.spectral() {
		exp := ClampFFTExponent(n)
		n = 1 << exp
		if d.fft == nil || d.fft.Exponent() != exp {
			d.fft = NewFFTContext(exp)
			d.fft.SetLogScale(d.logScale)
			d.fft.SetMagnitudeShift(d.registry.Get(0).MagnitudeShift)
		}
	}
	d.windowLen = n
	d.buffer.SetWindow(n)
	cfg := d.trigger.Config()
	if cfg.Offset >= n {
		cfg.Offset = n - 1
		d.trigger.Configure(cfg)
	}
}

// syncChannels rebuilds the history buffer when the channel count grows.
// Reconfiguration discards history, which a configuration burst from the
// device always precedes anyway.
func (d *ScopeDisplay) syncChannels() {
	if d.buffer.Channels() == d.registry.Count() {
		return
	}
	d.buffer = NewHistoryBuffer(d.registry.Count())
	d.buffer.SetWindow(d.windowLen)
	d.slotFill = 0
}

// IngestWord unpacks one transmitted word and feeds each sample through the
// pipeline. Never allocates once the scratch slice has grown to the packing
// mode's width, and never blocks.
func (d *ScopeDisplay) IngestWord(word int32) {
	if d.closed.Load() {
		return
	}
	d.scratch = d.packing.UnpackAll(word, d.scratch[:0])
	for _, s := range d.scratch {
		d.ingestSample(s)
	}
}

// ingestSample distributes unpacked samples round-robin across the
// configured channels; a slot completes when every channel has a sample.
func (d *ScopeDisplay) ingestSample(s int32) {
	d.buffer.Put(d.slotFill, s)
	d.slotFill++
	if d.slotFill < d.registry.Count() {
		return
	}
	d.slotFill = 0
	d.buffer.Advance()
	d.samplesIn++
	d.processSlot()
}

// processSlot runs the cheap per-slot gates: trigger evaluation and the
// rate governor, then the full pass when one of them asks for it.
func (d *ScopeDisplay) processSlot() {
	tick := d.governor.Tick()

	if d.trigger.Enabled() {
		if !d.pendingCapture {
			t := d.buffer.ReadBack(d.trigger.Config().Offset, 0)
			if d.trigger.Process(t) {
				d.fires++
				d.pendingCapture = true
			}
		}
		if d.pendingCapture && d.buffer.Full() {
			d.runPass(true)
			d.pendingCapture = false
		}
		return
	}

	// Trigger disabled: every rate-governed tick is an implicit trigger.
	if tick && d.buffer.Full() {
		d.runPass(false)
	}
}

// runPass performs analysis and mapping for one frame and hands it off.
func (d *ScopeDisplay) runPass(triggered bool) {
	if d.closed.Load() {
		return
	}
	frame := d.buildFrame()
	frame.Triggered = triggered
	d.frameSeq++
	frame.Seq = d.frameSeq
	if d.queue != nil {
		d.queue.Offer(frame)
		return
	}
	if d.sink != nil {
		d.sink.SubmitFrame(frame)
		d.sink.Present()
	}
}

// Clear resets buffer fill and trigger arming, and tells the sink to wipe.
// Storage is not zeroed; stale samples are unreachable until overwritten.
func (d *ScopeDisplay) Clear() {
	d.buffer.Reset()
	d.trigger.Reset()
	d.governor.SetDivisor(d.governor.Divisor())
	d.pendingCapture = false
	d.slotFill = 0
	d.spectroColumn = 0
	if d.sink != nil {
		d.sink.Clear()
	}
}

// Close stops further frame production immediately. In-flight analysis may
// complete; its output is discarded.
func (d *ScopeDisplay) Close() {
	d.closed.Store(true)
}

// BufferSnapshot serves the device echo-back interface: the newest window
// of one channel, oldest first.
func (d *ScopeDisplay) BufferSnapshot(channel int) []int32 {
	return d.buffer.Snapshot(channel, d.windowLen)
}

// TriggerState serves the echo-back interface: current arming, remaining
// holdoff and total fires.
func (d *ScopeDisplay) TriggerState() (bool, int32, uint64) {
	return d.trigger.Armed(), d.trigger.HoldoffRemaining(), d.fires
}
