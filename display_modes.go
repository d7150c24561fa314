// display_modes.go - Per-variant frame builders sharing the one pipeline

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

// buildFrame turns the current buffer/FFT state into render primitives for
// the active display variant. Called only from a gated pipeline pass, with
// the buffer read-only for the duration.
func (d *ScopeDisplay) buildFrame() *RenderFrame {
	frame := &RenderFrame{
		Mode:   d.mode,
		Width:  d.width,
		Height: d.height,
	}
	switch d.mode {
	case MODE_XY:
		d.buildXY(frame)
	case MODE_SPECTRUM:
		d.buildSpectrum(frame)
	case MODE_SPECTROGRAM:
		d.buildSpectrogram(frame)
	default:
		d.buildLogic(frame)
	}
	return frame
}

// subpixelX spreads sample index i of n across the display width with
// sub-pixel precision.
func (d *ScopeDisplay) subpixelX(i, n int) Fixed {
	if n < 1 {
		n = 1
	}
	return Fixed(int64(i) * int64(d.width) << FIXED_SHIFT / int64(n))
}

// buildLogic emits stepped per-channel traces: one point per sample plus an
// extra point at each level transition so the sink can draw clean edges.
func (d *ScopeDisplay) buildLogic(frame *RenderFrame) {
	n := d.buffer.Fill()
	if n > d.windowLen {
		n = d.windowLen
	}
	for c := 0; c < d.registry.Count(); c++ {
		ch := d.registry.Get(c)
		baseline := ch.Baseline
		if baseline == 0 {
			// default vertical placement stacks channels top to bottom
			baseline = (c + 1) * d.height / (d.registry.Count() + 1)
		}
		height := ch.DisplayHeight
		if height > d.height {
			height = d.height
		}
		prevY := -1
		for k := n - 1; k >= 0; k-- {
			v := int64(d.buffer.ReadBack(k, c)) >> uint(ch.MagnitudeShift)
			y := baseline - MapAmplitude(v, ch.ScaleMax, height, d.logScale)
			i := n - 1 - k
			x := d.subpixelX(i, n)
			if prevY >= 0 && y != prevY {
				frame.Points = append(frame.Points, RenderPrimitive{
					X: x, Y: FixedFromInt(prevY), Color: ch.Color, Opacity: 255,
				})
			}
			frame.Points = append(frame.Points, RenderPrimitive{
				X: x, Y: FixedFromInt(y), Color: ch.Color, Opacity: 255,
			})
			prevY = y
		}
	}
}

// buildXY emits a channel-pair phase plot with age-faded opacity, newest
// points brightest.
func (d *ScopeDisplay) buildXY(frame *RenderFrame) {
	chX := d.registry.Get(0)
	chY := chX
	if d.registry.Count() > 1 {
		chY = d.registry.Get(1)
	}
	n := d.buffer.Fill()
	if n > d.windowLen {
		n = d.windowLen
	}
	for k := n - 1; k >= 0; k-- {
		vx := int64(d.buffer.ReadBack(k, 0)) >> uint(chX.MagnitudeShift)
		vy := vx
		if d.registry.Count() > 1 {
			vy = int64(d.buffer.ReadBack(k, 1)) >> uint(chY.MagnitudeShift)
		}
		x := MapAmplitude(vx, chX.ScaleMax, d.width-1, d.logScale)
		y := d.height - 1 - MapAmplitude(vy, chY.ScaleMax, d.height-1, d.logScale)
		age := 255 * (n - k) / n
		frame.Points = append(frame.Points, RenderPrimitive{
			X:       FixedFromInt(x),
			Y:       FixedFromInt(y),
			Color:   chX.Color,
			Opacity: uint8(age),
		})
	}
}

// buildSpectrum runs the transform and emits one bar top per bin, colored
// by the hue-from-phase mapping so correlated components share a tint.
func (d *ScopeDisplay) buildSpectrum(frame *RenderFrame) {
	ch := d.registry.Get(0)
	power, phase := d.fft.Transform(d.buffer.Snapshot(0, d.fft.Size()))
	first, last := d.fft.FirstBin(), d.fft.LastBin()
	bins := last - first + 1
	for b := first; b <= last; b++ {
		h := MapAmplitude(power[b], ch.ScaleMax, d.height-1, d.logScale)
		intensity := uint8(MapAmplitude(power[b], ch.ScaleMax, 255, d.logScale))
		frame.Points = append(frame.Points, RenderPrimitive{
			X:       d.subpixelX(b-first, bins),
			Y:       FixedFromInt(d.height - 1 - h),
			Color:   HueFromPhase(intensity, phase[b]),
			Opacity: 255,
		})
	}
}

// buildSpectrogram emits one palette-indexed column of cells per pass and
// advances the column cursor, wrapping at the display width.
func (d *ScopeDisplay) buildSpectrogram(frame *RenderFrame) {
	ch := d.registry.Get(0)
	power, _ := d.fft.Transform(d.buffer.Snapshot(0, d.fft.Size()))
	first, last := d.fft.FirstBin(), d.fft.LastBin()
	bins := last - first + 1
	for b := first; b <= last; b++ {
		row := (b - first) * d.height / bins
		idx := MapAmplitude(power[b], ch.ScaleMax, PALETTE_SIZE-1, d.logScale)
		frame.Cells = append(frame.Cells, CellPrimitive{
			Column:     d.spectroColumn,
			Row:        d.height - 1 - row,
			ColorIndex: uint8(idx),
		})
	}
	frame.Palette = d.spectroPalette()
	d.spectroColumn++
	if d.spectroColumn >= d.width {
		d.spectroColumn = 0
	}
}

// spectroPalette picks the channel-tinted ramp when the device set a
// channel color, the heat ramp otherwise.
func (d *ScopeDisplay) spectroPalette() []uint32 {
	ch := d.registry.Get(0)
	if ch.Color != 0 && ch.Label != "" {
		return TintPalette(ch.Color)
	}
	return HeatPalette()
}
