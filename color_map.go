// color_map.go - Color mapping of magnitudes and phases into packed RGB

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import colorful "github.com/lucasb-eyer/go-colorful"

// PALETTE_SIZE is the number of entries in the spectrogram palettes; cell
// primitives carry a single byte index into the frame's palette.
const PALETTE_SIZE = 256

// PackRGB packs 8-bit components into the 24-bit wire/display form.
func PackRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func UnpackRGB(c uint32) (uint8, uint8, uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

func packColorful(c colorful.Color) uint32 {
	r, g, b := c.RGB255()
	return PackRGB(r, g, b)
}

// GrayTint maps an intensity in 0..255 to a gray level tinted toward the
// given hue (degrees). Saturation grows with intensity so quiet bins stay
// neutral while hot bins show the channel's tint.
func GrayTint(intensity uint8, hue float64) uint32 {
	v := float64(intensity) / 255.0
	return packColorful(colorful.Hsv(hue, 0.35*v, v))
}

// HueFromPhase pairs a magnitude channel with a phase-derived hue: the
// phase (normalized [0, 2^32)) selects the hue, the intensity the value.
func HueFromPhase(intensity uint8, phase uint32) uint32 {
	hue := float64(phase) / 4294967296.0 * 360.0
	v := float64(intensity) / 255.0
	return packColorful(colorful.Hsv(hue, 1.0, v))
}

// HeatPalette builds the default spectrogram palette: black through deep
// blue and orange to white, perceptually blended in HSV.
func HeatPalette() []uint32 {
	pal := make([]uint32, PALETTE_SIZE)
	cold := colorful.Hsv(240, 1.0, 0.25)
	warm := colorful.Hsv(30, 1.0, 1.0)
	for i := range pal {
		t := float64(i) / float64(PALETTE_SIZE-1)
		switch {
		case t < 0.1:
			// fade in from black
			c := colorful.Hsv(240, 1.0, 2.5*t)
			pal[i] = packColorful(c)
		case t > 0.9:
			// saturate toward white
			c := colorful.Hsv(30, 1.0-10*(t-0.9), 1.0)
			pal[i] = packColorful(c)
		default:
			pal[i] = packColorful(cold.BlendHsv(warm, (t-0.1)/0.8))
		}
	}
	return pal
}

// TintPalette builds a single-hue intensity ramp used by grayscale-with-
// hue-tint spectrograms; hue comes from the channel color.
func TintPalette(channelColor uint32) []uint32 {
	r, g, b := UnpackRGB(channelColor)
	base := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, _, _ := base.Hsv()
	pal := make([]uint32, PALETTE_SIZE)
	for i := range pal {
		pal[i] = GrayTint(uint8(i), h)
	}
	return pal
}

// hueOf extracts the hue angle of a packed 24-bit color.
func hueOf(c uint32) float64 {
	r, g, b := UnpackRGB(c)
	h, _, _ := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hsv()
	return h
}
