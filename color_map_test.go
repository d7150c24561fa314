// color_map_test.go - Tests for palette generation and color packing

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

func TestPackUnpackRGB(t *testing.T) {
	c := PackRGB(0x12, 0x34, 0x56)
	if c != 0x123456 {
		t.Fatalf("packed %#x, want 0x123456", c)
	}
	r, g, b := UnpackRGB(c)
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("unpacked %#x %#x %#x", r, g, b)
	}
}

func TestGrayTintEndpoints(t *testing.T) {
	if GrayTint(0, 120) != 0 {
		t.Error("zero intensity must be black")
	}
	r, g, b := UnpackRGB(GrayTint(255, 0))
	if r != 255 {
		t.Errorf("full red-tinted intensity: r = %d, want 255", r)
	}
	if g == 0 || b == 0 {
		t.Errorf("tint must stay desaturated, got g=%d b=%d", g, b)
	}
}

func TestHueFromPhase(t *testing.T) {
	// Phase 0 is pure red at full intensity.
	if got := HueFromPhase(255, 0); got != 0xFF0000 {
		t.Errorf("phase 0 = %#06x, want ff0000", got)
	}
	// A third of a turn lands on green.
	r, g, b := UnpackRGB(HueFromPhase(255, uint32(math.Round(4294967296.0/3))))
	if g != 255 || r > 8 || b > 8 {
		t.Errorf("third turn = %d,%d,%d, want pure green", r, g, b)
	}
	if HueFromPhase(0, 12345) != 0 {
		t.Error("zero intensity must be black regardless of phase")
	}
}

func TestHeatPaletteShape(t *testing.T) {
	pal := HeatPalette()
	if len(pal) != PALETTE_SIZE {
		t.Fatalf("palette size %d, want %d", len(pal), PALETTE_SIZE)
	}
	if pal[0] != 0 {
		t.Errorf("palette floor %#06x, want black", pal[0])
	}
	r, g, b := UnpackRGB(pal[PALETTE_SIZE-1])
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("palette ceiling %d,%d,%d, want white", r, g, b)
	}
	// Cold half leans blue, hot half leans red.
	r, _, b = UnpackRGB(pal[40])
	if b <= r {
		t.Errorf("cold entry r=%d b=%d, want blue-dominant", r, b)
	}
	r, _, b = UnpackRGB(pal[220])
	if r <= b {
		t.Errorf("hot entry r=%d b=%d, want red-dominant", r, b)
	}
}

func TestTintPaletteFollowsChannelHue(t *testing.T) {
	pal := TintPalette(PackRGB(0, 255, 0))
	if len(pal) != PALETTE_SIZE {
		t.Fatalf("palette size %d", len(pal))
	}
	if pal[0] != 0 {
		t.Error("tint palette floor must be black")
	}
	_, g, _ := UnpackRGB(pal[PALETTE_SIZE-1])
	if g != 255 {
		t.Errorf("green channel tint: g = %d, want 255", g)
	}
	if h := hueOf(pal[PALETTE_SIZE-1]); math.Abs(h-120) > 1 {
		t.Errorf("hue = %.1f, want 120", h)
	}
}
