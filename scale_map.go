// scale_map.go - Linear, logarithmic and polar scaling of raw and spectral values

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import "math"

// MapLinear scales value by outMax/ceiling, rounded, clamped to 0..outMax.
func MapLinear(value, ceiling int64, outMax int) int {
	if ceiling < 1 {
		ceiling = 1
	}
	if value <= 0 {
		return 0
	}
	out := (value*int64(outMax) + ceiling/2) / ceiling
	if out > int64(outMax) {
		return outMax
	}
	return int(out)
}

// MapLog compresses value onto 0..ceiling logarithmically:
//
//	out = round(log2(value+1) / log2(ceiling+1) * ceiling)
//
// The +1 offsets keep log2(0) out of reach and pin both endpoints:
// MapLog(0) == 0 and MapLog(ceiling) == ceiling for every ceiling.
func MapLog(value, ceiling int64) int64 {
	if ceiling < 1 {
		return 0
	}
	if value <= 0 {
		return 0
	}
	if value >= ceiling {
		return ceiling
	}
	out := int64(math.Round(math.Log2(float64(value)+1) / math.Log2(float64(ceiling)+1) * float64(ceiling)))
	if out > ceiling {
		out = ceiling
	}
	return out
}

// MapAmplitude applies the display's configured amplitude law.
func MapAmplitude(value, ceiling int64, outMax int, logScale bool) int {
	if logScale {
		value = MapLog(value, ceiling)
	}
	return MapLinear(value, ceiling, outMax)
}

// PolarToCartesian converts a magnitude/angle pair into sub-pixel Cartesian
// offsets. The angle is a full turn normalized to [0, 2^32), matching the
// FFT phase output; amplitude scaling is applied to the radius before the
// shared trig step.
func PolarToCartesian(magnitude int64, angle uint32, ceiling int64, radiusMax int, logScale bool) (Fixed, Fixed) {
	r := MapAmplitude(magnitude, ceiling, radiusMax, logScale)
	theta := float64(angle) / 4294967296.0 * 2 * math.Pi
	x := FixedFromFloat(float64(r) * math.Cos(theta))
	y := FixedFromFloat(float64(r) * math.Sin(theta))
	return x, y
}
