// fixed.go - Fixed-point numeric type used by the spectral pipeline

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import "math"

// Fixed is a signed fixed-point value scaled by 4096 (a 20.12 split in the
// 32-bit form). All multiplies widen to 64 bits before the narrowing divide
// so overflow behavior stays auditable.
type Fixed int32

const (
	FIXED_SHIFT = 12
	FIXED_ONE   = Fixed(1 << FIXED_SHIFT)
)

func FixedFromInt(v int) Fixed {
	return Fixed(v) << FIXED_SHIFT
}

func FixedFromFloat(v float64) Fixed {
	return Fixed(math.Round(v * float64(FIXED_ONE)))
}

// Mul multiplies two fixed-point values with a widening intermediate.
func (a Fixed) Mul(b Fixed) Fixed {
	return Fixed(int64(a) * int64(b) >> FIXED_SHIFT)
}

// Int truncates toward negative infinity to the integer part.
func (a Fixed) Int() int {
	return int(a >> FIXED_SHIFT)
}

// Round rounds to the nearest integer.
func (a Fixed) Round() int {
	return int((a + FIXED_ONE/2) >> FIXED_SHIFT)
}

func (a Fixed) Float() float64 {
	return float64(a) / float64(FIXED_ONE)
}

// hypotInt64 computes the integer magnitude of a complex bin using 64-bit
// squares. Very large components are pre-scaled so the squares cannot
// overflow, then the result is scaled back.
func hypotInt64(re, im int64) int64 {
	if re < 0 {
		re = -re
	}
	if im < 0 {
		im = -im
	}
	var shift uint
	for re >= 1<<31 || im >= 1<<31 {
		re >>= 1
		im >>= 1
		shift++
	}
	return isqrt64(uint64(re*re)+uint64(im*im)) << shift
}

// isqrt64 is an integer square root by binary search on bits, enough for
// per-bin magnitudes without touching floating point.
func isqrt64(v uint64) int64 {
	var root, bit uint64
	bit = 1 << 62
	for bit > v {
		bit >>= 2
	}
	for bit != 0 {
		if v >= root+bit {
			v -= root + bit
			root = root>>1 + bit
		} else {
			root >>= 1
		}
		bit >>= 2
	}
	return int64(root)
}
