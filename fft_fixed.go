// fft_fixed.go - Fixed-point radix-2 decimation-in-time FFT engine

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import "math"

const (
	FFT_EXP_MIN = 2  // 4-point transform
	FFT_EXP_MAX = 11 // 2048-point transform

	// Base normalization applied per bin: hypot / (base << exponent),
	// further adjusted by the channel's magnitude shift.
	FFT_BASE_SCALE = 1
)

// FFTContext owns the precomputed tables for one transform size. Tables are
// generated once per configuration and immutable thereafter; Transform only
// writes the scratch arrays, so a context must not be shared by concurrent
// transforms.
type FFTContext struct {
	exponent       int
	size           int
	firstBin       int
	lastBin        int
	magnitudeShift int
	logScale       bool

	cosTab []int32 // cos(2*pi*i/size) scaled by 4096, i in 0..size/2-1
	sinTab []int32 // sin(2*pi*i/size) scaled by 4096
	winTab []int32 // Hanning 1-cos(2*pi*i/size) scaled by 4096
	revTab []int   // bit-reversal index permutation

	re    []int64
	im    []int64
	power []int64
	phase []uint32
}

// ClampFFTExponent rounds an arbitrary window length down to the nearest
// legal power-of-two exponent. Non-power-of-two requests are not an error.
func ClampFFTExponent(windowLen int) int {
	exp := FFT_EXP_MIN
	for (1 << (exp + 1)) <= windowLen && exp < FFT_EXP_MAX {
		exp++
	}
	return exp
}

// NewFFTContext precomputes the twiddle, window and permutation tables for
// a 2^exponent transform. The exponent is clamped to 2..11.
func NewFFTContext(exponent int) *FFTContext {
	exponent = clampInt(exponent, FFT_EXP_MIN, FFT_EXP_MAX)
	size := 1 << exponent
	f := &FFTContext{
		exponent: exponent,
		size:     size,
		firstBin: 0,
		lastBin:  size/2 - 1,
		cosTab:   make([]int32, size/2),
		sinTab:   make([]int32, size/2),
		winTab:   make([]int32, size),
		revTab:   make([]int, size),
		re:       make([]int64, size),
		im:       make([]int64, size),
		power:    make([]int64, size/2),
		phase:    make([]uint32, size/2),
	}
	for i := 0; i < size/2; i++ {
		angle := 2 * math.Pi * float64(i) / float64(size)
		f.cosTab[i] = int32(FixedFromFloat(math.Cos(angle)))
		f.sinTab[i] = int32(FixedFromFloat(math.Sin(angle)))
	}
	for i := 0; i < size; i++ {
		f.winTab[i] = int32(FixedFromFloat(1 - math.Cos(2*math.Pi*float64(i)/float64(size))))
	}
	// Bit-reversal permutation, built once and indexed directly instead of
	// re-deriving per call.
	for i := 0; i < size; i++ {
		rev := 0
		for b := 0; b < exponent; b++ {
			rev = rev<<1 | (i>>b)&1
		}
		f.revTab[i] = rev
	}
	return f
}

func (f *FFTContext) Exponent() int { return f.exponent }
func (f *FFTContext) Size() int     { return f.size }
func (f *FFTContext) Bins() int     { return f.size / 2 }
func (f *FFTContext) FirstBin() int { return f.firstBin }
func (f *FFTContext) LastBin() int  { return f.lastBin }

// SetBinRange restricts which bins the frame builders visit.
func (f *FFTContext) SetBinRange(first, last int) {
	f.firstBin = clampInt(first, 0, f.size/2-1)
	f.lastBin = clampInt(last, f.firstBin, f.size/2-1)
}

func (f *FFTContext) SetMagnitudeShift(shift int) {
	f.magnitudeShift = clampInt(shift, 0, 11)
}

func (f *FFTContext) SetLogScale(on bool) { f.logScale = on }
func (f *FFTContext) LogScale() bool      { return f.logScale }

// Transform windows the input, runs the iterative radix-2 decimation-in-time
// butterflies and fills the per-bin power and phase arrays. Missing input
// samples are treated as zero. The returned slices alias context scratch
// storage and are valid until the next Transform.
func (f *FFTContext) Transform(samples []int32) ([]int64, []uint32) {
	size := f.size

	// Window the input into bit-reversed positions so the butterfly output
	// comes out in natural order.
	for i := 0; i < size; i++ {
		var s int64
		if i < len(samples) {
			s = int64(samples[i])
		}
		j := f.revTab[i]
		f.re[j] = s * int64(f.winTab[i]) >> FIXED_SHIFT
		f.im[j] = 0
	}

	// Butterfly stages. The twiddle multiply divides by the fixed-point
	// scale after the full 64-bit product, not before, to keep precision.
	for length := 2; length <= size; length <<= 1 {
		half := length >> 1
		step := size / length
		for start := 0; start < size; start += length {
			for k := 0; k < half; k++ {
				w := k * step
				c := int64(f.cosTab[w])
				s := int64(f.sinTab[w])
				a := start + k
				b := a + half
				tr := (f.re[b]*c + f.im[b]*s) >> FIXED_SHIFT
				ti := (f.im[b]*c - f.re[b]*s) >> FIXED_SHIFT
				f.re[b] = f.re[a] - tr
				f.im[b] = f.im[a] - ti
				f.re[a] += tr
				f.im[a] += ti
			}
		}
	}

	div := int64(FFT_BASE_SCALE) << uint(f.exponent) >> uint(f.magnitudeShift)
	if div < 1 {
		div = 1
	}
	for i := 0; i < size/2; i++ {
		f.power[i] = hypotInt64(f.re[i], f.im[i]) / div
		f.phase[i] = normalizePhase(f.re[i], f.im[i])
	}
	return f.power, f.phase
}

// normalizePhase maps the bin angle onto [0, 2^32).
func normalizePhase(re, im int64) uint32 {
	if re == 0 && im == 0 {
		return 0
	}
	ang := math.Atan2(float64(im), float64(re))
	if ang < 0 {
		ang += 2 * math.Pi
	}
	return uint32(uint64(ang / (2 * math.Pi) * 4294967296.0))
}
