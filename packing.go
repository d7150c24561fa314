// packing.go - Fixed bit-width sample packing codec

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

// PackingMode describes how several narrow samples are stored inside one
// wider transmitted word. BitsPerSample*SamplesPerWord never exceeds 32.
type PackingMode struct {
	BitsPerSample  int
	SamplesPerWord int
	SignExtend     bool
	AltOrder       bool
}

// UnpackedMode is the default: one verbatim 32-bit sample per word.
var UnpackedMode = PackingMode{BitsPerSample: 32, SamplesPerWord: 1}

// packModeTable maps packing keywords to the twelve fixed modes. The table
// entries all have SignExtend and AltOrder clear; those are toggled
// separately by KW_SIGNED and KW_ALTBITS.
var packModeTable = map[int32]PackingMode{
	KW_PACK_32X1: UnpackedMode,
	KW_PACK_16X2: {BitsPerSample: 16, SamplesPerWord: 2},
	KW_PACK_8X4:  {BitsPerSample: 8, SamplesPerWord: 4},
	KW_PACK_4X8:  {BitsPerSample: 4, SamplesPerWord: 8},
	KW_PACK_2X16: {BitsPerSample: 2, SamplesPerWord: 16},
	KW_PACK_1X32: {BitsPerSample: 1, SamplesPerWord: 32},
	KW_PACK_8X2:  {BitsPerSample: 8, SamplesPerWord: 2},
	KW_PACK_4X4:  {BitsPerSample: 4, SamplesPerWord: 4},
	KW_PACK_2X8:  {BitsPerSample: 2, SamplesPerWord: 8},
	KW_PACK_1X16: {BitsPerSample: 1, SamplesPerWord: 16},
	KW_PACK_4X2:  {BitsPerSample: 4, SamplesPerWord: 2},
	KW_PACK_2X4:  {BitsPerSample: 2, SamplesPerWord: 4},
	KW_PACK_1X8:  {BitsPerSample: 1, SamplesPerWord: 8},
}

// PackingModeForKeyword looks up a packing keyword. The unpacked default is
// returned for anything not in the table.
func PackingModeForKeyword(kw int32) (PackingMode, bool) {
	m, ok := packModeTable[kw]
	if !ok {
		return UnpackedMode, false
	}
	return m, true
}

// shuffleBits applies the alternate interleaved bit order: a fixed
// three-stage perfect shuffle swapping adjacent 1-bit, 2-bit and 4-bit
// groups. Each stage XORs the bit position with a constant, so the
// transform is its own inverse and the stages commute.
func shuffleBits(w uint32, bitsPerSample int) uint32 {
	if bitsPerSample <= 1 {
		w = (w&0x55555555)<<1 | (w>>1)&0x55555555
	}
	if bitsPerSample <= 2 {
		w = (w&0x33333333)<<2 | (w>>2)&0x33333333
	}
	if bitsPerSample <= 4 {
		w = (w&0x0F0F0F0F)<<4 | (w>>4)&0x0F0F0F0F
	}
	return w
}

// Unpack extracts sample index (0..SamplesPerWord-1) from one transmitted
// word. The unpacked mode returns the word verbatim.
func (m PackingMode) Unpack(word int32, index int) int32 {
	if m.BitsPerSample >= 32 {
		return word
	}
	w := uint32(word)
	if m.AltOrder {
		w = shuffleBits(w, m.BitsPerSample)
	}
	mask := uint32(1)<<uint(m.BitsPerSample) - 1
	s := (w >> uint(index*m.BitsPerSample)) & mask
	if m.SignExtend && s&(mask>>1+1) != 0 {
		s |= ^mask
	}
	return int32(s)
}

// UnpackAll extracts every sample of the word in index order, modeled as an
// iterative right shift of a mutable accumulator.
func (m PackingMode) UnpackAll(word int32, dst []int32) []int32 {
	if m.BitsPerSample >= 32 {
		return append(dst, word)
	}
	w := uint32(word)
	if m.AltOrder {
		w = shuffleBits(w, m.BitsPerSample)
	}
	mask := uint32(1)<<uint(m.BitsPerSample) - 1
	msb := mask>>1 + 1
	for i := 0; i < m.SamplesPerWord; i++ {
		s := w & mask
		if m.SignExtend && s&msb != 0 {
			s |= ^mask
		}
		dst = append(dst, int32(s))
		w >>= uint(m.BitsPerSample)
	}
	return dst
}

// Pack is the inverse of UnpackAll, used by the stream generator and the
// round-trip tests. Sample values are masked to the mode's width.
func (m PackingMode) Pack(samples []int32) int32 {
	if m.BitsPerSample >= 32 {
		if len(samples) == 0 {
			return 0
		}
		return samples[0]
	}
	mask := uint32(1)<<uint(m.BitsPerSample) - 1
	var w uint32
	n := len(samples)
	if n > m.SamplesPerWord {
		n = m.SamplesPerWord
	}
	for i := 0; i < n; i++ {
		w |= (uint32(samples[i]) & mask) << uint(i*m.BitsPerSample)
	}
	if m.AltOrder {
		// The shuffle is an involution, so packing applies the same stages.
		w = shuffleBits(w, m.BitsPerSample)
	}
	return int32(w)
}
