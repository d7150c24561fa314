// generator.go - Synthetic element stream generation

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Element tags and the keywords streamgen emits, mirroring the engine's
// protocol tables. The tool is self-contained so it can be copied next to a
// device firmware tree without dragging the engine along.
const (
	elemEnd = 0
	elemKey = 3
	elemNum = 4
	elemStr = 5

	kwWindow   = 0x01
	kwChannel  = 0x02
	kwLabel    = 0x03
	kwColor    = 0x04
	kwTrigger  = 0x0B
	kwHoldoff  = 0x0C
	kwRate     = 0x0D
	kwLogScale = 0x0E
	kwMode     = 0x0F
	kwSamples  = 0x13
)

// Packing arrangements streamgen can emit, keyword plus geometry.
var packings = map[string]struct {
	keyword int32
	bits    int
	count   int
}{
	"32x1": {0x20, 32, 1},
	"16x2": {0x21, 16, 2},
	"8x4":  {0x22, 8, 4},
	"4x8":  {0x23, 4, 8},
	"2x16": {0x24, 2, 16},
	"1x32": {0x25, 1, 32},
}

// Generator builds a wire-framed element stream: a configuration prologue
// followed by packed sample words.
type Generator struct {
	buf []byte

	wave      string
	packing   string
	amplitude int32
	period    int
	seed      uint32
}

func NewGenerator(wave, packing string, amplitude int32, period int) *Generator {
	if period < 2 {
		period = 2
	}
	return &Generator{
		wave:      wave,
		packing:   packing,
		amplitude: amplitude,
		period:    period,
		seed:      0xACE1, // LFSR seed for the noise waveform
	}
}

func (g *Generator) key(code int32) {
	g.buf = append(g.buf, elemKey)
	g.buf = binary.LittleEndian.AppendUint32(g.buf, uint32(code))
}

func (g *Generator) num(v int32) {
	g.buf = append(g.buf, elemNum)
	g.buf = binary.LittleEndian.AppendUint32(g.buf, uint32(v))
}

func (g *Generator) str(s string) {
	g.buf = append(g.buf, elemStr)
	g.buf = binary.LittleEndian.AppendUint16(g.buf, uint16(len(s)))
	g.buf = append(g.buf, s...)
}

func (g *Generator) end() {
	g.buf = append(g.buf, elemEnd)
}

// Prologue emits the configuration message: window, channel metadata,
// packing mode, trigger and governor settings.
func (g *Generator) Prologue(window int, mode int, mask, match int32, divisor int) error {
	p, ok := packings[g.packing]
	if !ok {
		return fmt.Errorf("unknown packing %q", g.packing)
	}
	g.key(kwMode)
	g.num(int32(mode))
	g.key(kwWindow)
	g.num(int32(window))
	g.key(kwChannel)
	g.num(0)
	g.key(kwLabel)
	g.str(g.wave)
	g.key(kwColor)
	g.num(0x40FF80)
	g.key(p.keyword)
	if mask != 0 {
		g.key(kwTrigger)
		g.num(mask)
		g.num(match)
		g.num(0)
	}
	g.key(kwRate)
	g.num(int32(divisor))
	g.end()
	return nil
}

// Samples emits n sample values packed into words under the configured
// packing arrangement, as one samples message.
func (g *Generator) Samples(n int) {
	p := packings[g.packing]
	g.key(kwSamples)
	word := int32(0)
	filled := 0
	for i := 0; i < n; i++ {
		v := g.sampleAt(i)
		mask := uint32(1)<<uint(p.bits) - 1
		if p.bits >= 32 {
			g.num(v)
			continue
		}
		word |= int32((uint32(v) & mask) << uint(filled*p.bits))
		filled++
		if filled == p.count {
			g.num(word)
			word, filled = 0, 0
		}
	}
	if filled > 0 && p.bits < 32 {
		g.num(word)
	}
	g.end()
}

// sampleAt produces one waveform value, masked to the packing width by the
// caller.
func (g *Generator) sampleAt(i int) int32 {
	switch g.wave {
	case "square":
		if i%g.period < g.period/2 {
			return g.amplitude
		}
		return 0
	case "ramp":
		return int32(i%g.period) * g.amplitude / int32(g.period-1)
	case "noise":
		// 16-bit Fibonacci LFSR, taps 16 14 13 11
		bit := (g.seed>>0 ^ g.seed>>2 ^ g.seed>>3 ^ g.seed>>5) & 1
		g.seed = g.seed>>1 | bit<<15
		return int32(g.seed) % (g.amplitude + 1)
	default: // sine, offset to stay non-negative
		s := math.Sin(2 * math.Pi * float64(i) / float64(g.period))
		return int32(math.Round((s + 1) / 2 * float64(g.amplitude)))
	}
}

// Bytes returns the accumulated wire stream.
func (g *Generator) Bytes() []byte {
	return g.buf
}
