// rate_governor.go - Modulo counter throttling full pipeline passes

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

const (
	RATE_DIVISOR_MIN = 1
	RATE_DIVISOR_MAX = 2048
)

// RateGovernor limits how often the expensive trigger-check/analysis/render
// pass runs relative to incoming samples. Divisor 1 passes every sample.
type RateGovernor struct {
	divisor int32
	count   int32
}

func NewRateGovernor(divisor int) *RateGovernor {
	g := &RateGovernor{}
	g.SetDivisor(divisor)
	return g
}

// SetDivisor clamps to 1..2048 and restarts the count.
func (g *RateGovernor) SetDivisor(divisor int) {
	g.divisor = int32(clampInt(divisor, RATE_DIVISOR_MIN, RATE_DIVISOR_MAX))
	g.count = 0
}

func (g *RateGovernor) Divisor() int { return int(g.divisor) }

// Tick counts one ingested sample and reports true exactly once per
// divisor calls.
func (g *RateGovernor) Tick() bool {
	g.count++
	if g.count >= g.divisor {
		g.count = 0
		return true
	}
	return false
}
