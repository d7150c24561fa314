// trigger.go - Edge-sensitive arm/fire trigger with holdoff

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

// TriggerConfig is set at configure time. Mask selects the bits compared,
// Match the target pattern, Offset how far back from the write head the
// inspected sample sits, Holdoff the quiet count enforced after a fire.
// Mask zero disables the trigger entirely (free-running mode).
type TriggerConfig struct {
	Mask    int32
	Match   int32
	Offset  int
	Holdoff int32
}

// Trigger is a two-state edge detector. The signal must first move away
// from the match condition (arming) before moving into it can fire; a
// static signal sitting on the match value never re-fires.
type Trigger struct {
	cfg              TriggerConfig
	armed            bool
	holdoffRemaining int32
}

func NewTrigger() *Trigger {
	return &Trigger{}
}

func (t *Trigger) Configure(cfg TriggerConfig) {
	t.cfg = cfg
	t.Reset()
}

func (t *Trigger) Config() TriggerConfig { return t.cfg }

// Reset disarms the trigger and clears any pending holdoff.
func (t *Trigger) Reset() {
	t.armed = false
	t.holdoffRemaining = 0
}

func (t *Trigger) Armed() bool             { return t.armed }
func (t *Trigger) HoldoffRemaining() int32 { return t.holdoffRemaining }

// Enabled reports whether a trigger condition is configured at all.
func (t *Trigger) Enabled() bool { return t.cfg.Mask != 0 }

// Process feeds one sample through the state machine and reports whether
// the trigger fired. While armed, each non-firing sample runs down the
// holdoff count; a candidate arriving before the holdoff has elapsed is
// consumed (the machine still disarms) but not reported.
func (t *Trigger) Process(sample int32) bool {
	if t.cfg.Mask == 0 {
		return false
	}
	matched := ((sample ^ t.cfg.Match) & t.cfg.Mask) == 0
	if !t.armed {
		if !matched {
			t.armed = true
		}
		return false
	}
	if matched {
		t.armed = false
		if t.holdoffRemaining == 0 {
			t.holdoffRemaining = t.cfg.Holdoff
			return true
		}
		t.holdoffRemaining--
		return false
	}
	if t.holdoffRemaining > 0 {
		t.holdoffRemaining--
	}
	return false
}
