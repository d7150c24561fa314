// trigger_test.go - Tests for the arm/fire trigger state machine

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import "testing"

func fireIndices(trig *Trigger, stream []int32) []int {
	var fires []int
	for i, s := range stream {
		if trig.Process(s) {
			fires = append(fires, i)
		}
	}
	return fires
}

func TestTriggerSequencing(t *testing.T) {
	trig := NewTrigger()
	trig.Configure(TriggerConfig{Mask: 1, Match: 1})
	fires := fireIndices(trig, []int32{0, 0, 0, 1, 1, 0, 0, 1})
	if len(fires) != 2 || fires[0] != 3 || fires[1] != 7 {
		t.Errorf("fired at %v, want [3 7]", fires)
	}
}

func TestHoldoffSuppression(t *testing.T) {
	trig := NewTrigger()
	trig.Configure(TriggerConfig{Mask: 1, Match: 1, Holdoff: 2})
	fires := fireIndices(trig, []int32{0, 0, 0, 1, 1, 0, 0, 1})
	if len(fires) != 1 || fires[0] != 3 {
		t.Errorf("fired at %v, want [3] (second candidate inside holdoff)", fires)
	}
}

func TestStaticSignalNeverRefires(t *testing.T) {
	trig := NewTrigger()
	trig.Configure(TriggerConfig{Mask: 0xFF, Match: 0x42})
	stream := []int32{0, 0x42, 0x42, 0x42, 0x42, 0x42}
	fires := fireIndices(trig, stream)
	if len(fires) != 1 || fires[0] != 1 {
		t.Errorf("fired at %v, want [1]: a signal sitting on the match value must not re-fire", fires)
	}
}

func TestMaskedBitsIgnored(t *testing.T) {
	trig := NewTrigger()
	trig.Configure(TriggerConfig{Mask: 0x0F, Match: 0x05})
	// High bits differ but the masked low nibble matches.
	fires := fireIndices(trig, []int32{0x00, 0xF5})
	if len(fires) != 1 || fires[0] != 1 {
		t.Errorf("fired at %v, want [1]", fires)
	}
}

func TestZeroMaskDisablesEngine(t *testing.T) {
	trig := NewTrigger()
	trig.Configure(TriggerConfig{Mask: 0, Match: 0})
	if trig.Enabled() {
		t.Error("mask 0 must disable the trigger")
	}
	for i := 0; i < 100; i++ {
		if trig.Process(int32(i)) {
			t.Fatal("disabled trigger must never fire")
		}
	}
}

func TestResetDisarmsAndClearsHoldoff(t *testing.T) {
	trig := NewTrigger()
	trig.Configure(TriggerConfig{Mask: 1, Match: 1, Holdoff: 8})
	trig.Process(0) // arm
	trig.Process(1) // fire, holdoff pending
	if trig.HoldoffRemaining() == 0 {
		t.Fatal("expected holdoff pending after fire")
	}
	trig.Reset()
	if trig.Armed() || trig.HoldoffRemaining() != 0 {
		t.Error("reset must disarm and clear holdoff")
	}
}
