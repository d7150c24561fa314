// generator_test.go - Tests for the synthetic stream generator

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
	"testing"
)

// decodeNums walks a generated stream and collects every number element,
// tracking message boundaries.
func decodeNums(t *testing.T, buf []byte) (nums []int32, messages int) {
	t.Helper()
	pos := 0
	for pos < len(buf) {
		tag := buf[pos]
		pos++
		switch tag {
		case elemEnd:
			messages++
		case elemKey, elemNum:
			if pos+4 > len(buf) {
				t.Fatalf("truncated element at %d", pos)
			}
			if tag == elemNum {
				nums = append(nums, int32(binary.LittleEndian.Uint32(buf[pos:])))
			}
			pos += 4
		case elemStr:
			n := int(binary.LittleEndian.Uint16(buf[pos:]))
			pos += 2 + n
		default:
			t.Fatalf("unknown tag %d at %d", tag, pos)
		}
	}
	return nums, messages
}

func TestPrologueAndSamplesFraming(t *testing.T) {
	g := NewGenerator("square", "32x1", 10, 4)
	if err := g.Prologue(64, 0, 1, 1, 8); err != nil {
		t.Fatal(err)
	}
	g.Samples(8)
	_, messages := decodeNums(t, g.Bytes())
	if messages != 2 {
		t.Errorf("got %d messages, want 2 (prologue + samples)", messages)
	}
}

func TestSquareWaveValues(t *testing.T) {
	g := NewGenerator("square", "32x1", 10, 4)
	g.Samples(8)
	nums, _ := decodeNums(t, g.Bytes())
	want := []int32{10, 10, 0, 0, 10, 10, 0, 0}
	if len(nums) != len(want) {
		t.Fatalf("got %d samples, want %d", len(nums), len(want))
	}
	for i := range want {
		if nums[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, nums[i], want[i])
		}
	}
}

func TestPackedWordLayout(t *testing.T) {
	g := NewGenerator("ramp", "8x4", 255, 256)
	g.Samples(4)
	nums, _ := decodeNums(t, g.Bytes())
	if len(nums) != 1 {
		t.Fatalf("got %d words, want 1", len(nums))
	}
	// ramp over period 256 with amplitude 255 is the identity for 0..3
	word := uint32(nums[0])
	for i := 0; i < 4; i++ {
		got := word >> uint(i*8) & 0xFF
		if got != uint32(i) {
			t.Errorf("lane %d = %d, want %d", i, got, i)
		}
	}
}

func TestUnknownPackingRejected(t *testing.T) {
	g := NewGenerator("sine", "3x5", 255, 64)
	if err := g.Prologue(64, 0, 0, 0, 1); err == nil {
		t.Error("expected error for unknown packing")
	}
}
