// channel_registry.go - Per-channel display and scale metadata

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

// MAX_CHANNELS is the most channels a display instance tracks; excess
// channel definitions from the device are ignored.
const MAX_CHANNELS = 16

// Channel holds the display/scale metadata for one telemetry channel. The
// registry creates channels during configuration parse; afterwards only the
// label and color may be delta-updated on reconfiguration.
type Channel struct {
	Label          string
	Color          uint32 // packed 24-bit RGB
	BitWidth       int    // 1..32
	MagnitudeShift int    // 0..11
	ScaleMax       int64
	DisplayHeight  int
	Baseline       int
	GridFlags      uint32
}

// Default channel colors, cycled when the device does not set one.
var defaultChannelColors = [...]uint32{
	0x00FF40, 0xFFB000, 0x40A0FF, 0xFF4080,
	0xB0FF40, 0x40FFD0, 0xD080FF, 0xFFFFFF,
}

type ChannelRegistry struct {
	channels [MAX_CHANNELS]Channel
	count    int
}

func NewChannelRegistry() *ChannelRegistry {
	return &ChannelRegistry{}
}

// Define ensures channel index exists, creating intermediate channels with
// defaults as needed. Indices at or beyond MAX_CHANNELS are ignored and
// Define reports whether the index is usable.
func (cr *ChannelRegistry) Define(index int) bool {
	if index < 0 || index >= MAX_CHANNELS {
		return false
	}
	for cr.count <= index {
		cr.channels[cr.count] = Channel{
			Color:         defaultChannelColors[cr.count%len(defaultChannelColors)],
			BitWidth:      32,
			ScaleMax:      0xFFFF,
			DisplayHeight: 64,
		}
		cr.count++
	}
	return true
}

func (cr *ChannelRegistry) Count() int {
	if cr.count == 0 {
		return 1 // an unconfigured display behaves as one default channel
	}
	return cr.count
}

// Get returns a pointer into the registry for in-place configuration.
// Out-of-range indices alias channel 0 so a desynced stream cannot fault.
func (cr *ChannelRegistry) Get(index int) *Channel {
	if index < 0 || index >= MAX_CHANNELS {
		return &cr.channels[0]
	}
	if index >= cr.count {
		cr.Define(index)
	}
	return &cr.channels[index]
}

// SetBitWidth clamps to the documented 1..32 range.
func (c *Channel) SetBitWidth(bits int) {
	c.BitWidth = clampInt(bits, 1, 32)
}

// SetMagnitudeShift clamps to the documented 0..11 range.
func (c *Channel) SetMagnitudeShift(shift int) {
	c.MagnitudeShift = clampInt(shift, 0, 11)
}

// SetScaleMax rejects non-positive ceilings, which would break the
// logarithmic mapping.
func (c *Channel) SetScaleMax(max int64) {
	if max < 1 {
		max = 1
	}
	c.ScaleMax = max
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
