// config_test.go - Tests for YAML preset loading and application

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
display:
  mode: spectrum
  backend: headless
window: 256
rate_divisor: 8
log_scale: true
trigger:
  mask: 255
  match: 128
  holdoff: 16
channels:
  - label: adc0
    color: 0xFF8800
    scale_max: 4095
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "spectrum", cfg.Display.Mode)
	assert.Equal(t, "headless", cfg.Display.Backend)
	assert.Equal(t, 256, cfg.Window)
	assert.Equal(t, 8, cfg.RateDivisor)
	assert.True(t, cfg.LogScale)
	assert.Equal(t, int32(255), cfg.Trigger.Mask)
	require.Len(t, cfg.Channels, 1)
	assert.Equal(t, "adc0", cfg.Channels[0].Label)
	assert.Equal(t, int64(4095), cfg.Channels[0].ScaleMax)

	// Untouched keys keep their defaults.
	assert.Equal(t, DEFAULT_DISPLAY_WIDTH, cfg.Display.Width)
	assert.Equal(t, DEFAULT_WS_LISTEN, cfg.Websocket.Listen)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "window: [not a number"))
	assert.Error(t, err)
}

func TestDisplayModeByName(t *testing.T) {
	assert.Equal(t, DisplayMode(MODE_XY), DisplayModeByName("xy"))
	assert.Equal(t, DisplayMode(MODE_SPECTRUM), DisplayModeByName("spectrum"))
	assert.Equal(t, DisplayMode(MODE_SPECTROGRAM), DisplayModeByName("spectrogram"))
	assert.Equal(t, DisplayMode(MODE_LOGIC), DisplayModeByName("logic"))
	assert.Equal(t, DisplayMode(MODE_LOGIC), DisplayModeByName("bogus"))
}

func TestApplyClampsAndConfiguresChannels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window = 100000
	cfg.RateDivisor = 0
	cfg.Trigger.Mask = 1
	cfg.Trigger.Match = 1
	cfg.Trigger.Offset = 100000
	cfg.Channels = []ChannelPreset{
		{Label: "clk", MagnitudeShift: 99},
		{Label: "data", Color: 0xFF123456, ScaleMax: -5},
	}

	d := NewScopeDisplay(MODE_LOGIC, NewHeadlessSink(), nil)
	cfg.Apply(d)

	assert.Equal(t, WINDOW_MAX, d.Window())
	assert.Equal(t, RATE_DIVISOR_MIN, d.governor.Divisor())
	assert.Equal(t, WINDOW_MAX-1, d.trigger.Config().Offset)
	assert.Equal(t, 2, d.registry.Count())
	assert.Equal(t, 11, d.registry.Get(0).MagnitudeShift)
	assert.Equal(t, uint32(0x123456), d.registry.Get(1).Color, "color masked to 24 bits")
	assert.Equal(t, int64(1), d.registry.Get(1).ScaleMax, "non-positive ceiling clamped")
	assert.Equal(t, 2, d.buffer.Channels())
}
