// config.go - YAML display presets for the host application

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries host-side display presets. Everything here can also arrive
// from the device over the element stream; the preset is applied first and
// the device may override. Out-of-range values are clamped when applied,
// never rejected.
type Config struct {
	Display struct {
		Mode    string `yaml:"mode"`    // logic | xy | spectrum | spectrogram
		Backend string `yaml:"backend"` // headless | ebiten | terminal | websocket
		Width   int    `yaml:"width"`
		Height  int    `yaml:"height"`
	} `yaml:"display"`

	Window      int  `yaml:"window"`
	RateDivisor int  `yaml:"rate_divisor"`
	LogScale    bool `yaml:"log_scale"`

	Trigger struct {
		Mask    int32 `yaml:"mask"`
		Match   int32 `yaml:"match"`
		Offset  int   `yaml:"offset"`
		Holdoff int32 `yaml:"holdoff"`
	} `yaml:"trigger"`

	Channels []ChannelPreset `yaml:"channels"`

	Websocket struct {
		Listen string `yaml:"listen"`
	} `yaml:"websocket"`
}

type ChannelPreset struct {
	Label          string `yaml:"label"`
	Color          uint32 `yaml:"color"`
	BitWidth       int    `yaml:"bit_width"`
	ScaleMax       int64  `yaml:"scale_max"`
	MagnitudeShift int    `yaml:"magnitude_shift"`
	Baseline       int    `yaml:"baseline"`
	Height         int    `yaml:"height"`
}

// DefaultConfig returns the presets used when no config file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Display.Mode = "logic"
	cfg.Display.Backend = "terminal"
	cfg.Display.Width = DEFAULT_DISPLAY_WIDTH
	cfg.Display.Height = DEFAULT_DISPLAY_HEIGHT
	cfg.Window = 512
	cfg.RateDivisor = 64
	cfg.Websocket.Listen = DEFAULT_WS_LISTEN
	return cfg
}

// LoadConfig reads and parses a YAML preset file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DisplayModeByName maps preset names onto mode ids; unknown names fall
// back to the logic analyzer.
func DisplayModeByName(name string) DisplayMode {
	switch name {
	case "xy":
		return MODE_XY
	case "spectrum":
		return MODE_SPECTRUM
	case "spectrogram":
		return MODE_SPECTROGRAM
	default:
		return MODE_LOGIC
	}
}

// Apply pushes the preset into a display instance, going through the same
// clamping paths device configuration uses.
func (cfg *Config) Apply(d *ScopeDisplay) {
	d.SetDimensions(cfg.Display.Width, cfg.Display.Height)
	d.setWindow(cfg.Window)
	d.governor.SetDivisor(cfg.RateDivisor)
	d.logScale = cfg.LogScale
	if d.fft != nil {
		d.fft.SetLogScale(cfg.LogScale)
	}
	d.trigger.Configure(TriggerConfig{
		Mask:    cfg.Trigger.Mask,
		Match:   cfg.Trigger.Match,
		Offset:  clampInt(cfg.Trigger.Offset, 0, d.windowLen-1),
		Holdoff: clampInt32(cfg.Trigger.Holdoff, 0, HOLDOFF_MAX),
	})
	for i, cp := range cfg.Channels {
		if !d.registry.Define(i) {
			break
		}
		ch := d.registry.Get(i)
		if cp.Label != "" {
			ch.Label = cp.Label
		}
		if cp.Color != 0 {
			ch.Color = cp.Color & 0xFFFFFF
		}
		if cp.BitWidth != 0 {
			ch.SetBitWidth(cp.BitWidth)
		}
		if cp.ScaleMax != 0 {
			ch.SetScaleMax(cp.ScaleMax)
		}
		ch.SetMagnitudeShift(cp.MagnitudeShift)
		if cp.Baseline != 0 {
			ch.Baseline = cp.Baseline
		}
		if cp.Height != 0 {
			ch.DisplayHeight = cp.Height
		}
	}
	d.syncChannels()
}
