// main.go - streamgen: synthetic element stream generator for ScopeEngine

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	wave := flagSet.String("wave", "sine", "waveform: sine, square, ramp, noise")
	packing := flagSet.String("packing", "32x1", "packing arrangement: 32x1, 16x2, 8x4, 4x8, 2x16, 1x32")
	amplitude := flagSet.Int("amplitude", 255, "peak sample value")
	period := flagSet.Int("period", 64, "waveform period in samples")
	count := flagSet.Int("count", 4096, "number of samples to emit")
	window := flagSet.Int("window", 512, "sample window length")
	mode := flagSet.Int("mode", 0, "display variant (0 logic, 1 xy, 2 spectrum, 3 spectrogram)")
	mask := flagSet.Int("trigger-mask", 0, "trigger mask (0 disables)")
	match := flagSet.Int("trigger-match", 0, "trigger match value")
	divisor := flagSet.Int("rate", 64, "rate governor divisor")
	output := flagSet.String("output", "-", "output file, or - for stdout")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	g := NewGenerator(*wave, *packing, int32(*amplitude), *period)
	if err := g.Prologue(*window, *mode, int32(*mask), int32(*match), *divisor); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	g.Samples(*count)

	out := os.Stdout
	if *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(g.Bytes()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
