// main.go - Host entry point for the ScopeEngine debug-visualization windows

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	configPath := flagSet.String("config", "", "YAML display preset file")
	inputPath := flagSet.String("input", "-", "element stream capture file, or - for stdin")
	backendName := flagSet.String("backend", "", "render backend: headless, ebiten, terminal, websocket")
	modeName := flagSet.String("mode", "", "display variant: logic, xy, spectrum, spectrogram")
	listenAddr := flagSet.String("listen", "", "websocket listen address")
	debug := flagSet.Bool("debug", false, "verbose logging")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			log.Error("config load failed", "err", err)
			return 1
		}
		cfg = loaded
	}
	if *backendName != "" {
		cfg.Display.Backend = *backendName
	}
	if *modeName != "" {
		cfg.Display.Mode = *modeName
	}
	if *listenAddr != "" {
		cfg.Websocket.Listen = *listenAddr
	}

	elems, err := readInput(*inputPath)
	if err != nil {
		log.Error("input read failed", "path", *inputPath, "err", err)
		return 1
	}
	log.Debug("element stream loaded", "elements", len(elems))

	backend := RenderBackendByName(cfg.Display.Backend)
	var sink RenderSink
	if backend == RENDER_BACKEND_WS {
		sink = NewWebsocketSink(cfg.Websocket.Listen)
	} else {
		sink, err = NewRenderSink(backend, cfg.Display.Width, cfg.Display.Height)
		if err != nil {
			log.Error("sink create failed", "err", err)
			return 1
		}
	}

	queue := NewFrameQueue(4)
	display := NewScopeDisplay(DisplayModeByName(cfg.Display.Mode), nil, queue)
	cfg.Apply(display)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go queue.Run(ctx, sink)
	go func() {
		display.Consume(NewElementReader(elems))
		log.Info("stream consumed",
			"samples", display.SamplesIn(),
			"fires", display.TriggerFires(),
			"frames_dropped", queue.Dropped())
	}()

	// Ebiten owns the main goroutine until its window closes; the other
	// backends run until the host is interrupted.
	if backend == RENDER_BACKEND_EBITEN {
		go func() {
			<-ctx.Done()
			display.Close()
			sink.Stop()
		}()
		if err := sink.Start(); err != nil {
			log.Error("render backend failed", "err", err)
			return 1
		}
		return 0
	}

	if err := sink.Start(); err != nil {
		log.Error("render backend failed", "err", err)
		return 1
	}
	<-ctx.Done()
	display.Close()
	// Let the render task finish the frame in flight, then shut down.
	time.Sleep(50 * time.Millisecond)
	sink.Stop()
	return 0
}

func readInput(path string) ([]Element, error) {
	if path == "-" {
		return ReadElementStream(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadElementStream(f)
}
