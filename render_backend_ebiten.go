// render_backend_ebiten.go - Windowed render sink using the pure Go Ebiten backend

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
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// EbitenSink rasterizes submitted frames into an RGBA buffer on the
// ingestion side and lets the Ebiten game loop blit it. Spectrogram frames
// accumulate into the buffer (the scrolling column model); all other
// variants repaint from black each frame.
type EbitenSink struct {
	width  int
	height int

	bufferMutex sync.RWMutex
	frameBuffer []byte
	status      string

	started    atomic.Bool
	frameCount uint64
	done       chan struct{}
}

func NewEbitenSink(width, height int) *EbitenSink {
	if width <= 0 {
		width = DEFAULT_DISPLAY_WIDTH
	}
	if height <= 0 {
		height = DEFAULT_DISPLAY_HEIGHT
	}
	return &EbitenSink{
		width:       width,
		height:      height,
		frameBuffer: make([]byte, width*height*4),
		done:        make(chan struct{}),
	}
}

// Start opens the window. ebiten.RunGame owns the calling goroutine until
// the window closes, so the host runs Start on its main goroutine and the
// engine on another.
func (s *EbitenSink) Start() error {
	if s.started.Swap(true) {
		return nil
	}
	ebiten.SetWindowSize(s.width, s.height)
	ebiten.SetWindowTitle("ScopeEngine")
	ebiten.SetTPS(60)
	err := ebiten.RunGame(&ebitenScopeGame{sink: s})
	s.started.Store(false)
	if err != nil {
		return &RenderError{Operation: "run", Details: "ebiten game loop", Err: err}
	}
	return nil
}

func (s *EbitenSink) Stop() error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	return nil
}

func (s *EbitenSink) Close() error { return s.Stop() }

func (s *EbitenSink) IsStarted() bool { return s.started.Load() }

func (s *EbitenSink) Clear() error {
	s.bufferMutex.Lock()
	for i := range s.frameBuffer {
		s.frameBuffer[i] = 0
	}
	s.bufferMutex.Unlock()
	return nil
}

func (s *EbitenSink) SubmitFrame(frame *RenderFrame) error {
	s.bufferMutex.Lock()
	defer s.bufferMutex.Unlock()

	if frame.Mode != MODE_SPECTROGRAM {
		for i := range s.frameBuffer {
			s.frameBuffer[i] = 0
		}
	}
	for _, p := range frame.Points {
		s.plot(p.X.Round(), p.Y.Round(), p.Color, p.Opacity)
	}
	for _, c := range frame.Cells {
		var rgb uint32
		if int(c.ColorIndex) < len(frame.Palette) {
			rgb = frame.Palette[c.ColorIndex]
		}
		s.plot(c.Column, c.Row, rgb, 255)
	}
	s.status = fmt.Sprintf("frame %d  mode %d  %d pts  %d cells",
		frame.Seq, frame.Mode, len(frame.Points), len(frame.Cells))
	if frame.Triggered {
		s.status += "  TRIG"
	}
	atomic.AddUint64(&s.frameCount, 1)
	return nil
}

func (s *EbitenSink) Present() error { return nil }

func (s *EbitenSink) GetFrameCount() uint64 {
	return atomic.LoadUint64(&s.frameCount)
}

// plot writes one pixel with source-over blending against the existing
// buffer contents.
func (s *EbitenSink) plot(x, y int, rgb uint32, opacity uint8) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	r, g, b := UnpackRGB(rgb)
	o := int(opacity)
	i := (y*s.width + x) * 4
	s.frameBuffer[i+0] = uint8((int(r)*o + int(s.frameBuffer[i+0])*(255-o)) / 255)
	s.frameBuffer[i+1] = uint8((int(g)*o + int(s.frameBuffer[i+1])*(255-o)) / 255)
	s.frameBuffer[i+2] = uint8((int(b)*o + int(s.frameBuffer[i+2])*(255-o)) / 255)
	s.frameBuffer[i+3] = 0xFF
}

type ebitenScopeGame struct {
	sink *EbitenSink
}

func (g *ebitenScopeGame) Update() error {
	select {
	case <-g.sink.done:
		return ebiten.Termination
	default:
		return nil
	}
}

func (g *ebitenScopeGame) Draw(screen *ebiten.Image) {
	g.sink.bufferMutex.RLock()
	screen.WritePixels(g.sink.frameBuffer)
	status := g.sink.status
	g.sink.bufferMutex.RUnlock()
	if status != "" {
		text.Draw(screen, status, basicfont.Face7x13, 4, g.sink.height-4,
			color.RGBA{R: 0x80, G: 0xFF, B: 0x80, A: 0xFF})
	}
}

func (g *ebitenScopeGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.sink.width, g.sink.height
}
