// render_backend_terminal.go - ANSI terminal render sink with braille-cell plotting

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
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
)

// Braille dot positions (col, row) -> bit offset inside one 2x4 cell.
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Heat ramp used for spectrogram cells when true color is unavailable.
var heatRunes = []rune{' ', '.', ':', '-', '=', '+', '*', '#', '%', '@'}

// TerminalSink plots point frames into a braille dot grid (each character
// cell is 2x4 dots) and cell frames as a 256-color heat ramp, then repaints
// the terminal on Present.
type TerminalSink struct {
	out  io.Writer
	cols int
	rows int

	mu         sync.Mutex
	dots       []uint8  // braille pattern per character cell
	dotColor   []uint32 // last color plotted into each cell
	cells      []uint8  // spectrogram intensity per character cell
	haveCells  bool
	status     string
	started    bool
	frameCount uint64
}

func NewTerminalSink() *TerminalSink {
	cols, rows := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 2 && h > 2 {
		cols, rows = w, h-1 // keep one line for status
	}
	return &TerminalSink{
		out:      os.Stdout,
		cols:     cols,
		rows:     rows,
		dots:     make([]uint8, cols*rows),
		dotColor: make([]uint32, cols*rows),
		cells:    make([]uint8, cols*rows),
	}
}

func (t *TerminalSink) Start() error {
	t.mu.Lock()
	t.started = true
	t.mu.Unlock()
	fmt.Fprint(t.out, "\x1b[2J\x1b[?25l") // clear, hide cursor
	return nil
}

func (t *TerminalSink) Stop() error {
	t.mu.Lock()
	t.started = false
	t.mu.Unlock()
	fmt.Fprint(t.out, "\x1b[?25h\x1b[0m\n") // show cursor, reset attributes
	return nil
}

func (t *TerminalSink) Close() error { return t.Stop() }

func (t *TerminalSink) IsStarted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

func (t *TerminalSink) Clear() error {
	t.mu.Lock()
	for i := range t.dots {
		t.dots[i] = 0
		t.cells[i] = 0
	}
	t.haveCells = false
	t.mu.Unlock()
	return nil
}

func (t *TerminalSink) SubmitFrame(frame *RenderFrame) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if frame.Mode != MODE_SPECTROGRAM {
		for i := range t.dots {
			t.dots[i] = 0
		}
	}
	dotW := t.cols * 2
	dotH := t.rows * 4
	for _, p := range frame.Points {
		dx := scaleTo(p.X.Round(), frame.Width, dotW)
		dy := scaleTo(p.Y.Round(), frame.Height, dotH)
		if dx < 0 || dx >= dotW || dy < 0 || dy >= dotH {
			continue
		}
		cell := (dy/4)*t.cols + dx/2
		t.dots[cell] |= 1 << brailleBits[dx%2][dy%4]
		t.dotColor[cell] = p.Color
	}
	for _, c := range frame.Cells {
		cx := scaleTo(c.Column, frame.Width, t.cols)
		cy := scaleTo(c.Row, frame.Height, t.rows)
		if cx < 0 || cx >= t.cols || cy < 0 || cy >= t.rows {
			continue
		}
		t.cells[cy*t.cols+cx] = c.ColorIndex
		t.haveCells = true
	}
	t.status = fmt.Sprintf("seq %d  pts %d  cells %d", frame.Seq, len(frame.Points), len(frame.Cells))
	if frame.Triggered {
		t.status += "  TRIG"
	}
	atomic.AddUint64(&t.frameCount, 1)
	return nil
}

// Present repaints the whole grid. Writing one big string per frame keeps
// flicker down on slow terminals.
func (t *TerminalSink) Present() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out strings.Builder
	out.WriteString("\x1b[H")
	var lastColor uint32 = 0xFFFFFFFF
	for r := 0; r < t.rows; r++ {
		for c := 0; c < t.cols; c++ {
			i := r*t.cols + c
			if t.haveCells && t.dots[i] == 0 {
				idx := int(t.cells[i]) * (len(heatRunes) - 1) / 255
				out.WriteRune(heatRunes[idx])
				continue
			}
			if t.dots[i] == 0 {
				out.WriteByte(' ')
				continue
			}
			if col := t.dotColor[i]; col != lastColor {
				cr, cg, cb := UnpackRGB(col)
				fmt.Fprintf(&out, "\x1b[38;2;%d;%d;%dm", cr, cg, cb)
				lastColor = col
			}
			out.WriteRune(rune(0x2800 + int(t.dots[i])))
		}
		out.WriteByte('\n')
	}
	fmt.Fprintf(&out, "\x1b[0m%s\x1b[K", t.status)
	_, err := io.WriteString(t.out, out.String())
	return err
}

func (t *TerminalSink) GetFrameCount() uint64 {
	return atomic.LoadUint64(&t.frameCount)
}

func scaleTo(v, from, to int) int {
	if from < 1 {
		return 0
	}
	return v * to / from
}
