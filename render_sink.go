// render_sink.go - Render sink interface between the engine and its display backends

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import "fmt"

// RenderError provides error context for sink operations.
type RenderError struct {
	Operation string
	Details   string
	Err       error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("render %s failed: %s", e.Operation, e.Details)
}

func (e *RenderError) Unwrap() error { return e.Err }

// RenderPrimitive is one scaled, color-resolved point of geometry. X and Y
// are sub-pixel fixed-point display coordinates. Transient: produced and
// discarded per frame, never retained by the core.
type RenderPrimitive struct {
	X       Fixed
	Y       Fixed
	Color   uint32 // packed 24-bit RGB
	Opacity uint8
}

// CellPrimitive is the spectrogram-style alternative: a palette-indexed
// cell at a column/row position.
type CellPrimitive struct {
	Column     int
	Row        int
	ColorIndex uint8
}

// RenderFrame is the unit handed to a sink per completed pipeline pass.
// A frame carries either point primitives or cells depending on the
// display variant, plus the palette the cell indices resolve against.
type RenderFrame struct {
	Seq       uint64
	Mode      DisplayMode
	Width     int
	Height    int
	Triggered bool
	Points    []RenderPrimitive
	Cells     []CellPrimitive
	Palette   []uint32
}

// RenderSink is the minimal interface a display backend must implement.
// The core never touches pixels; it only submits frames of geometry or
// magnitude/color pairs. Submit must not block ingestion: a slow backend
// coalesces (drops intermediate frames, keeps the newest).
type RenderSink interface {
	Start() error
	Stop() error
	Close() error
	IsStarted() bool

	Clear() error
	SubmitFrame(frame *RenderFrame) error
	Present() error

	GetFrameCount() uint64
}

// Predefined render backend types
const (
	RENDER_BACKEND_HEADLESS = iota // recording sink for tests and pipelines without a display
	RENDER_BACKEND_EBITEN          // pure Go windowed backend
	RENDER_BACKEND_TERMINAL        // ANSI/braille terminal backend
	RENDER_BACKEND_WS              // websocket streaming backend
)

// NewRenderSink creates a sink for the requested backend.
func NewRenderSink(backend int, width, height int) (RenderSink, error) {
	switch backend {
	case RENDER_BACKEND_HEADLESS:
		return NewHeadlessSink(), nil
	case RENDER_BACKEND_EBITEN:
		return NewEbitenSink(width, height), nil
	case RENDER_BACKEND_TERMINAL:
		return NewTerminalSink(), nil
	case RENDER_BACKEND_WS:
		return NewWebsocketSink(DEFAULT_WS_LISTEN), nil
	default:
		return nil, &RenderError{Operation: "create", Details: fmt.Sprintf("unknown backend %d", backend)}
	}
}

// RenderBackendByName maps config/flag names onto backend ids; unknown
// names fall back to headless.
func RenderBackendByName(name string) int {
	switch name {
	case "ebiten", "window":
		return RENDER_BACKEND_EBITEN
	case "terminal", "tty":
		return RENDER_BACKEND_TERMINAL
	case "websocket", "ws":
		return RENDER_BACKEND_WS
	default:
		return RENDER_BACKEND_HEADLESS
	}
}
