// element_stream.go - Typed element stream decoder for the ScopeEngine protocol

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

// Element is one token of the configuration/data protocol. The transport
// layer tokenizes raw bytes into elements; the engine only ever sees this
// tagged form.
type Element struct {
	Tag int
	Num int32
	Str []byte
}

func EndElement() Element           { return Element{Tag: ELEM_END} }
func KeyElement(code int32) Element { return Element{Tag: ELEM_KEY, Num: code} }
func NumElement(v int32) Element    { return Element{Tag: ELEM_NUM, Num: v} }
func StrElement(s []byte) Element   { return Element{Tag: ELEM_STR, Str: s} }

// ElementReader provides lookahead-style consumption over a flat, ordered
// element sequence. Each accessor consumes exactly one element if and only
// if its tag matches; on a mismatch it is a no-op and the cursor stays put,
// so a caller can try a different accessor. Decoding is best-effort: there
// is no error path, a malformed stream simply truncates.
type ElementReader struct {
	elems []Element
	pos   int
}

func NewElementReader(elems []Element) *ElementReader {
	return &ElementReader{elems: elems}
}

// NextKey consumes and returns the next element if it is a keyword.
func (r *ElementReader) NextKey() (int32, bool) {
	if r.pos >= len(r.elems) || r.elems[r.pos].Tag != ELEM_KEY {
		return 0, false
	}
	v := r.elems[r.pos].Num
	r.pos++
	return v, true
}

// NextNum consumes and returns the next element if it is a number.
func (r *ElementReader) NextNum() (int32, bool) {
	if r.pos >= len(r.elems) || r.elems[r.pos].Tag != ELEM_NUM {
		return 0, false
	}
	v := r.elems[r.pos].Num
	r.pos++
	return v, true
}

// NextStr consumes and returns the next element if it is a string.
func (r *ElementReader) NextStr() ([]byte, bool) {
	if r.pos >= len(r.elems) || r.elems[r.pos].Tag != ELEM_STR {
		return nil, false
	}
	v := r.elems[r.pos].Str
	r.pos++
	return v, true
}

// AtEnd reports stream exhaustion, or an End element without consuming it.
// Every parse loop terminates on this; it is the only loop exit condition a
// caller may rely on.
func (r *ElementReader) AtEnd() bool {
	return r.pos >= len(r.elems) || r.elems[r.pos].Tag == ELEM_END
}

// Skip advances past one element of any tag except End. Used by dispatch
// loops to step over the arguments of an unrecognized keyword.
func (r *ElementReader) Skip() bool {
	if r.AtEnd() {
		return false
	}
	r.pos++
	return true
}

// Remaining returns the number of unconsumed elements, End included.
func (r *ElementReader) Remaining() int {
	return len(r.elems) - r.pos
}
