// element_wire.go - Byte-level framing of element streams for files and sockets

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
	"io"
)

// Wire form of one element: a tag byte, then for Key/Num a little-endian
// int32, for Str a little-endian uint16 length followed by that many bytes.
// End carries no payload. This is the framing used by capture files, the
// streamgen tool and the websocket sink; the live serial transport is
// external and hands the engine elements directly.

// EncodeElements appends the wire form of elems to dst and returns it.
func EncodeElements(dst []byte, elems []Element) []byte {
	for _, e := range elems {
		dst = append(dst, byte(e.Tag))
		switch e.Tag {
		case ELEM_KEY, ELEM_NUM:
			dst = binary.LittleEndian.AppendUint32(dst, uint32(e.Num))
		case ELEM_STR:
			n := len(e.Str)
			if n > 0xFFFF {
				n = 0xFFFF
			}
			dst = binary.LittleEndian.AppendUint16(dst, uint16(n))
			dst = append(dst, e.Str[:n]...)
		}
	}
	return dst
}

// DecodeElements tokenizes buf into elements. Decoding is best-effort in
// the same spirit as the element reader: a truncated or unknown trailer
// ends the result early rather than failing.
func DecodeElements(buf []byte) []Element {
	var elems []Element
	pos := 0
	for pos < len(buf) {
		tag := int(buf[pos])
		pos++
		switch tag {
		case ELEM_END:
			elems = append(elems, EndElement())
		case ELEM_KEY, ELEM_NUM:
			if pos+4 > len(buf) {
				return elems
			}
			v := int32(binary.LittleEndian.Uint32(buf[pos:]))
			pos += 4
			if tag == ELEM_KEY {
				elems = append(elems, KeyElement(v))
			} else {
				elems = append(elems, NumElement(v))
			}
		case ELEM_STR:
			if pos+2 > len(buf) {
				return elems
			}
			n := int(binary.LittleEndian.Uint16(buf[pos:]))
			pos += 2
			if pos+n > len(buf) {
				return elems
			}
			s := make([]byte, n)
			copy(s, buf[pos:pos+n])
			pos += n
			elems = append(elems, StrElement(s))
		default:
			// Unknown tag: silently truncate the remainder.
			return elems
		}
	}
	return elems
}

// ReadElementStream reads an entire wire-framed stream from r.
func ReadElementStream(r io.Reader) ([]Element, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeElements(buf), nil
}
