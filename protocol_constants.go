// protocol_constants.go - Element tags and configuration keywords for the ScopeEngine protocol

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

// Element tags as they appear on the wire. The byte-level transport hands us
// an already-tokenized element stream; these values identify each token.
const (
	ELEM_END = 0 // end of message
	ELEM_KEY = 3 // keyword/command code
	ELEM_NUM = 4 // signed 32-bit number
	ELEM_STR = 5 // string (length-prefixed)
)

// Configuration keywords consumed from the element stream. Unrecognized
// keywords are skipped, which keeps the protocol forward-compatible with
// newer firmware.
const (
	KW_WINDOW   = 0x01 // sample window length (4..2048)
	KW_CHANNEL  = 0x02 // select channel for subsequent per-channel keywords
	KW_LABEL    = 0x03 // channel label (string)
	KW_COLOR    = 0x04 // channel color, packed 24-bit RGB
	KW_BITS     = 0x05 // channel bit width (1..32)
	KW_SCALE    = 0x06 // channel scale ceiling
	KW_MAGSHIFT = 0x07 // magnitude shift (0..11)
	KW_BASELINE = 0x08 // vertical placement of the channel baseline
	KW_HEIGHT   = 0x09 // channel display height
	KW_GRID     = 0x0A // grid flags
	KW_TRIGGER  = 0x0B // trigger mask, match, offset (three numbers)
	KW_HOLDOFF  = 0x0C // post-trigger holdoff count (2..2048)
	KW_RATE     = 0x0D // rate governor divisor (1..2048)
	KW_LOGSCALE = 0x0E // logarithmic amplitude scaling (0/1)
	KW_MODE     = 0x0F // display variant selector
	KW_SIGNED   = 0x10 // sign-extend unpacked samples (0/1)
	KW_ALTBITS  = 0x11 // alternate interleaved bit order (0/1)
	KW_CLEAR    = 0x12 // reset buffer fill and trigger arming
	KW_SAMPLES  = 0x13 // sample words follow until end of message
)

// Packing mode keywords. Each selects one of the twelve fixed packing modes;
// the container size (long/word/byte) times the per-sample width is the
// transmitted word's occupied bits.
const (
	KW_PACK_32X1 = 0x20 // 1 sample of 32 bits per long (the unpacked default)
	KW_PACK_16X2 = 0x21 // 2 samples of 16 bits per long
	KW_PACK_8X4  = 0x22 // 4 samples of 8 bits per long
	KW_PACK_4X8  = 0x23 // 8 samples of 4 bits per long
	KW_PACK_2X16 = 0x24 // 16 samples of 2 bits per long
	KW_PACK_1X32 = 0x25 // 32 samples of 1 bit per long
	KW_PACK_8X2  = 0x26 // 2 samples of 8 bits per word
	KW_PACK_4X4  = 0x27 // 4 samples of 4 bits per word
	KW_PACK_2X8  = 0x28 // 8 samples of 2 bits per word
	KW_PACK_1X16 = 0x29 // 16 samples of 1 bit per word
	KW_PACK_4X2  = 0x2A // 2 samples of 4 bits per byte
	KW_PACK_2X4  = 0x2B // 4 samples of 2 bits per byte
	KW_PACK_1X8  = 0x2C // 8 samples of 1 bit per byte
)

// Display variants sharing the one pipeline. The variant only changes how a
// completed pass is turned into render primitives.
const (
	MODE_LOGIC       = 0 // stepped per-channel digital traces
	MODE_XY          = 1 // channel-pair phase plot
	MODE_SPECTRUM    = 2 // per-bin magnitude bars
	MODE_SPECTROGRAM = 3 // scrolling color-mapped magnitude columns
)

type DisplayMode int
