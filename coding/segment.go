// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strconv"

	"golang.org/x/text/encoding/charmap"
)

// A Mode is a QR segment encoding mode.
type Mode int8

// Segment modes.
const (
	Numeric      Mode = iota // decimal digits
	Alphanumeric             // digits, upper case letters, " $%*+-./:"
	Byte                     // any data
	Kanji                    // Shift JIS double byte characters
	ECI                      // extended channel interpretation
)

// ECI assignment numbers.
const (
	Latin1ECI = 3  // ISO 8859-1
	UTF8ECI   = 26 // UTF-8
)

var modes = [...]struct {
	name      string
	indicator uint32
	countLen  [3]byte // character count field length per size class
}{
	Numeric:      {"numeric", 1, [3]byte{10, 12, 14}},
	Alphanumeric: {"alphanumeric", 2, [3]byte{9, 11, 13}},
	Byte:         {"byte", 4, [3]byte{8, 16, 16}},
	Kanji:        {"kanji", 8, [3]byte{8, 10, 12}},
	ECI:          {"eci", 7, [3]byte{0, 0, 0}},
}

func (m Mode) valid() bool { return 0 <= m && int(m) < len(modes) }

func (m Mode) String() string {
	if m.valid() {
		return modes[m].name
	}
	return strconv.Itoa(int(m))
}

// Indicator returns the 4 bit mode indicator.
func (m Mode) Indicator() uint32 { return modes[m].indicator }

// CountLength returns the length in bits of the character count field
// at version v.
func (m Mode) CountLength(v Version) int {
	return int(modes[m].countLen[v.SizeClass()])
}

// A Segment is an immutable QR code segment: a mode, a character count
// and the encoded data bits.
type Segment struct {
	mode  Mode
	count int
	data  Bits
}

// NewSegment returns a segment of the given mode and character count
// with a copy of data.  The data is not validated against the mode.
func NewSegment(mode Mode, count int, data *Bits) (Segment, error) {
	if !mode.valid() {
		return Segment{}, fmt.Errorf("%w: mode %d", ErrInvalidArgument, mode)
	}
	if count < 0 {
		return Segment{}, fmt.Errorf("%w: count %d", ErrInvalidArgument, count)
	}
	return Segment{mode, count, data.Clone()}, nil
}

// Mode returns the segment's mode.
func (s Segment) Mode() Mode { return s.mode }

// NumChars returns the character count: digits, characters or bytes,
// and 0 for ECI segments.
func (s Segment) NumChars() int { return s.count }

// Len returns the length of the encoded data in bits, excluding the
// header.
func (s Segment) Len() int { return s.data.nbit }

// Data returns a copy of the encoded data.
func (s Segment) Data() Bits { return s.data.Clone() }

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table.  Used after validation.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

// IsNumeric reports whether text consists of decimal digits.
func IsNumeric(text string) bool {
	for i := 0; i < len(text); i++ {
		if uint32(text[i]-'0') >= 10 {
			return false
		}
	}
	return true
}

// IsAlphanumeric reports whether text is in the alphanumeric character
// set.
func IsAlphanumeric(text string) bool {
	for i := 0; i < len(text); i++ {
		if alphamask>>(uint32(text[i])-' ')&1 == 0 {
			return false
		}
	}
	return true
}

// MakeNumeric returns a numeric mode segment for a string of digits.
// Groups of 3, 2 and 1 digits are encoded in 10, 7 and 4 bits.
func MakeNumeric(text string) (Segment, error) {
	if !IsNumeric(text) {
		return Segment{}, fmt.Errorf("%w: non-numeric string %#q",
			ErrInvalidCharacter, text)
	}
	var b Bits
	b.Grow(len(text)*3 + (len(text)+2)/3)
	for s := text; s != ""; {
		n := min(len(s), 3)
		var v uint32
		for i := 0; i < n; i++ {
			v = v*10 + uint32(s[i]-'0')
		}
		b.write(v, n*3+1)
		s = s[n:]
	}
	return Segment{Numeric, len(text), b}, nil
}

// MakeAlphanumeric returns an alphanumeric mode segment.  Pairs of
// characters are encoded in 11 bits, a trailing single one in 6.
func MakeAlphanumeric(text string) (Segment, error) {
	if !IsAlphanumeric(text) {
		return Segment{}, fmt.Errorf("%w: non-alphanumeric string %#q",
			ErrInvalidCharacter, text)
	}
	var b Bits
	b.Grow(len(text)*5 + (len(text)+1)/2)
	s := text
	for ; len(s) >= 2; s = s[2:] {
		b.write(uint32(alpha[s[0]&0x3f])*45+uint32(alpha[s[1]&0x3f]), 11)
	}
	if s != "" {
		b.write(uint32(alpha[s[0]&0x3f]), 6)
	}
	return Segment{Alphanumeric, len(text), b}, nil
}

// MakeBytes returns a byte mode segment for data.
func MakeBytes(data []byte) Segment {
	b := Bits{b: append([]byte(nil), data...), nbit: len(data) * 8}
	return Segment{Byte, len(data), b}
}

// MakeLatin1 returns a byte mode segment for UTF-8 text converted to
// ISO 8859-1.
func MakeLatin1(text string) (Segment, error) {
	t, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return Segment{}, fmt.Errorf("%w: non-latin-1 string %#q",
			ErrInvalidCharacter, text)
	}
	return MakeBytes([]byte(t)), nil
}

// MakeECI returns an ECI segment designating the given assignment
// number, which must be less than 1000000.
func MakeECI(value int) (Segment, error) {
	var b Bits
	switch {
	case value < 0:
		return Segment{}, fmt.Errorf("%w: eci %d", ErrOutOfRange, value)
	case value < 1<<7:
		b.write(uint32(value), 8)
	case value < 1<<14:
		b.write(0b10, 2)
		b.write(uint32(value), 14)
	case value < 1e6:
		b.write(0b110, 3)
		b.write(uint32(value), 21)
	default:
		return Segment{}, fmt.Errorf("%w: eci %d", ErrOutOfRange, value)
	}
	return Segment{ECI, 0, b}, nil
}

// MakeSegments returns a single segment encoding text in the most
// compact mode that accepts all of it: numeric, alphanumeric, or byte
// mode holding the UTF-8 bytes.  Empty text returns no segments.
//
// The text is not split into runs of different modes.
func MakeSegments(text string) []Segment {
	var s Segment
	switch {
	case text == "":
		return nil
	case IsNumeric(text):
		s, _ = MakeNumeric(text)
	case IsAlphanumeric(text):
		s, _ = MakeAlphanumeric(text)
	default:
		s = MakeBytes([]byte(text))
	}
	return []Segment{s}
}

// TotalBits returns the encoded length in bits, including headers, of
// segs at version v.  It returns false if a segment's character count
// does not fit in its count field.
func TotalBits(segs []Segment, v Version) (int, bool) {
	n := 0
	for _, s := range segs {
		cl := s.mode.CountLength(v)
		if s.count >= 1<<cl {
			return 0, false
		}
		n += 4 + cl + s.data.nbit
	}
	return n, true
}
