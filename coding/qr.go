// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: segment
// encoding, error correction blocks, function patterns, codeword
// placement and masking.
package coding // import "github.com/unixdj/qrsym/coding"

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidCharacter reports text outside a mode's character set.
	ErrInvalidCharacter = errors.New("qr: invalid character")

	// ErrOutOfRange reports a version, mask, bit length or ECI
	// value outside its legal bounds.
	ErrOutOfRange = errors.New("qr: value out of range")

	// ErrInvalidArgument reports a violated caller contract.
	ErrInvalidArgument = errors.New("qr: invalid argument")
)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side.
// Versions run from 1 to 40: the larger the version,
// the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

// NewVersion returns n as a Version.
func NewVersion(n int) (Version, error) {
	v := Version(n)
	if !v.valid() {
		return 0, fmt.Errorf("%w: version %d", ErrOutOfRange, n)
	}
	return v, nil
}

func (v Version) valid() bool { return MinVersion <= v && v <= MaxVersion }

func (v Version) String() string { return strconv.Itoa(int(v)) }

// Size returns the number of modules on a side.
func (v Version) Size() int { return int(v)*4 + 17 }

// Version size classes, selecting the width of character count fields.
const (
	Class0 = iota // versions 1 to 9
	Class1        // versions 10 to 26
	Class2        // versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// RawDataModules returns the number of modules available for data and
// check bits, including remainder bits, in a QR code of version v.
func (v Version) RawDataModules() int {
	n := int(v)
	r := (16*n+128)*n + 64
	if n >= 2 {
		na := n/7 + 2
		r -= (25*na-10)*na - 55
		if n >= 7 {
			r -= 36
		}
	}
	return r
}

// RawCodewords returns the number of data and check bytes in a QR code
// of version v.
func (v Version) RawCodewords() int { return vtab[v].bytes }

// DataCodewords returns the number of data bytes that can be
// stored in a QR code with the given version and level.
func (v Version) DataCodewords(l Level) int {
	vt := &vtab[v]
	lev := vt.level[l]
	return vt.bytes - lev.nblock*lev.check
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataCodewords(l) * 8 }

// Blocks returns the number of error correction blocks and the number
// of check bytes per block for the given version and level.
func (v Version) Blocks(l Level) (nblock, check int) {
	lev := vtab[v].level[l]
	return lev.nblock, lev.check
}

// AlignmentPositions returns the ascending centre coordinates of the
// alignment patterns; patterns are centred at each pair of them except
// those overlapping finder patterns.  Version 1 has none.
func (v Version) AlignmentPositions() []int {
	if v == 1 {
		return nil
	}
	n := int(v)/7 + 2
	step := (int(v)*8 + n*3 + 5) / (n*4 - 4) * 2
	pos := make([]int, n)
	pos[0] = 6
	for i, p := n-1, v.Size()-7; i > 0; i, p = i-1, p-step {
		pos[i] = p
	}
	return pos
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // recovers about 7% of codewords
	M              // recovers about 15% of codewords
	Q              // recovers about 25% of codewords
	H              // recovers about 30% of codewords
)

// ParseLevel returns the level named by s, one of l, m, q or h in
// either case.
func ParseLevel(s string) (Level, error) {
	if len(s) == 1 {
		switch s[0] | 0x20 {
		case 'l':
			return L, nil
		case 'm':
			return M, nil
		case 'q':
			return Q, nil
		case 'h':
			return H, nil
		}
	}
	return 0, fmt.Errorf("%w: level %q", ErrOutOfRange, s)
}

func (l Level) valid() bool { return L <= l && l <= H }

func (l Level) String() string {
	if l.valid() {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// Ordinal returns l as an index from 0 to 3.
func (l Level) Ordinal() int { return int(l) }

// FormatBits returns the 2 bit level code used in format information.
func (l Level) FormatBits() uint32 { return uint32(l) ^ 1 }

// A Mask represents one of the 8 QR data mask patterns.
type Mask int

// AutoMask requests the mask with the lowest penalty.
const AutoMask Mask = -1

// NewMask returns n as a Mask.
func NewMask(n int) (Mask, error) {
	if n < 0 || n > 7 {
		return 0, fmt.Errorf("%w: mask %d", ErrOutOfRange, n)
	}
	return Mask(n), nil
}

func (m Mask) String() string { return strconv.Itoa(int(m)) }

// A version describes metadata associated with a version.
type version struct {
	bytes int      // raw codewords
	level [4]level // indexed by Level
}

type level struct {
	nblock int // error correction blocks
	check  int // check bytes per block
}

var vtab = [MaxVersion + 1]version{
	{},
	{26, [4]level{{1, 7}, {1, 10}, {1, 13}, {1, 17}}}, // 1
	{44, [4]level{{1, 10}, {1, 16}, {1, 22}, {1, 28}}}, // 2
	{70, [4]level{{1, 15}, {1, 26}, {2, 18}, {2, 22}}}, // 3
	{100, [4]level{{1, 20}, {2, 18}, {2, 26}, {4, 16}}}, // 4
	{134, [4]level{{1, 26}, {2, 24}, {4, 18}, {4, 22}}}, // 5
	{172, [4]level{{2, 18}, {4, 16}, {4, 24}, {4, 28}}}, // 6
	{196, [4]level{{2, 20}, {4, 18}, {6, 18}, {5, 26}}}, // 7
	{242, [4]level{{2, 24}, {4, 22}, {6, 22}, {6, 26}}}, // 8
	{292, [4]level{{2, 30}, {5, 22}, {8, 20}, {8, 24}}}, // 9
	{346, [4]level{{4, 18}, {5, 26}, {8, 24}, {8, 28}}}, // 10
	{404, [4]level{{4, 20}, {5, 30}, {8, 28}, {11, 24}}}, // 11
	{466, [4]level{{4, 24}, {8, 22}, {10, 26}, {11, 28}}}, // 12
	{532, [4]level{{4, 26}, {9, 22}, {12, 24}, {16, 22}}}, // 13
	{581, [4]level{{4, 30}, {9, 24}, {16, 20}, {16, 24}}}, // 14
	{655, [4]level{{6, 22}, {10, 24}, {12, 30}, {18, 24}}}, // 15
	{733, [4]level{{6, 24}, {10, 28}, {17, 24}, {16, 30}}}, // 16
	{815, [4]level{{6, 28}, {11, 28}, {16, 28}, {19, 28}}}, // 17
	{901, [4]level{{6, 30}, {13, 26}, {18, 28}, {21, 28}}}, // 18
	{991, [4]level{{7, 28}, {14, 26}, {21, 26}, {25, 26}}}, // 19
	{1085, [4]level{{8, 28}, {16, 26}, {20, 30}, {25, 28}}}, // 20
	{1156, [4]level{{8, 28}, {17, 26}, {23, 28}, {25, 30}}}, // 21
	{1258, [4]level{{9, 28}, {17, 28}, {23, 30}, {34, 24}}}, // 22
	{1364, [4]level{{9, 30}, {18, 28}, {25, 30}, {30, 30}}}, // 23
	{1474, [4]level{{10, 30}, {20, 28}, {27, 30}, {32, 30}}}, // 24
	{1588, [4]level{{12, 26}, {21, 28}, {29, 30}, {35, 30}}}, // 25
	{1706, [4]level{{12, 28}, {23, 28}, {34, 28}, {37, 30}}}, // 26
	{1828, [4]level{{12, 30}, {25, 28}, {34, 30}, {40, 30}}}, // 27
	{1921, [4]level{{13, 30}, {26, 28}, {35, 30}, {42, 30}}}, // 28
	{2051, [4]level{{14, 30}, {28, 28}, {38, 30}, {45, 30}}}, // 29
	{2185, [4]level{{15, 30}, {29, 28}, {40, 30}, {48, 30}}}, // 30
	{2323, [4]level{{16, 30}, {31, 28}, {43, 30}, {51, 30}}}, // 31
	{2465, [4]level{{17, 30}, {33, 28}, {45, 30}, {54, 30}}}, // 32
	{2611, [4]level{{18, 30}, {35, 28}, {48, 30}, {57, 30}}}, // 33
	{2761, [4]level{{19, 30}, {37, 28}, {51, 30}, {60, 30}}}, // 34
	{2876, [4]level{{19, 30}, {38, 28}, {53, 30}, {63, 30}}}, // 35
	{3034, [4]level{{20, 30}, {40, 28}, {56, 30}, {66, 30}}}, // 36
	{3196, [4]level{{21, 30}, {43, 28}, {59, 30}, {70, 30}}}, // 37
	{3362, [4]level{{22, 30}, {45, 28}, {62, 30}, {74, 30}}}, // 38
	{3532, [4]level{{24, 30}, {47, 28}, {65, 30}, {77, 30}}}, // 39
	{3706, [4]level{{25, 30}, {49, 28}, {68, 30}, {81, 30}}}, // 40
}
