// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// A Code is a finished QR code: a square pixel grid with its version,
// error correction level and mask.  A Code is immutable.
type Code struct {
	bitmap  []byte // 1 is black, 0 is white
	size    int    // number of pixels on a side
	stride  int    // number of bytes per row
	version Version
	level   Level
	mask    Mask
}

// Black returns true if the pixel at (x,y) is black.
// Pixels outside the code are white.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.size && 0 <= y && y < c.size &&
		c.bitmap[y*c.stride+x/8]&(1<<uint(7&^x)) != 0
}

// Size returns the number of pixels on a side.
func (c *Code) Size() int { return c.size }

// Version returns the code's version.
func (c *Code) Version() Version { return c.version }

// Level returns the error correction level used, which may be higher
// than requested.
func (c *Code) Level() Level { return c.level }

// Mask returns the mask applied to the code.
func (c *Code) Mask() Mask { return c.mask }

// Penalty returns the mask evaluation penalty of the code.  Lower is
// better; the mask chosen automatically has the lowest penalty of all
// eight.
func (c *Code) Penalty() int {
	mod := make([]bool, c.size*c.size)
	for y := 0; y < c.size; y++ {
		for x := 0; x < c.size; x++ {
			mod[y*c.size+x] = c.Black(x, y)
		}
	}
	return penalty(mod, c.size)
}

// EncodeCodewords returns a QR code of version v and level l holding
// data, which must be exactly v.DataCodewords(l) bytes of segments,
// terminator and padding.  Error correction bytes are added.  If mask
// is AutoMask, the mask with the lowest penalty is used.
func EncodeCodewords(v Version, l Level, data []byte, mask Mask) (*Code, error) {
	if mask != AutoMask && (mask < 0 || mask > 7) {
		return nil, fmt.Errorf("%w: mask %d", ErrOutOfRange, mask)
	}
	raw, err := AddCheckBytes(v, l, data)
	if err != nil {
		return nil, err
	}

	// Function patterns, then data and check bits.
	g := getPlan(v).clone()
	g.drawFormat(formatBits(l, 0))
	g.drawCodewords(raw)

	if mask == AutoMask {
		mask = g.chooseMask(l)
	}
	g.applyMask(mask)
	g.drawFormat(formatBits(l, mask))
	return g.code(v, l, mask), nil
}

// code packs g into a Code.  The function map is not kept.
func (g *grid) code(v Version, l Level, m Mask) *Code {
	siz := g.size
	stride := (siz + 7) >> 3
	c := &Code{
		bitmap:  make([]byte, siz*stride),
		size:    siz,
		stride:  stride,
		version: v,
		level:   l,
		mask:    m,
	}
	for y := 0; y < siz; y++ {
		row := c.bitmap[y*stride:]
		for x, dark := range g.mod[y*siz : (y+1)*siz] {
			if dark {
				row[x>>3] |= 0x80 >> uint(x&7)
			}
		}
	}
	return c
}
