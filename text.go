// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import "strings"

// Half block characters indexed by top and bottom pixel, 1 is dark.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// String returns the code as UTF-8 text, two QR pixel rows per line,
// with a quiet zone of Border QR pixels.  Scale and Palette are
// ignored.  A block character is a dark pixel; on terminals drawing
// light text on a dark background, set Reverse.
func (c *Code) String() string {
	if c == nil || c.Code == nil || c.Border < 0 {
		return ""
	}
	siz, bord := c.Size(), c.Border
	var b strings.Builder
	b.Grow((siz + bord*2 + 1) * ((siz + bord*2 + 1) / 2) * 3)
	for y := -bord; y < siz+bord; y += 2 {
		for x := -bord; x < siz+bord; x++ {
			i := 0
			if c.dark(x, y) {
				i |= 2
			}
			if c.dark(x, y+1) {
				i |= 1
			}
			b.WriteString(halfBlocks[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Dump returns the modules of the code as rows of 0 (light) and 1
// (dark) separated by spaces, one row per line, without quiet zone or
// final newline.  Rendering parameters are ignored.
func (c *Code) Dump() string {
	if c == nil || c.Code == nil {
		return ""
	}
	siz := c.Size()
	var b strings.Builder
	b.Grow(siz * siz * 2)
	for y := 0; y < siz; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < siz; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			if c.Black(x, y) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	return b.String()
}
