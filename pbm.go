// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"fmt"
	"io"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.  EncodePBM disregards c.Palette, as other PNM
// formats are not supported.
func (c *Code) EncodePBM(w io.Writer) error {
	if w == nil {
		return ErrArgs
	}
	if err := c.check(); err != nil {
		return err
	}
	b := bufio.NewWriter(w)
	siz, scale, bord := c.Size(), c.Scale, c.Border
	side := scale * (siz + bord*2)
	if _, err := fmt.Fprintf(b, "P4\n%d %d\n", side, side); err != nil {
		return err
	}
	row := make([]byte, (side+7)/8)
	for y := -bord; y < siz+bord; y++ {
		c.pbmRow(row, y)
		for i := 0; i < scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}

// pbmRow fills row with QR pixel row y, quiet zone included, at
// c.Scale bits per QR pixel, most significant bit first.  1 is dark.
func (c *Code) pbmRow(row []byte, y int) {
	clear(row)
	scale, bord := c.Scale, c.Border
	for x := -bord; x < c.Size()+bord; x++ {
		if !c.dark(x, y) {
			continue
		}
		for p := (x + bord) * scale; p < (x+bord+1)*scale; p++ {
			row[p>>3] |= 0x80 >> (p & 7)
		}
	}
}
