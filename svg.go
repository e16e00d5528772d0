// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"fmt"
	"image/color"
	"io"
	"strings"
)

// SVG returns an SVG image displaying the code: a background rectangle
// and a single path of dark squares, Scale units per QR pixel, with a
// quiet zone of Border QR pixels.  SVG returns "" if c cannot be
// rendered; EncodeSVG reports why.
func (c *Code) SVG() string {
	if c.check() != nil {
		return ""
	}
	pal := c.palette()
	if c.Reverse {
		pal[0], pal[1] = pal[1], pal[0]
	}
	siz, scale, bord := c.Size(), c.Scale, c.Border
	full := (siz + bord*2) * scale

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="0 0 %d %d" stroke="none">
<rect width="%d" height="%d" fill="%s"/>
<path d="`, full, full, full, full, svgColor(pal[0]))
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			if c.Black(x, y) {
				fmt.Fprintf(&b, "M%d,%dh%dv%dh-%dz",
					(x+bord)*scale, (y+bord)*scale, scale, scale, scale)
			}
		}
	}
	fmt.Fprintf(&b, `" fill="%s"/>
</svg>
`, svgColor(pal[1]))
	return b.String()
}

// EncodeSVG writes an SVG image displaying the code to w.
func (c *Code) EncodeSVG(w io.Writer) error {
	if w == nil {
		return ErrArgs
	}
	if err := c.check(); err != nil {
		return err
	}
	_, err := io.WriteString(w, c.SVG())
	return err
}

// svgColor returns col as an SVG colour: #RRGGBB, with an alpha byte
// if not opaque.
func svgColor(col color.Color) string {
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
