// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/unixdj/qrsym/coding"
)

var (
	ErrArgs       = errors.New("qr: invalid arguments")
	ErrLargeImage = errors.New("qr: image too large")
)

// Rendering defaults.
const (
	DefaultScale  = 8
	DefaultBorder = 4
)

// maxPixels limits the side of rendered images.
const maxPixels = 32767 * 8

// A Code is a QR code with rendering parameters.
// It implements image.Image and PNG, PBM, SVG and text encoding.
//
// The embedded coding.Code provides the read surface: Black, Size,
// Version, Level and Mask.
type Code struct {
	*coding.Code
	Scale   int             // number of image pixels per QR pixel
	Border  int             // quiet zone width in QR pixels
	Reverse bool            // reverse colours
	Palette *[2]color.Color // light and dark colours, default white and black
}

func newCode(cc *coding.Code) *Code {
	return &Code{Code: cc, Scale: DefaultScale, Border: DefaultBorder}
}

// check returns ErrArgs if c cannot be rendered and ErrLargeImage if
// the image side would exceed maxPixels.
func (c *Code) check() error {
	switch {
	case c == nil || c.Code == nil || c.Scale <= 0 || c.Border < 0:
		return ErrArgs
	case c.Border > maxPixels/2 || c.Size()+c.Border*2 > maxPixels/c.Scale:
		return ErrLargeImage
	}
	return nil
}

// dark reports whether the pixel at (x,y) is drawn in the dark colour,
// taking c.Reverse into account.  The quiet zone is light unless
// reversed.
func (c *Code) dark(x, y int) bool {
	return c.Black(x, y) != c.Reverse
}

// palette returns the light and dark colours.
func (c *Code) palette() [2]color.Color {
	if c.Palette != nil {
		return *c.Palette
	}
	return [2]color.Color{whiteColor, blackColor}
}

// Image returns an Image displaying the code, with Scale image pixels
// per QR pixel and a quiet zone of Border QR pixels.  Scale below 1
// is taken as 1 and Border below 0 as 0.
func (c *Code) Image() image.Image {
	return &codeImage{c, c.palette(), max(c.Scale, 1), max(c.Border, 0)}
}

// EncodePNG writes a PNG image displaying the code to w.
func (c *Code) EncodePNG(w io.Writer) error {
	if w == nil {
		return ErrArgs
	}
	if err := c.check(); err != nil {
		return err
	}
	return png.Encode(w, c.Image())
}

// codeImage implements image.Image
type codeImage struct {
	*Code
	pal           [2]color.Color
	scale, border int
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size() + c.border*2) * c.scale
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	dark := c.Reverse
	if o := c.border * c.scale; x >= o && y >= o {
		dark = c.dark((x-o)/c.scale, (y-o)/c.scale)
	}
	if dark {
		return c.pal[1]
	}
	return c.pal[0]
}

func (c *codeImage) ColorModel() color.Model {
	if c.Code.Palette == nil {
		return color.GrayModel
	}
	return color.Palette{c.pal[0], c.pal[1]}
}
