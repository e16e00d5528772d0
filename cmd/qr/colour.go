// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"strconv"
	"strings"
)

var errColour = errors.New("invalid colour")

// rgb maps colour names to values.
var rgb = map[string]rgba{
	"black":       {0x00, 0x00, 0x00, 0xff},
	"white":       {0xff, 0xff, 0xff, 0xff},
	"red":         {0xff, 0x00, 0x00, 0xff},
	"green":       {0x00, 0xff, 0x00, 0xff},
	"blue":        {0x00, 0x00, 0xff, 0xff},
	"yellow":      {0xff, 0xff, 0x00, 0xff},
	"cyan":        {0x00, 0xff, 0xff, 0xff},
	"magenta":     {0xff, 0x00, 0xff, 0xff},
	"gray":        {0xbe, 0xbe, 0xbe, 0xff},
	"navy":        {0x00, 0x00, 0x80, 0xff},
	"maroon":      {0xb0, 0x30, 0x60, 0xff},
	"orange":      {0xff, 0xa5, 0x00, 0xff},
	"purple":      {0xa0, 0x20, 0xf0, 0xff},
	"brown":       {0xa5, 0x2a, 0x2a, 0xff},
	"transparent": {0x00, 0x00, 0x00, 0x00},
}

// parseColour parses a colour name, or 3, 4, 6 or 8 hex digits
// with an optional leading '#'.
func parseColour(s string) (rgba, error) {
	if c, ok := rgb[strings.ToLower(s)]; ok {
		return c, nil
	}
	s = strings.TrimPrefix(s, "#")
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgba{}, errColour
	}
	switch len(s) {
	case 3:
		n = n<<4 | 0xf
		fallthrough
	case 4:
		// replicate each digit
		n = n&0xf000<<12 | n&0x0f00<<8 | n&0x00f0<<4 | n&0xf
		n |= n << 4
	case 6:
		n = n<<8 | 0xff
	case 8:
	default:
		return rgba{}, errColour
	}
	return rgba{uint8(n >> 24), uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
}
