// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// A grid is a square module matrix under construction.
type grid struct {
	size int
	mod  []bool // module colours, true is dark
	fn   []bool // function modules; read-only outside newPlan
}

// A plan holds the function patterns of a QR version.
// Plans are built once and shared.
type plan struct {
	grid
}

// Pre-allocated plans.  A plan is created the first time a version is
// used and never modified afterwards.
var plans [MaxVersion + 1]struct {
	once sync.Once
	p    *plan
}

// getPlan returns plans[v], creating it if necessary.
// v must be valid.
func getPlan(v Version) *plan {
	p := &plans[v]
	p.once.Do(func() { p.p = newPlan(v) })
	return p.p
}

// newPlan draws the function patterns of version v: timing patterns,
// finder patterns with separators, alignment patterns, the version
// information and the reserved format information area.
func newPlan(v Version) *plan {
	siz := v.Size()
	p := &plan{grid{
		size: siz,
		mod:  make([]bool, siz*siz),
		fn:   make([]bool, siz*siz),
	}}

	// Timing patterns, partly overwritten by finders.
	for i := 0; i < siz; i++ {
		p.set(6, i, i%2 == 0)
		p.set(i, 6, i%2 == 0)
	}

	// Finder patterns centred 3 modules from the corners.
	p.finder(3, 3)
	p.finder(siz-4, 3)
	p.finder(3, siz-4)

	// Alignment patterns, except where finders are.
	pos := v.AlignmentPositions()
	last := len(pos) - 1
	for i, x := range pos {
		for j, y := range pos {
			if i == 0 && (j == 0 || j == last) || i == last && j == 0 {
				continue
			}
			p.align(x, y)
		}
	}

	// Format area, drawn per mask.  One lonely dark module.
	forFormat(siz, func(x, y, _ int) { p.set(x, y, false) })
	p.set(8, siz-8, true)

	// Version information: 6x3 modules above the bottom left finder
	// and 3x6 left of the top right one.
	if v >= 7 {
		bits := versionBits(v)
		for i := 0; i < 18; i++ {
			dark := bits>>uint(i)&1 != 0
			a, b := siz-11+i%3, i/3
			p.set(a, b, dark)
			p.set(b, a, dark)
		}
	}
	return p
}

// set sets the colour of function module x, y.
func (g *grid) set(x, y int, dark bool) {
	g.mod[y*g.size+x] = dark
	g.fn[y*g.size+x] = true
}

// finder draws a finder pattern and its separator centred at x, y.
func (g *grid) finder(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if 0 <= xx && xx < g.size && 0 <= yy && yy < g.size {
				d := max(abs(dx), abs(dy))
				g.set(xx, yy, d != 2 && d != 4)
			}
		}
	}
}

// align draws an alignment pattern centred at x, y.
func (g *grid) align(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			g.set(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// versionBits returns the 18 bit version information: 6 bits of
// version and 12 BCH check bits with generator 0x1f25.
func versionBits(v Version) uint32 {
	rem := uint32(v)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ rem>>11*0x1f25
	}
	return uint32(v)<<12 | rem
}

// formatBits returns the 15 bit format information for level l and
// mask m: 5 data bits, 10 BCH check bits with generator 0x537, xored
// with 0x5412.
func formatBits(l Level, m Mask) uint32 {
	data := l.FormatBits()<<3 | uint32(m)
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ rem>>9*0x537
	}
	return (data<<10 | rem) ^ 0x5412
}

// forFormat calls f with the coordinates of each format module in a
// code of the given size and the index of the format bit stored there.
// Each bit is stored twice.
func forFormat(siz int, f func(x, y, bit int)) {
	// Around the top left finder.
	for i := 0; i < 6; i++ {
		f(8, i, i)
	}
	f(8, 7, 6)
	f(8, 8, 7)
	f(7, 8, 8)
	for i := 9; i < 15; i++ {
		f(14-i, 8, i)
	}
	// Below the top right finder and right of the bottom left one.
	for i := 0; i < 8; i++ {
		f(siz-1-i, 8, i)
	}
	for i := 8; i < 15; i++ {
		f(8, siz-15+i, i)
	}
}

// clone returns a copy of g sharing the function map.
func (g *grid) clone() *grid {
	return &grid{
		size: g.size,
		mod:  append([]bool(nil), g.mod...),
		fn:   g.fn,
	}
}

// drawFormat draws the format information bits.
func (g *grid) drawFormat(bits uint32) {
	forFormat(g.size, func(x, y, i int) {
		g.mod[y*g.size+x] = bits>>uint(i)&1 != 0
	})
}

// drawCodewords places the bits of data in the data modules of g in
// zigzag order: pairs of columns from the right edge, alternately
// upwards and downwards, skipping the vertical timing pattern.
// Modules left over are remainder bits and stay light.
func (g *grid) drawCodewords(data []byte) {
	siz := g.size
	i, n := 0, len(data)*8
	for right := siz - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		upward := (right+1)&2 == 0
		for vert := 0; vert < siz; vert++ {
			y := vert
			if upward {
				y = siz - 1 - vert
			}
			for x := right; x > right-2; x-- {
				if k := y*siz + x; !g.fn[k] && i < n {
					g.mod[k] = data[i>>3]>>(7&^i)&1 != 0
					i++
				}
			}
		}
	}
}
