// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
//
// A module at column x, row y is inverted if its mask function is true.
var maskFunc = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// applyMask inverts the data modules selected by mask m.
// Applying the same mask twice restores the original.
func (g *grid) applyMask(m Mask) {
	f := maskFunc[m]
	for y, k := 0, 0; y < g.size; y++ {
		for x := 0; x < g.size; x, k = x+1, k+1 {
			if !g.fn[k] && f(x, y) {
				g.mod[k] = !g.mod[k]
			}
		}
	}
}

// chooseMask returns the mask with the lowest penalty for g at level
// l, preferring lower numbers on ties.  Each mask is scored on its own
// copy of g; g is not modified.
func (g *grid) chooseMask(l Level) Mask {
	var pen [8]int
	var wg sync.WaitGroup
	for m := range pen {
		wg.Add(1)
		go func(m Mask) {
			defer wg.Done()
			c := g.clone()
			c.applyMask(m)
			c.drawFormat(formatBits(l, m))
			pen[m] = penalty(c.mod, c.size)
		}(Mask(m))
	}
	wg.Wait()
	best := Mask(0)
	for m := Mask(1); m < 8; m++ {
		if pen[m] < pen[best] {
			best = m
		}
	}
	return best
}

// Penalty weights.
const (
	penaltyRun    = 3  // run of 5 same colour modules, +1 per extra
	penaltyBox    = 3  // 2x2 box of same colour modules
	penaltyFinder = 40 // finder-like pattern
	penaltyBal    = 10 // per 5% of imbalance beyond the first
)

// penalty returns the mask evaluation penalty of a square grid of
// modules: the sum of penalties for runs and boxes of same-colour
// modules, finder-like patterns and colour balance.
func penalty(mod []bool, siz int) int {
	p := 0

	// Rows and columns: runs and finder-like patterns.
	for i := 0; i < siz; i++ {
		p += linePenalty(mod, i*siz, 1, siz)
		p += linePenalty(mod, i, siz, siz)
	}

	// 2x2 boxes, possibly overlapping.
	for y := 0; y < siz-1; y++ {
		for x, k := 0, y*siz; x < siz-1; x, k = x+1, k+1 {
			c := mod[k]
			if c == mod[k+1] && c == mod[k+siz] && c == mod[k+siz+1] {
				p += penaltyBox
			}
		}
	}

	// Balance of dark and light modules: 10 points for every full 5%
	// away from 50%, rounding a partial step up, less one step.
	dark := 0
	for _, c := range mod {
		if c {
			dark++
		}
	}
	total := siz * siz
	k := (abs(dark*20-total*10)+total-1)/total - 1
	p += k * penaltyBal
	return p
}

// linePenalty returns the penalty for runs and finder-like patterns in
// the line of siz modules starting at mod[start], step apart.
func linePenalty(mod []bool, start, step, siz int) int {
	p := 0
	colour := false
	run := 0
	h := runHistory{size: siz}
	for j, k := 0, start; j < siz; j, k = j+1, k+step {
		if mod[k] == colour {
			run++
			if run == 5 {
				p += penaltyRun
			} else if run > 5 {
				p++
			}
		} else {
			h.add(run)
			if !colour {
				p += h.count() * penaltyFinder
			}
			colour = mod[k]
			run = 1
		}
	}
	return p + h.terminate(colour, run)*penaltyFinder
}

// runHistory holds the lengths of the last 7 runs of same colour
// modules in a row or column, most recent first, for finding
// 1:1:3:1:1 patterns.  The first run is light and padded with the
// light area beyond the edge.
type runHistory struct {
	size int
	run  [7]int
}

func (h *runHistory) add(n int) {
	if h.run[0] == 0 {
		n += h.size // light area before the edge
	}
	copy(h.run[1:], h.run[:len(h.run)-1])
	h.run[0] = n
}

// count returns the number of finder-like patterns ending at the
// latest light run: dark:light:dark:light:dark in 1:1:3:1:1 with a
// light run of at least 4 units on one side and 1 on the other.
func (h *runHistory) count() int {
	r := &h.run
	n := r[1]
	if n == 0 || r[2] != n || r[3] != n*3 || r[4] != n || r[5] != n {
		return 0
	}
	c := 0
	if r[0] >= n*4 && r[6] >= n {
		c++
	}
	if r[6] >= n*4 && r[0] >= n {
		c++
	}
	return c
}

// terminate closes the line, treating the area beyond the edge as
// light, and returns the patterns found.
func (h *runHistory) terminate(colour bool, run int) int {
	if colour {
		h.add(run)
		run = 0
	}
	h.add(run + h.size)
	return h.count()
}
