// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowMul multiplies as polynomials and reduces modulo Poly.
func slowMul(x, y byte) byte {
	var p uint16
	for i := 0; i < 8; i++ {
		if y>>i&1 != 0 {
			p ^= uint16(x) << i
		}
	}
	for i := 15; i >= 8; i-- {
		if p>>i&1 != 0 {
			p ^= Poly << (i - 8)
		}
	}
	return byte(p)
}

func TestMul(t *testing.T) {
	t.Parallel()
	for x := 0; x < 256; x++ {
		for y := 0; y < 256; y++ {
			require.Equal(t, slowMul(byte(x), byte(y)), Mul(byte(x), byte(y)),
				"%#02x*%#02x", x, y)
		}
	}
	assert.Equal(t, byte(0x1d), Mul(0x80, 2))
}

func TestMulInverse(t *testing.T) {
	t.Parallel()
	for x := 1; x < 256; x++ {
		n := 0
		for y := 1; y < 256; y++ {
			if Mul(byte(x), byte(y)) == 1 {
				n++
			}
		}
		assert.Equal(t, 1, n, "inverses of %#02x", x)
	}
}

func TestDivisor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []byte{1}, Divisor(1))
	assert.Equal(t, []byte{3, 2}, Divisor(2))
	assert.Panics(t, func() { Divisor(0) })
	assert.Panics(t, func() { Divisor(256) })

	// Every power of 2 below the degree is a root.
	for _, n := range []int{7, 10, 17, 30} {
		g := append([]byte{1}, Divisor(n)...)
		r := byte(1)
		for i := 0; i < n; i++ {
			assert.Zero(t, eval(g, r), "degree %d root %d", n, i)
			r = Mul(r, 2)
		}
	}
}

// eval evaluates p, highest power first, at x.
func eval(p []byte, x byte) byte {
	var v byte
	for _, c := range p {
		v = Mul(v, x) ^ c
	}
	return v
}

func TestRemainder(t *testing.T) {
	t.Parallel()
	// HELLO WORLD, version 1-M.
	data := []byte{32, 91, 11, 120, 209, 114, 220, 77,
		67, 64, 236, 17, 236, 17, 236, 17}
	want := []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}
	assert.Equal(t, want, Remainder(data, Divisor(10)))

	check := make([]byte, 10)
	NewRSEncoder(10).ECC(data, check)
	assert.Equal(t, want, check)
}

func TestSyndromes(t *testing.T) {
	t.Parallel()
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(i*37 + 11)
	}
	for _, n := range []int{7, 18, 22, 28, 30} {
		rs := NewRSEncoder(n)
		require.Equal(t, n, rs.Len())
		check := make([]byte, n)
		rs.ECC(data, check)
		cw := append(append([]byte{}, data...), check...)
		r := byte(1)
		for i := 0; i < n; i++ {
			assert.Zero(t, eval(cw, r), "ecc %d syndrome %d", n, i)
			r = Mul(r, 2)
		}
	}
}

func TestRSEncoderShared(t *testing.T) {
	t.Parallel()
	assert.Same(t, NewRSEncoder(13), NewRSEncoder(13))
	assert.Panics(t, func() { NewRSEncoder(0) })
	assert.Panics(t, func() { NewRSEncoder(7).ECC(nil, make([]byte, 6)) })
}
