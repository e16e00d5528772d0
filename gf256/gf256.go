// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// with the QR code polynomial x⁸+x⁴+x³+x²+1 and Reed-Solomon remainder
// coding on top of it.
package gf256 // import "github.com/unixdj/qrsym/gf256"

import "sync"

// Poly is the reducing polynomial of the field, 0x11d.
const Poly = 0x11d

// Mul returns the product of x and y in GF(256).
func Mul(x, y byte) byte {
	var z byte
	for i := 7; i >= 0; i-- {
		z = z<<1 ^ z>>7*(Poly&0xff)
		z ^= y >> uint(i) & 1 * x
	}
	return z
}

// Divisor returns the Reed-Solomon generator polynomial of the given
// degree, (x-1)(x-2)(x-4)...(x-2^(degree-1)), with coefficients from
// highest to lowest power.  The leading coefficient, always 1, is
// omitted.  Divisor panics unless 1 <= degree <= 255.
func Divisor(degree int) []byte {
	if degree < 1 || degree > 255 {
		panic("gf256: degree out of range")
	}
	// Start with the monomial x⁰.
	d := make([]byte, degree)
	d[degree-1] = 1

	// Multiply by (x - r) for each root r.  Subtraction is xor.
	root := byte(1)
	for i := 0; i < degree; i++ {
		for j := range d {
			d[j] = Mul(d[j], root)
			if j+1 < len(d) {
				d[j] ^= d[j+1]
			}
		}
		root = Mul(root, 2)
	}
	return d
}

// Remainder returns the remainder of data·x^len(divisor) divided by
// the generator polynomial with the given non-leading coefficients.
// The result has len(divisor) bytes.
func Remainder(data, divisor []byte) []byte {
	r := make([]byte, len(divisor))
	remainder(r, data, divisor)
	return r
}

// remainder writes the remainder to r, which must have len(divisor)
// bytes.
func remainder(r, data, divisor []byte) {
	for i := range r {
		r[i] = 0
	}
	for _, b := range data {
		f := b ^ r[0]
		copy(r, r[1:])
		r[len(r)-1] = 0
		if f == 0 {
			continue
		}
		for i, d := range divisor {
			r[i] ^= Mul(d, f)
		}
	}
}

// An RSEncoder computes Reed-Solomon check bytes of a fixed length.
type RSEncoder struct {
	div []byte
}

var encoders [256]struct {
	once sync.Once
	rs   *RSEncoder
}

// NewRSEncoder returns an encoder producing c check bytes.  Encoders
// are shared and safe for concurrent use.  NewRSEncoder panics unless
// 1 <= c <= 255.
func NewRSEncoder(c int) *RSEncoder {
	if c < 1 || c > 255 {
		panic("gf256: invalid check byte count")
	}
	e := &encoders[c]
	e.once.Do(func() { e.rs = &RSEncoder{div: Divisor(c)} })
	return e.rs
}

// Len returns the number of check bytes.
func (rs *RSEncoder) Len() int { return len(rs.div) }

// ECC writes the check bytes for data to check, which must be
// rs.Len() bytes long.
func (rs *RSEncoder) ECC(data, check []byte) {
	if len(check) != len(rs.div) {
		panic("gf256: invalid check byte length")
	}
	remainder(check, data, rs.div)
}
