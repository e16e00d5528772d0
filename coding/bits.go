// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// Bits is an appendable sequence of bits, packed into bytes most
// significant bit first.  The zero value is an empty sequence.
type Bits struct {
	b    []byte
	nbit int
}

// Len returns the number of bits in b.
func (b *Bits) Len() int { return b.nbit }

// Bit reports whether bit i of b is set.  Bit panics if i is out of
// range.
func (b *Bits) Bit(i int) bool {
	if i < 0 || i >= b.nbit {
		panic("qr: bit index out of range")
	}
	return b.b[i>>3]>>(7&^i)&1 != 0
}

// Grow grows b's capacity to fit another n bits.
func (b *Bits) Grow(n int) {
	need := (b.nbit + n + 7) >> 3
	if need > cap(b.b) {
		nb := make([]byte, len(b.b), need)
		copy(nb, b.b)
		b.b = nb
	}
}

// Append appends the nbit low order bits of v to b, most significant
// bit first.  nbit must be between 0 and 31 and v must fit in nbit
// bits.
func (b *Bits) Append(v uint32, nbit int) error {
	if nbit < 0 || nbit > 31 || v>>uint(nbit) != 0 {
		return fmt.Errorf("%w: %d in %d bits", ErrOutOfRange, v, nbit)
	}
	b.write(v, nbit)
	return nil
}

// write appends nbit bits of v without validation.  Bits of v above
// nbit must be clear; nbit may be up to 32.
func (b *Bits) write(v uint32, nbit int) {
	if nbit == 0 {
		return
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// AppendBits appends the bits of o to b.
func (b *Bits) AppendBits(o *Bits) {
	b.Grow(o.nbit)
	if b.nbit&7 == 0 {
		b.b = append(b.b, o.b...)
		b.nbit += o.nbit
		return
	}
	full := o.nbit >> 3
	for _, v := range o.b[:full] {
		b.write(uint32(v), 8)
	}
	if rem := o.nbit & 7; rem != 0 {
		b.write(uint32(o.b[full]>>(8-rem)), rem)
	}
}

// Bytes returns the bytes of b.  The slice is shared with b.
// Bytes panics unless b holds a whole number of bytes.
func (b *Bits) Bytes() []byte {
	if b.nbit&7 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Clone returns a copy of b not sharing its storage.
func (b *Bits) Clone() Bits {
	return Bits{b: append([]byte(nil), b.b...), nbit: b.nbit}
}

// String returns the bits of b as a string of 0 and 1.
func (b *Bits) String() string {
	s := make([]byte, b.nbit)
	for i := range s {
		s[i] = '0'
		if b.Bit(i) {
			s[i] = '1'
		}
	}
	return string(s)
}
