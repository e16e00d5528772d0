// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"

	"github.com/unixdj/qrsym/gf256"
)

// AddCheckBytes splits data into error correction blocks for the given
// version and level, appends Reed-Solomon check bytes to each and
// returns the blocks interleaved, v.RawCodewords() bytes in all.
// data must hold exactly v.DataCodewords(l) bytes.
//
// Short blocks come first and hold one data byte less than long ones;
// all blocks have the same number of check bytes.  The result holds
// byte 0 of every block, then byte 1 and so on.
func AddCheckBytes(v Version, l Level, data []byte) ([]byte, error) {
	if !v.valid() {
		return nil, fmt.Errorf("%w: version %d", ErrOutOfRange, v)
	}
	if !l.valid() {
		return nil, fmt.Errorf("%w: level %d", ErrOutOfRange, l)
	}
	if n := v.DataCodewords(l); len(data) != n {
		return nil, fmt.Errorf("%w: %d data bytes for version %d-%s, want %d",
			ErrInvalidArgument, len(data), v, l, n)
	}
	return addCheckBytes(v, l, data), nil
}

func addCheckBytes(v Version, l Level, data []byte) []byte {
	nblock, check := v.Blocks(l)
	raw := v.RawCodewords()
	nshort := nblock - raw%nblock
	slen := raw / nblock // short block length with check bytes
	rs := gf256.NewRSEncoder(check)

	// Lay out every block in slen+1 bytes; short blocks have a filler
	// byte between data and check bytes.
	blocks := make([][]byte, nblock)
	buf := make([]byte, nblock*(slen+1))
	for i := range blocks {
		b := buf[:slen+1]
		buf = buf[slen+1:]
		n := slen - check
		if i >= nshort {
			n++
		}
		copy(b, data[:n])
		data = data[n:]
		rs.ECC(b[:n], b[slen+1-check:])
		blocks[i] = b
	}

	out := make([]byte, 0, raw)
	filler := slen - check
	for i := 0; i <= slen; i++ {
		for j, b := range blocks {
			if i != filler || j >= nshort {
				out = append(out, b[i])
			}
		}
	}
	return out
}
