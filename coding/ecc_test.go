// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrsym/gf256"
)

// "HELLO WORLD" at 1-M, padded.
var helloData = []byte{
	32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17,
}

func TestAddCheckBytesKnown(t *testing.T) {
	t.Parallel()

	raw, err := AddCheckBytes(1, M, helloData)
	require.NoError(t, err)
	want := append(append([]byte(nil), helloData...),
		196, 35, 39, 119, 235, 215, 231, 226, 93, 23)
	assert.Equal(t, want, raw)
}

func TestAddCheckBytesErrors(t *testing.T) {
	t.Parallel()

	_, err := AddCheckBytes(1, M, helloData[:15])
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = AddCheckBytes(0, M, helloData)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = AddCheckBytes(41, M, helloData)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = AddCheckBytes(1, Level(4), helloData)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

// deinterleave splits raw codewords back into data and check blocks.
func deinterleave(v Version, l Level, raw []byte) (data, check [][]byte) {
	nblock, nc := v.Blocks(l)
	nshort := nblock - len(raw)%nblock
	slen := len(raw) / nblock
	blocks := make([][]byte, nblock)
	for j := range blocks {
		blocks[j] = make([]byte, slen+1)
	}
	k := 0
	for i := 0; i <= slen; i++ {
		for j := range blocks {
			if i == slen-nc && j < nshort {
				continue
			}
			blocks[j][i] = raw[k]
			k++
		}
	}
	for j, b := range blocks {
		n := slen - nc
		if j >= nshort {
			n++
		}
		data = append(data, b[:n])
		check = append(check, b[slen+1-nc:])
	}
	return data, check
}

func TestAddCheckBytesRoundTrip(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(1))
	for v := MinVersion; v <= MaxVersion; v++ {
		for l := L; l <= H; l++ {
			in := make([]byte, v.DataCodewords(l))
			rnd.Read(in)
			raw, err := AddCheckBytes(v, l, in)
			require.NoError(t, err, "%d-%s", v, l)
			require.Len(t, raw, v.RawDataModules()/8, "%d-%s", v, l)

			data, check := deinterleave(v, l, raw)
			var got []byte
			for i, d := range data {
				got = append(got, d...)
				div := gf256.Divisor(len(check[i]))
				assert.Equal(t, gf256.Remainder(d, div), check[i],
					"%d-%s block %d", v, l, i)
			}
			assert.Equal(t, in, got, "%d-%s", v, l)
		}
	}
}

func TestBlocks(t *testing.T) {
	t.Parallel()

	// Every block holds at least as many data bytes as the check
	// bytes can correct.
	for v := MinVersion; v <= MaxVersion; v++ {
		for l := L; l <= H; l++ {
			nblock, check := v.Blocks(l)
			raw := v.RawCodewords()
			require.Positive(t, nblock)
			short := raw/nblock - check
			assert.GreaterOrEqual(t, short, check/2, "%d-%s", v, l)
			assert.Equal(t, v.DataCodewords(l), raw-nblock*check)
		}
	}
}
