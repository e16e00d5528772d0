// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsAppend(t *testing.T) {
	t.Parallel()

	var b Bits
	require.NoError(t, b.Append(5, 3))
	require.NoError(t, b.Append(1, 1))
	require.NoError(t, b.Append(0, 0))
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, "1011", b.String())

	require.NoError(t, b.Append(0x7fffffff, 31))
	assert.Equal(t, 35, b.Len())
	assert.Equal(t, "1011"+"1111111111111111111111111111111", b.String())
	assert.True(t, b.Bit(0))
	assert.False(t, b.Bit(1))
}

func TestBitsAppendOutOfRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    uint32
		nbit int
	}{
		{8, 3},
		{1, 0},
		{0, 32},
		{0, -1},
		{1 << 31, 31},
	}
	for _, tt := range tests {
		var b Bits
		err := b.Append(tt.v, tt.nbit)
		assert.ErrorIs(t, err, ErrOutOfRange, "Append(%d, %d)", tt.v, tt.nbit)
		assert.Zero(t, b.Len(), "Append(%d, %d) grew the buffer", tt.v, tt.nbit)
	}
}

func TestBitsAppendBits(t *testing.T) {
	t.Parallel()

	var o Bits
	require.NoError(t, o.Append(0xff, 8))
	require.NoError(t, o.Append(1, 2))

	var aligned Bits
	aligned.AppendBits(&o)
	assert.Equal(t, "1111111101", aligned.String())

	var b Bits
	require.NoError(t, b.Append(5, 3))
	b.AppendBits(&o)
	assert.Equal(t, "101"+"1111111101", b.String())
	b.AppendBits(&o)
	assert.Equal(t, "101"+"1111111101"+"1111111101", b.String())
	assert.Equal(t, 23, b.Len())
}

func TestBitsBytes(t *testing.T) {
	t.Parallel()

	var b Bits
	require.NoError(t, b.Append(0xa, 4))
	assert.Panics(t, func() { b.Bytes() })
	require.NoError(t, b.Append(0x5c, 12))
	assert.Equal(t, []byte{0xa0, 0x5c}, b.Bytes())

	c := b.Clone()
	require.NoError(t, c.Append(1, 1))
	assert.Equal(t, 16, b.Len(), "Clone shares length")
	assert.Equal(t, []byte{0xa0, 0x5c}, b.Bytes())
}

func TestBitsBitOutOfRange(t *testing.T) {
	t.Parallel()

	var b Bits
	require.NoError(t, b.Append(1, 1))
	assert.Panics(t, func() { b.Bit(1) })
	assert.Panics(t, func() { b.Bit(-1) })
}
