// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bitString(s Segment) string {
	d := s.Data()
	return d.String()
}

func TestMakeNumeric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		bits string
	}{
		{"", ""},
		{"1", "0001"},
		{"12", "0001100"},
		{"123456", "0001111011" + "0111001000"},
		{"12345", "0001111011" + "0101101"},
		{"01234567", "0000001100" + "0101011001" + "1000011"},
	}
	for _, tt := range tests {
		s, err := MakeNumeric(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, Numeric, s.Mode())
		assert.Equal(t, len(tt.text), s.NumChars(), tt.text)
		assert.Equal(t, len(tt.bits), s.Len(), tt.text)
		assert.Equal(t, tt.bits, bitString(s), tt.text)
	}

	_, err := MakeNumeric("12a4")
	assert.ErrorIs(t, err, ErrInvalidCharacter)
	_, err = MakeNumeric("１２")
	assert.ErrorIs(t, err, ErrInvalidCharacter)
}

func TestMakeAlphanumeric(t *testing.T) {
	t.Parallel()

	s, err := MakeAlphanumeric("AB")
	require.NoError(t, err)
	assert.Equal(t, Alphanumeric, s.Mode())
	assert.Equal(t, 2, s.NumChars())
	assert.Equal(t, "00111001101", bitString(s)) // 10*45 + 11

	s, err = MakeAlphanumeric("ABC")
	require.NoError(t, err)
	assert.Equal(t, "00111001101"+"001100", bitString(s))

	s, err = MakeAlphanumeric("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:")
	require.NoError(t, err)
	assert.Equal(t, 45, s.NumChars())
	assert.Equal(t, 22*11+6, s.Len())
	// Last character ':' is 44.
	assert.True(t, strings.HasSuffix(bitString(s), "101100"), bitString(s))

	for _, text := range []string{"abc", "A,B", "A\x00", "A\xff", "Ä"} {
		_, err := MakeAlphanumeric(text)
		assert.ErrorIs(t, err, ErrInvalidCharacter, "%q", text)
	}
}

func TestIsAlphanumeric(t *testing.T) {
	t.Parallel()

	set := "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
	for c := 0; c < 256; c++ {
		want := strings.IndexByte(set, byte(c)) >= 0
		assert.Equal(t, want, IsAlphanumeric(string([]byte{byte(c)})), "%#x", c)
		digit := '0' <= c && c <= '9'
		assert.Equal(t, digit, IsNumeric(string([]byte{byte(c)})), "%#x", c)
	}
}

func TestMakeBytes(t *testing.T) {
	t.Parallel()

	in := []byte{0x00, 0xff, 0x41}
	s := MakeBytes(in)
	in[0] = 1
	assert.Equal(t, Byte, s.Mode())
	assert.Equal(t, 3, s.NumChars())
	assert.Equal(t, "00000000"+"11111111"+"01000001", bitString(s))

	s, err := MakeLatin1("café")
	require.NoError(t, err)
	d := s.Data()
	assert.Equal(t, []byte("caf\xe9"), d.Bytes())
	assert.Equal(t, 4, s.NumChars())

	_, err = MakeLatin1("5 €")
	assert.ErrorIs(t, err, ErrInvalidCharacter)
}

func TestMakeECI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value  int
		nbit   int
		prefix string
	}{
		{0, 8, "0"},
		{Latin1ECI, 8, "00000011"},
		{127, 8, "0"},
		{128, 16, "10"},
		{16383, 16, "10"},
		{16384, 24, "110"},
		{999999, 24, "110"},
	}
	for _, tt := range tests {
		s, err := MakeECI(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, ECI, s.Mode())
		assert.Zero(t, s.NumChars())
		assert.Equal(t, tt.nbit, s.Len(), tt.value)
		assert.True(t, strings.HasPrefix(bitString(s), tt.prefix), tt.value)
	}

	s, err := MakeECI(16384)
	require.NoError(t, err)
	assert.Equal(t, "110"+"000000100000000000000", bitString(s))

	for _, v := range []int{-1, 1000000, 1 << 30} {
		_, err := MakeECI(v)
		assert.ErrorIs(t, err, ErrOutOfRange, v)
	}
}

func TestNewSegment(t *testing.T) {
	t.Parallel()

	var b Bits
	require.NoError(t, b.Append(0x1234, 16))
	s, err := NewSegment(Byte, 2, &b)
	require.NoError(t, err)
	require.NoError(t, b.Append(1, 1))
	assert.Equal(t, 16, s.Len(), "segment must not share the caller's buffer")

	_, err = NewSegment(Mode(9), 0, &b)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewSegment(Kanji, -1, &b)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMakeSegments(t *testing.T) {
	t.Parallel()

	assert.Empty(t, MakeSegments(""))

	tests := []struct {
		text string
		mode Mode
	}{
		{"0123", Numeric},
		{"HELLO WORLD", Alphanumeric},
		{"Hello, World!", Byte},
		{"日本", Byte},
	}
	for _, tt := range tests {
		segs := MakeSegments(tt.text)
		require.Len(t, segs, 1, tt.text)
		assert.Equal(t, tt.mode, segs[0].Mode(), tt.text)
	}
	assert.Equal(t, 6, MakeSegments("日本")[0].NumChars())
}

func TestCountLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode Mode
		v    Version
		want int
	}{
		{Numeric, 1, 10}, {Numeric, 9, 10}, {Numeric, 10, 12}, {Numeric, 27, 14},
		{Alphanumeric, 9, 9}, {Alphanumeric, 26, 11}, {Alphanumeric, 40, 13},
		{Byte, 9, 8}, {Byte, 10, 16}, {Byte, 40, 16},
		{Kanji, 1, 8}, {Kanji, 26, 10}, {Kanji, 27, 12},
		{ECI, 1, 0}, {ECI, 40, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.CountLength(tt.v), "%v at %d", tt.mode, tt.v)
	}

	for m, ind := range []uint32{1, 2, 4, 8, 7} {
		assert.Equal(t, ind, Mode(m).Indicator(), Mode(m).String())
	}
}

func TestTotalBits(t *testing.T) {
	t.Parallel()

	num, err := MakeNumeric("123456")
	require.NoError(t, err)
	eci, err := MakeECI(UTF8ECI)
	require.NoError(t, err)

	n, ok := TotalBits([]Segment{num}, 1)
	assert.True(t, ok)
	assert.Equal(t, 4+10+20, n)

	n, ok = TotalBits([]Segment{eci, num}, 10)
	assert.True(t, ok)
	assert.Equal(t, 4+8+4+12+20, n)

	n, ok = TotalBits(nil, 1)
	assert.True(t, ok)
	assert.Zero(t, n)

	long, err := MakeNumeric(strings.Repeat("7", 1024))
	require.NoError(t, err)
	_, ok = TotalBits([]Segment{long}, 9)
	assert.False(t, ok, "1024 digits in a 10 bit count field")
	_, ok = TotalBits([]Segment{long}, 10)
	assert.True(t, ok)
}
