// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.

Text or binary data is split into segments (see package coding), the
smallest version that fits the segments at the requested error
correction level is chosen, and the resulting code is returned as a
Code, which can be rendered as an image, PNG, PBM, SVG or text.
*/
package qr // import "github.com/unixdj/qrsym"

import (
	"errors"
	"fmt"

	"github.com/unixdj/qrsym/coding"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level = coding.Level

const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

// ErrDataTooLong is matched by every *DataTooLongError.
var ErrDataTooLong = errors.New("qr: data too long")

// A DataTooLongError reports that the segments do not fit in any
// version in the requested range.  Either a segment holds more
// characters than its count field can express, or the segments need
// Used bits while the largest version holds Capacity.
type DataTooLongError struct {
	SegmentTooLong bool
	Used, Capacity int
}

func (e *DataTooLongError) Error() string {
	if e.SegmentTooLong {
		return "qr: segment too long"
	}
	return fmt.Sprintf("qr: data too long: %d bits, capacity %d",
		e.Used, e.Capacity)
}

// Is reports whether target is ErrDataTooLong.
func (e *DataTooLongError) Is(target error) bool {
	return target == ErrDataTooLong
}

// Encode returns an encoding of text at the given error correction
// level.  The text is encoded as a single numeric, alphanumeric or
// byte segment, whichever is the most compact.  The level may be
// raised if the next level fits in the same version.
func Encode(text string, level Level) (*Code, error) {
	return EncodeSegments(coding.MakeSegments(text), level)
}

// EncodeBinary returns an encoding of data in byte mode.
func EncodeBinary(data []byte, level Level) (*Code, error) {
	return EncodeSegments([]coding.Segment{coding.MakeBytes(data)}, level)
}

// EncodeSegments returns an encoding of segs at any version, with the
// mask chosen automatically and the level raised where it fits.
func EncodeSegments(segs []coding.Segment, level Level) (*Code, error) {
	return EncodeSegmentsAdvanced(segs, level,
		coding.MinVersion, coding.MaxVersion, coding.AutoMask, true)
}

// EncodeSegmentsAdvanced returns an encoding of segs in the smallest
// version between minVersion and maxVersion that holds them at level.
// If boost is set, the level is raised as far as the data still fits
// in that version.  If mask is coding.AutoMask, the mask with the
// lowest penalty is used.
func EncodeSegmentsAdvanced(segs []coding.Segment, level Level,
	minVersion, maxVersion coding.Version, mask coding.Mask,
	boost bool) (*Code, error) {
	if _, err := coding.NewVersion(int(minVersion)); err != nil {
		return nil, err
	}
	if _, err := coding.NewVersion(int(maxVersion)); err != nil {
		return nil, err
	}
	if minVersion > maxVersion {
		return nil, fmt.Errorf("%w: versions %d > %d",
			coding.ErrInvalidArgument, minVersion, maxVersion)
	}
	if level < L || level > H {
		return nil, fmt.Errorf("%w: level %d", coding.ErrOutOfRange, level)
	}
	if mask != coding.AutoMask {
		if _, err := coding.NewMask(int(mask)); err != nil {
			return nil, err
		}
	}

	v, used, err := fit(segs, level, minVersion, maxVersion)
	if err != nil {
		return nil, err
	}
	if boost {
		for l := level + 1; l <= H; l++ {
			if used <= v.DataBits(l) {
				level = l
			}
		}
	}

	data, err := assemble(segs, v, level, used)
	if err != nil {
		return nil, err
	}
	cc, err := coding.EncodeCodewords(v, level, data, mask)
	if err != nil {
		return nil, err
	}
	return newCode(cc), nil
}

// fit returns the smallest version in [min, max] holding segs at level
// l and the number of bits they take.
func fit(segs []coding.Segment, l Level, min, max coding.Version) (coding.Version, int, error) {
	for v := min; ; v++ {
		used, ok := coding.TotalBits(segs, v)
		if ok && used <= v.DataBits(l) {
			return v, used, nil
		}
		if v >= max {
			if !ok {
				return 0, 0, &DataTooLongError{SegmentTooLong: true}
			}
			return 0, 0, &DataTooLongError{
				Used:     used,
				Capacity: v.DataBits(l),
			}
		}
	}
}

// assemble returns the data codewords for segs at version v and level
// l: segment headers and data, a terminator of up to 4 zero bits, zero
// bits to a byte boundary, then alternating 0xEC and 0x11 bytes.
func assemble(segs []coding.Segment, v coding.Version, l Level, used int) ([]byte, error) {
	capacity := v.DataBits(l)
	var b coding.Bits
	b.Grow(capacity)
	for _, s := range segs {
		d := s.Data()
		if err := b.Append(s.Mode().Indicator(), 4); err != nil {
			return nil, err
		}
		if err := b.Append(uint32(s.NumChars()), s.Mode().CountLength(v)); err != nil {
			return nil, err
		}
		b.AppendBits(&d)
	}
	if b.Len() != used {
		return nil, fmt.Errorf("%w: assembled %d bits, want %d",
			coding.ErrInvalidArgument, b.Len(), used)
	}

	if err := b.Append(0, min(4, capacity-b.Len())); err != nil {
		return nil, err
	}
	if err := b.Append(0, -b.Len()&7); err != nil {
		return nil, err
	}
	for pad := uint32(0xec); b.Len() < capacity; pad ^= 0xec ^ 0x11 {
		if err := b.Append(pad, 8); err != nil {
			return nil, err
		}
	}
	return b.Bytes(), nil
}
