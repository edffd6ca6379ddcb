// Package cmpress holds the vocabulary shared by the CMP encoder, its report
// tooling and the command-line front end: unit widths, header flags and error
// kinds.
package cmpress

import (
	"fmt"
	"math"
)

// UnitWidth is the size, in bits, of the units the encoder compares and emits.
// Only 8, 16 and 32 are understood by the decompressor.
type UnitWidth int

const (
	Width8  UnitWidth = 8
	Width16 UnitWidth = 16
	Width32 UnitWidth = 32
)

// ParseUnitWidth converts a bit count as given on the command line into a
// [UnitWidth], rejecting anything the format can't express.
func ParseUnitWidth(bits int) (UnitWidth, error) {
	width := UnitWidth(bits)
	if err := width.Validate(); err != nil {
		return 0, err
	}
	return width, nil
}

// Validate returns [ErrInvalidUnitWidth] if the width isn't one of 8, 16 or 32.
func (w UnitWidth) Validate() error {
	switch w {
	case Width8, Width16, Width32:
		return nil
	}
	return ErrInvalidUnitWidth.WithMessage(
		fmt.Sprintf("%d bits (must be 8, 16, or 32)", int(w)))
}

// Bytes gives the number of bytes in a single unit.
func (w UnitWidth) Bytes() int {
	return int(w) / 8
}

// MaxSigned is the largest value a signed integer of this width can hold.
func (w UnitWidth) MaxSigned() int64 {
	switch w {
	case Width8:
		return math.MaxInt8
	case Width16:
		return math.MaxInt16
	default:
		return math.MaxInt32
	}
}

// MinSigned is the smallest value a signed integer of this width can hold.
func (w UnitWidth) MinSigned() int64 {
	switch w {
	case Width8:
		return math.MinInt8
	case Width16:
		return math.MinInt16
	default:
		return math.MinInt32
	}
}

// HeaderTypeFlag returns the bits identifying this width in word 0 of the
// header.
func (w UnitWidth) HeaderTypeFlag() uint16 {
	switch w {
	case Width16:
		return HeaderType16Bit
	case Width32:
		return HeaderType32Bit
	default:
		return HeaderType8Bit
	}
}

func (w UnitWidth) String() string {
	return fmt.Sprintf("%d-bit", int(w))
}
