package compression

import (
	"encoding/binary"

	"github.com/cmptools/cmpress"
)

// unitLayout describes how units of a particular width are read from the
// input and how count fields of that width are written.
type unitLayout struct {
	width cmpress.UnitWidth
	// size is the number of bytes in a unit.
	size int
	// maxRunUnits is the longest run a single segment can hold, MAX_SIGNED + 2.
	maxRunUnits int64
	// maxLiteralUnits is the longest literal a single segment can hold,
	// -MIN_SIGNED.
	maxLiteralUnits int64
}

func newUnitLayout(width cmpress.UnitWidth) (unitLayout, error) {
	if err := width.Validate(); err != nil {
		return unitLayout{}, err
	}
	return unitLayout{
		width:           width,
		size:            width.Bytes(),
		maxRunUnits:     width.MaxSigned() + 2,
		maxLiteralUnits: -width.MinSigned(),
	}, nil
}

// unitCount gives the number of units needed to hold `numBytes` bytes. A
// partial unit at the end counts as a full one.
func (l unitLayout) unitCount(numBytes int) int {
	return (numBytes + l.size - 1) / l.size
}

// padded returns `data` extended with null bytes to a whole number of units.
// If no padding is needed the original slice is returned.
func (l unitLayout) padded(data []byte) []byte {
	remainder := len(data) % l.size
	if remainder == 0 {
		return data
	}
	buf := make([]byte, len(data)+l.size-remainder)
	copy(buf, data)
	return buf
}

// unitAt reads the unit at index `i` from a padded buffer.
func (l unitLayout) unitAt(data []byte, i int) uint32 {
	offset := i * l.size
	switch l.size {
	case 1:
		return uint32(data[offset])
	case 2:
		return uint32(binary.BigEndian.Uint16(data[offset:]))
	default:
		return binary.BigEndian.Uint32(data[offset:])
	}
}

// putField writes `value` as a big-endian signed integer one unit wide. Values
// are truncated to the unit width, so -128 in an 8-bit field becomes 0x80.
func (l unitLayout) putField(dst []byte, value int64) {
	switch l.size {
	case 1:
		dst[0] = byte(value)
	case 2:
		binary.BigEndian.PutUint16(dst, uint16(value))
	default:
		binary.BigEndian.PutUint32(dst, uint32(value))
	}
}
