package compression

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cmptools/cmpress"
	"github.com/noxer/bytewriter"
)

// BuildHeader creates the header that goes in front of compressed data.
//
// The original size is written as a 16-bit field if it fits, otherwise as a
// 32-bit field preceded by two bytes of padding. `forceWide` selects the 32-bit
// form regardless of size.
func BuildHeader(
	width cmpress.UnitWidth, originalSizeBytes int64, forceWide bool,
) ([]byte, error) {
	if err := width.Validate(); err != nil {
		return nil, err
	}
	if originalSizeBytes < 0 || originalSizeBytes > math.MaxUint32 {
		return nil, cmpress.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("original size %d can't be stored in the header", originalSizeBytes))
	}

	word0 := width.HeaderTypeFlag()
	wide := forceWide || originalSizeBytes > cmpress.MaxNarrowSize

	var header []byte
	if wide {
		header = make([]byte, cmpress.HeaderSizeWide)
	} else {
		header = make([]byte, cmpress.HeaderSizeNarrow)
	}
	writer := bytewriter.New(header)

	var fields []any
	if wide {
		fields = []any{
			word0 | cmpress.HeaderSize32Bit,
			uint16(0),
			uint32(originalSizeBytes),
		}
	} else {
		fields = []any{word0, uint16(originalSizeBytes)}
	}

	for _, field := range fields {
		if err := binary.Write(writer, binary.BigEndian, field); err != nil {
			return nil, cmpress.ErrInvalidArgument.Wrap(err)
		}
	}
	return header, nil
}
