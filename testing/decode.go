package testing

import (
	"encoding/binary"
	"fmt"
	"io"
	"testing"

	"github.com/cmptools/cmpress"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// Header is the decoded form of a compressed image's header.
type Header struct {
	Width cmpress.UnitWidth
	// Wide is true if the original size is stored in a 32-bit field.
	Wide         bool
	OriginalSize int64
	// Size is the length of the header itself, in bytes.
	Size int
}

// ParseHeader decodes the header at the start of a compressed image.
func ParseHeader(image []byte) (Header, error) {
	if len(image) < cmpress.HeaderSizeNarrow {
		return Header{}, fmt.Errorf("%w: header needs 4 bytes, got %d", io.ErrUnexpectedEOF, len(image))
	}

	word0 := binary.BigEndian.Uint16(image)
	header := Header{Wide: word0&cmpress.HeaderSize32Bit != 0}

	switch word0 & cmpress.HeaderTypeMask {
	case cmpress.HeaderType8Bit:
		header.Width = cmpress.Width8
	case cmpress.HeaderType16Bit:
		header.Width = cmpress.Width16
	case cmpress.HeaderType32Bit:
		header.Width = cmpress.Width32
	default:
		return Header{}, fmt.Errorf("unrecognized compression type in header word %#04x", word0)
	}

	if !header.Wide {
		header.OriginalSize = int64(binary.BigEndian.Uint16(image[2:]))
		header.Size = cmpress.HeaderSizeNarrow
		return header, nil
	}

	if len(image) < cmpress.HeaderSizeWide {
		return Header{}, fmt.Errorf("%w: wide header needs 8 bytes, got %d", io.ErrUnexpectedEOF, len(image))
	}
	if padding := binary.BigEndian.Uint16(image[2:]); padding != 0 {
		return Header{}, fmt.Errorf("header padding should be zero, got %#04x", padding)
	}
	header.OriginalSize = int64(binary.BigEndian.Uint32(image[4:]))
	header.Size = cmpress.HeaderSizeWide
	return header, nil
}

// readField reads a signed count field one unit wide.
func readField(stream []byte, unitSize int) int64 {
	switch unitSize {
	case 1:
		return int64(int8(stream[0]))
	case 2:
		return int64(int16(binary.BigEndian.Uint16(stream)))
	default:
		return int64(int32(binary.BigEndian.Uint32(stream)))
	}
}

// DecodeStream expands a compressed segment stream (without a header). The
// result includes any padding that was added to the last unit.
func DecodeStream(stream []byte, width cmpress.UnitWidth) ([]byte, error) {
	if err := width.Validate(); err != nil {
		return nil, err
	}
	unitSize := width.Bytes()

	var output []byte
	for i := 0; i < len(stream); {
		if i+unitSize > len(stream) {
			return nil, fmt.Errorf("%w: partial count field at offset %d", io.ErrUnexpectedEOF, i)
		}
		count := readField(stream[i:], unitSize)
		i += unitSize

		if count >= 0 {
			if i+unitSize > len(stream) {
				return nil, fmt.Errorf("%w: missing pattern for run at offset %d", io.ErrUnexpectedEOF, i)
			}
			pattern := stream[i : i+unitSize]
			for n := int64(0); n < count+2; n++ {
				output = append(output, pattern...)
			}
			i += unitSize
		} else {
			literalSize := int(-count) * unitSize
			if i+literalSize > len(stream) {
				return nil, fmt.Errorf(
					"%w: literal at offset %d needs %d bytes, %d remain",
					io.ErrUnexpectedEOF,
					i,
					literalSize,
					len(stream)-i,
				)
			}
			output = append(output, stream[i:i+literalSize]...)
			i += literalSize
		}
	}
	return output, nil
}

// DecodeImage expands a full compressed image, header included, and returns
// exactly as many bytes as the header says the original data had.
func DecodeImage(image []byte) ([]byte, error) {
	header, err := ParseHeader(image)
	if err != nil {
		return nil, err
	}

	data, err := DecodeStream(image[header.Size:], header.Width)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) < header.OriginalSize {
		return nil, fmt.Errorf(
			"%w: header says %d bytes, stream expands to %d",
			io.ErrUnexpectedEOF,
			header.OriginalSize,
			len(data),
		)
	}
	if int64(len(data))-header.OriginalSize >= int64(header.Width.Bytes()) {
		return nil, fmt.Errorf(
			"stream expands to %d bytes, more than a unit past the original size %d",
			len(data),
			header.OriginalSize,
		)
	}
	return data[:header.OriginalSize], nil
}

// LoadCompressedImage takes a compressed image and returns a stream to access
// the uncompressed data.
//
//   - Writes to the stream do not affect `image`.
//   - The size of the stream is fixed to the original size given in the header.
func LoadCompressedImage(t *testing.T, image []byte) io.ReadWriteSeeker {
	require.GreaterOrEqual(t, len(image), cmpress.HeaderSizeNarrow, "compressed image is too short")

	imageBytes, err := DecodeImage(image)
	require.NoError(t, err)
	return bytesextra.NewReadWriteSeeker(imageBytes)
}
