package compression

import (
	"errors"
	"io"

	"github.com/cmptools/cmpress"
)

// Options controls how data is compressed.
type Options struct {
	// Width is the size of the units compared and emitted.
	Width cmpress.UnitWidth
	// ForceWideSize makes the header use a 32-bit size field even when the
	// original size would fit in 16 bits.
	ForceWideSize bool
}

// Result holds the compressed segment stream and what's needed to build its
// header.
type Result struct {
	// Data is the compressed segment stream, without a header.
	Data []byte
	// OriginalSize is the size of the uncompressed input in bytes, not
	// counting any padding added to the last unit.
	OriginalSize int
	Width        cmpress.UnitWidth

	RunSegments     int
	LiteralSegments int
}

// Header builds the header for this result.
func (r Result) Header(forceWide bool) ([]byte, error) {
	return BuildHeader(r.Width, int64(r.OriginalSize), forceWide)
}

// Compress compresses `input` using units of the given width. The returned
// result holds only the segment stream; see [BuildHeader] and [CompressImage].
//
// The compressed data is never allowed to be larger than the input, even when
// the last unit had to be padded. If it would be, compression fails with
// [cmpress.ErrExpansionOverflow] and no data is returned.
func Compress(input []byte, width cmpress.UnitWidth) (Result, error) {
	layout, err := newUnitLayout(width)
	if err != nil {
		return Result{}, err
	}
	if len(input) == 0 {
		return Result{}, cmpress.ErrEmptyInput
	}

	source := layout.padded(input)
	output, err := allocateOutput(len(input))
	if err != nil {
		return Result{}, err
	}

	segmenter := newSegmenter(layout, source)
	encoder := newEncoder(layout, source, output)
	result := Result{OriginalSize: len(input), Width: width}

	for {
		segment, err := segmenter.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return Result{}, err
		}

		if err := encoder.encode(segment); err != nil {
			return Result{}, err
		}
		if segment.Kind == RunSegment {
			result.RunSegments++
		} else {
			result.LiteralSegments++
		}
	}

	result.Data = encoder.bytes()
	return result, nil
}
