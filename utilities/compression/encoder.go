package compression

import (
	"fmt"
	"io"

	"github.com/cmptools/cmpress"
	"github.com/noxer/bytewriter"
)

// segmentEncoder serializes segments into a fixed-size output buffer.
type segmentEncoder struct {
	layout unitLayout
	// source is the padded input the segments refer to.
	source []byte
	output []byte
	writer io.Writer
	// written is the number of bytes emitted so far.
	written int
	// field is scratch space for one count or pattern field.
	field []byte
}

func newEncoder(layout unitLayout, source []byte, output []byte) *segmentEncoder {
	return &segmentEncoder{
		layout: layout,
		source: source,
		output: output,
		writer: bytewriter.New(output),
		field:  make([]byte, layout.size),
	}
}

// allocateOutput allocates the output buffer. Absurd sizes are reported as
// [cmpress.ErrAllocationFailure] rather than crashing.
func allocateOutput(size int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = cmpress.ErrAllocationFailure.WithMessage(
				fmt.Sprintf("%d bytes: %v", size, r))
		}
	}()

	if size < 0 {
		return nil, cmpress.ErrAllocationFailure.WithMessage(
			fmt.Sprintf("negative buffer size %d", size))
	}
	return make([]byte, size), nil
}

// capacity gives the size of the output buffer.
func (e *segmentEncoder) capacity() int {
	return len(e.output)
}

// bytesWritten gives the number of bytes emitted so far.
func (e *segmentEncoder) bytesWritten() int {
	return e.written
}

// bytes returns the compressed data emitted so far. The slice aliases the
// output buffer.
func (e *segmentEncoder) bytes() []byte {
	return e.output[:e.written]
}

// encode appends one segment to the output. If the segment doesn't fit in the
// remaining space, nothing is written and [cmpress.ErrExpansionOverflow] is
// returned.
func (e *segmentEncoder) encode(segment Segment) error {
	cost := segment.EncodedSize(e.layout.size)
	if e.written+cost > len(e.output) {
		return cmpress.ErrExpansionOverflow.WithMessage(
			fmt.Sprintf(
				"%s needs %d bytes but only %d of %d remain",
				segment,
				cost,
				len(e.output)-e.written,
				len(e.output),
			),
		)
	}

	e.layout.putField(e.field, segment.EncodedLength())
	if err := e.write(e.field); err != nil {
		return err
	}

	if segment.Kind == RunSegment {
		e.layout.putField(e.field, int64(segment.Pattern))
		return e.write(e.field)
	}

	start := segment.Offset * e.layout.size
	end := start + segment.Units*e.layout.size
	return e.write(e.source[start:end])
}

func (e *segmentEncoder) write(p []byte) error {
	n, err := e.writer.Write(p)
	e.written += n
	if err != nil {
		return cmpress.ErrExpansionOverflow.Wrap(err)
	}
	return nil
}
