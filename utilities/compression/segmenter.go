package compression

import (
	"errors"
	"fmt"
	"io"

	"github.com/cmptools/cmpress"
)

type SegmentKind int

const (
	LiteralSegment SegmentKind = iota
	RunSegment
)

func (k SegmentKind) String() string {
	if k == RunSegment {
		return "run"
	}
	return "literal"
}

// Segment is a range of units that will be encoded as either a run or a
// literal.
type Segment struct {
	Kind SegmentKind
	// Offset is the index of the first unit covered by this segment.
	Offset int
	// Units gives the number of units covered by this segment. For a run this
	// is the actual run length, not the encoded one.
	Units int
	// Pattern is the repeated unit. It's only meaningful for runs.
	Pattern uint32
}

// EncodedLength returns the value stored in the segment's count field: the
// run length minus two for runs, the negated unit count for literals.
func (s Segment) EncodedLength() int64 {
	if s.Kind == RunSegment {
		return int64(s.Units) - 2
	}
	return -int64(s.Units)
}

// EncodedSize gives the number of bytes the segment occupies in the compressed
// stream when the units are `unitSize` bytes wide.
func (s Segment) EncodedSize(unitSize int) int {
	if s.Kind == RunSegment {
		return 2 * unitSize
	}
	return (s.Units + 1) * unitSize
}

func (s Segment) String() string {
	if s.Kind == RunSegment {
		return fmt.Sprintf("run(%d units of %#x at %d)", s.Units, s.Pattern, s.Offset)
	}
	return fmt.Sprintf("literal(%d units at %d)", s.Units, s.Offset)
}

// Segmenter splits a unit stream into run and literal segments in a single
// forward pass.
type Segmenter struct {
	layout unitLayout
	data   []byte
	// totalUnits is the number of units in data.
	totalUnits int
	// position is the index of the next unit to examine.
	position int
	// literalStart is the index of the first unit of the pending literal, and
	// literalUnits its length. When literalUnits is 0 there's no pending literal.
	literalStart int
	literalUnits int
	// queued holds a run found right after a pending literal. The literal is
	// returned first, the run on the following call.
	queued *Segment
}

// NewSegmenter creates a [Segmenter] over `data`. If the length of `data`
// isn't a multiple of the unit size, the final unit is padded with null bytes.
func NewSegmenter(data []byte, width cmpress.UnitWidth) (*Segmenter, error) {
	layout, err := newUnitLayout(width)
	if err != nil {
		return nil, err
	}
	return newSegmenter(layout, layout.padded(data)), nil
}

// newSegmenter is like [NewSegmenter] but requires `data` to already be padded.
func newSegmenter(layout unitLayout, data []byte) *Segmenter {
	return &Segmenter{
		layout:     layout,
		data:       data,
		totalUnits: len(data) / layout.size,
	}
}

// runThreshold gives the number of identical units needed at the current
// position before a run is emitted.
func (s *Segmenter) runThreshold() int {
	if s.layout.size == 1 && s.literalUnits == 0 {
		return 2
	}
	return 3
}

// runLengthAt returns the length of the run starting at `start`, or 0 if there
// are fewer than `threshold` identical units there.
func (s *Segmenter) runLengthAt(start, threshold int) int {
	if s.totalUnits-start < threshold {
		return 0
	}

	pattern := s.layout.unitAt(s.data, start)
	for i := 1; i < threshold; i++ {
		if s.layout.unitAt(s.data, start+i) != pattern {
			return 0
		}
	}

	runLength := threshold
	for start+runLength < s.totalUnits &&
		int64(runLength) < s.layout.maxRunUnits &&
		s.layout.unitAt(s.data, start+runLength) == pattern {
		runLength++
	}
	return runLength
}

// takeLiteral returns the pending literal and resets the accumulator so the
// next literal starts at the current position.
func (s *Segmenter) takeLiteral() Segment {
	literal := Segment{
		Kind:   LiteralSegment,
		Offset: s.literalStart,
		Units:  s.literalUnits,
	}
	s.literalStart = s.position
	s.literalUnits = 0
	return literal
}

// Next returns the next segment in the stream. Once the input is exhausted it
// returns [io.EOF].
func (s *Segmenter) Next() (Segment, error) {
	if s.queued != nil {
		run := *s.queued
		s.queued = nil
		return run, nil
	}

	for s.position < s.totalUnits {
		runLength := s.runLengthAt(s.position, s.runThreshold())
		if runLength > 0 {
			run := Segment{
				Kind:    RunSegment,
				Offset:  s.position,
				Units:   runLength,
				Pattern: s.layout.unitAt(s.data, s.position),
			}
			s.position += runLength

			if s.literalUnits > 0 {
				// The literal must be closed before the run can be written.
				s.queued = &run
				return s.takeLiteral(), nil
			}
			s.literalStart = s.position
			return run, nil
		}

		s.position++
		s.literalUnits++
		if int64(s.literalUnits) == s.layout.maxLiteralUnits {
			return s.takeLiteral(), nil
		}
	}

	if s.literalUnits > 0 {
		return s.takeLiteral(), nil
	}
	return Segment{}, io.EOF
}

// All returns every remaining segment.
func (s *Segmenter) All() ([]Segment, error) {
	var segments []Segment
	for {
		segment, err := s.Next()
		if errors.Is(err, io.EOF) {
			return segments, nil
		} else if err != nil {
			return segments, err
		}
		segments = append(segments, segment)
	}
}
