// Package report describes how a piece of data would be split into segments
// by the CMP encoder, without the output size limit the encoder enforces. It's
// meant for figuring out why something doesn't compress.
package report

import (
	"fmt"
	"io"

	"github.com/boljen/go-bitmap"
	"github.com/cmptools/cmpress"
	"github.com/cmptools/cmpress/utilities/compression"
	"github.com/gocarina/gocsv"
)

// SegmentRecord is one row of the segment map.
type SegmentRecord struct {
	Index      int    `csv:"index"`
	Kind       string `csv:"kind"`
	UnitOffset int    `csv:"unit_offset"`
	ByteOffset int    `csv:"byte_offset"`
	Units      int    `csv:"units"`
	// CountField is the value stored in the segment's count field.
	CountField int64 `csv:"count_field"`
	// Pattern is the repeated unit in hex, empty for literals.
	Pattern      string `csv:"pattern"`
	EncodedBytes int    `csv:"encoded_bytes"`
	// OutputOffset is where the segment starts in the compressed stream.
	OutputOffset int `csv:"output_offset"`
}

type Report struct {
	Width   cmpress.UnitWidth
	Records []SegmentRecord
	// InputSize is the size of the data in bytes, without padding.
	InputSize  int
	TotalUnits int
	// runUnits has a bit set for every unit covered by a run.
	runUnits bitmap.Bitmap
}

// Build segments `data` and records every segment.
func Build(data []byte, width cmpress.UnitWidth) (*Report, error) {
	if len(data) == 0 {
		return nil, cmpress.ErrEmptyInput
	}

	segmenter, err := compression.NewSegmenter(data, width)
	if err != nil {
		return nil, err
	}

	unitSize := width.Bytes()
	totalUnits := (len(data) + unitSize - 1) / unitSize
	report := &Report{
		Width:      width,
		InputSize:  len(data),
		TotalUnits: totalUnits,
		runUnits:   bitmap.New(totalUnits),
	}

	segments, err := segmenter.All()
	if err != nil {
		return nil, err
	}

	outputOffset := 0
	for i, segment := range segments {
		record := SegmentRecord{
			Index:        i,
			Kind:         segment.Kind.String(),
			UnitOffset:   segment.Offset,
			ByteOffset:   segment.Offset * unitSize,
			Units:        segment.Units,
			CountField:   segment.EncodedLength(),
			EncodedBytes: segment.EncodedSize(unitSize),
			OutputOffset: outputOffset,
		}
		if segment.Kind == compression.RunSegment {
			record.Pattern = fmt.Sprintf("%0*x", unitSize*2, segment.Pattern)
			for unit := segment.Offset; unit < segment.Offset+segment.Units; unit++ {
				report.runUnits.Set(unit, true)
			}
		}

		outputOffset += record.EncodedBytes
		report.Records = append(report.Records, record)
	}
	return report, nil
}

// EncodedSize gives the size of the compressed stream, not counting the
// header.
func (r *Report) EncodedSize() int {
	total := 0
	for _, record := range r.Records {
		total += record.EncodedBytes
	}
	return total
}

// Capacity gives the most the compressed stream may occupy, which is the size
// of the input.
func (r *Report) Capacity() int {
	return r.InputSize
}

// WouldExpand returns true if the encoder would reject this data because the
// compressed stream doesn't fit.
func (r *Report) WouldExpand() bool {
	return r.EncodedSize() > r.Capacity()
}

// FirstOverflow returns the index of the segment that pushes the compressed
// stream past its capacity, or -1 if the data fits.
func (r *Report) FirstOverflow() int {
	capacity := r.Capacity()
	for i, record := range r.Records {
		if record.OutputOffset+record.EncodedBytes > capacity {
			return i
		}
	}
	return -1
}

// IsRunUnit returns true if the unit at index `unit` is covered by a run.
func (r *Report) IsRunUnit(unit int) bool {
	if unit < 0 || unit >= r.TotalUnits {
		return false
	}
	return r.runUnits.Get(unit)
}

// RunCoverage gives the fraction of units covered by runs, between 0 and 1.
func (r *Report) RunCoverage() float64 {
	if r.TotalUnits == 0 {
		return 0
	}

	covered := 0
	for unit := 0; unit < r.TotalUnits; unit++ {
		if r.runUnits.Get(unit) {
			covered++
		}
	}
	return float64(covered) / float64(r.TotalUnits)
}

// WriteCSV writes the segment map as CSV, one row per segment with a header
// row first.
func (r *Report) WriteCSV(output io.Writer) error {
	return gocsv.Marshal(r.Records, output)
}
