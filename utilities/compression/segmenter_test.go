package compression_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/cmptools/cmpress"
	c "github.com/cmptools/cmpress/utilities/compression"
	cmptest "github.com/cmptools/cmpress/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type SegmenterTestCase struct {
	Data     []byte
	Width    cmpress.UnitWidth
	Expected []c.Segment
	Name     string
}

func run(offset, units int, pattern uint32) c.Segment {
	return c.Segment{Kind: c.RunSegment, Offset: offset, Units: units, Pattern: pattern}
}

func literal(offset, units int) c.Segment {
	return c.Segment{Kind: c.LiteralSegment, Offset: offset, Units: units}
}

var segmenterTestCases = []SegmenterTestCase{
	{
		[]byte{0x41, 0x41, 0x42},
		cmpress.Width8,
		[]c.Segment{run(0, 2, 0x41), literal(2, 1)},
		"two at start",
	},
	{
		[]byte{1, 2, 3},
		cmpress.Width8,
		[]c.Segment{literal(0, 3)},
		"no runs",
	},
	{
		[]byte{1, 5, 5, 6},
		cmpress.Width8,
		[]c.Segment{literal(0, 4)},
		"two after literal",
	},
	{
		[]byte{1, 5, 5, 5, 6},
		cmpress.Width8,
		[]c.Segment{literal(0, 1), run(1, 3, 5), literal(4, 1)},
		"three after literal",
	},
	{
		[]byte{6, 1, 3, 0, 0},
		cmpress.Width8,
		[]c.Segment{literal(0, 5)},
		"two at end after literal",
	},
	{
		[]byte{9, 9, 9, 9, 3, 3, 7},
		cmpress.Width8,
		[]c.Segment{run(0, 4, 9), run(4, 2, 3), literal(6, 1)},
		"two right after run",
	},
	{
		[]byte{9, 9, 9, 9},
		cmpress.Width8,
		[]c.Segment{run(0, 4, 9)},
		"entire run",
	},
	{
		bytes.Repeat([]byte{7}, 129),
		cmpress.Width8,
		[]c.Segment{run(0, 129, 7)},
		"longest run",
	},
	{
		bytes.Repeat([]byte{7}, 130),
		cmpress.Width8,
		[]c.Segment{run(0, 129, 7), literal(129, 1)},
		"longest run plus one",
	},
	{
		bytes.Repeat([]byte{7}, 131),
		cmpress.Width8,
		[]c.Segment{run(0, 129, 7), run(129, 2, 7)},
		"longest run plus two",
	},
	{
		[]byte{0, 1, 0, 1, 0, 1, 0, 2},
		cmpress.Width16,
		[]c.Segment{run(0, 3, 0x0001), literal(3, 1)},
		"16-bit run of three",
	},
	{
		[]byte{0, 1, 0, 1, 0, 2},
		cmpress.Width16,
		[]c.Segment{literal(0, 3)},
		"16-bit run of two",
	},
	{
		[]byte{0x12, 0x34, 0x12, 0x34, 0x12, 0x34, 0x12, 0x34},
		cmpress.Width16,
		[]c.Segment{run(0, 4, 0x1234)},
		"16-bit units are big-endian",
	},
	{
		[]byte{0xAB, 0xAB, 0xAB},
		cmpress.Width16,
		[]c.Segment{literal(0, 2)},
		"16-bit partial unit is padded",
	},
	{
		[]byte{0xAB, 0xAB, 0xAB, 0xAB, 0xAB},
		cmpress.Width16,
		[]c.Segment{literal(0, 3)},
		"16-bit padding breaks run",
	},
	{
		[]byte{
			0xDE, 0xAD, 0xBE, 0xEF, 0xDE, 0xAD, 0xBE, 0xEF, 0xDE, 0xAD, 0xBE, 0xEF,
			0x01, 0x02, 0x03, 0x04, 0x01, 0x02, 0x03, 0x04, 0x01, 0x02, 0x03, 0x04,
		},
		cmpress.Width32,
		[]c.Segment{run(0, 3, 0xDEADBEEF), run(3, 3, 0x01020304)},
		"32-bit adjacent runs",
	},
	{
		[]byte{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 2},
		cmpress.Width32,
		[]c.Segment{literal(0, 3)},
		"32-bit run of two",
	},
}

func TestSegmenter__Basic(t *testing.T) {
	for _, test := range segmenterTestCases {
		t.Run(
			test.Name,
			func(t *testing.T) {
				segmenter, err := c.NewSegmenter(test.Data, test.Width)
				require.NoError(t, err)

				segments, err := segmenter.All()
				require.NoError(t, err)
				assert.Equal(t, test.Expected, segments)
			},
		)
	}
}

func TestSegmenter__LiteralCap(t *testing.T) {
	data := cmptest.CreateDistinctBytes(200)
	expected := []c.Segment{literal(0, 128), literal(128, 72)}

	segmenter, err := c.NewSegmenter(data, cmpress.Width8)
	require.NoError(t, err)

	for i, expectedSegment := range expected {
		result, err := segmenter.Next()
		require.NoError(t, err)
		assert.Equal(t, expectedSegment, result, "segment %d is wrong", i)
	}

	_, err = segmenter.Next()
	assert.ErrorIs(t, err, io.EOF)

	// Calling Next after EOF keeps returning EOF.
	_, err = segmenter.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSegmenter__LiteralCapThenRun(t *testing.T) {
	data := append(cmptest.CreateDistinctBytes(128), 0xEE, 0xEE)

	segmenter, err := c.NewSegmenter(data, cmpress.Width8)
	require.NoError(t, err)

	// Once the literal is flushed the accumulator is empty, so a pair is
	// enough for a run again.
	segments, err := segmenter.All()
	require.NoError(t, err)
	assert.Equal(t, []c.Segment{literal(0, 128), run(128, 2, 0xEE)}, segments)
}

func TestSegmenter__LongRun16(t *testing.T) {
	data := bytes.Repeat([]byte{0xBE, 0xEF}, 40000)

	segmenter, err := c.NewSegmenter(data, cmpress.Width16)
	require.NoError(t, err)

	segments, err := segmenter.All()
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, run(0, 32769, 0xBEEF), segments[0])
	assert.EqualValues(t, 32767, segments[0].EncodedLength())
	assert.Equal(t, run(32769, 7231, 0xBEEF), segments[1])
	assert.EqualValues(t, 7229, segments[1].EncodedLength())
}

func TestSegmenter__LiteralCap16(t *testing.T) {
	data := make([]byte, 2*32770)
	for i := 0; i < 32770; i++ {
		data[2*i] = byte(i >> 8)
		data[2*i+1] = byte(i)
	}

	segmenter, err := c.NewSegmenter(data, cmpress.Width16)
	require.NoError(t, err)

	segments, err := segmenter.All()
	require.NoError(t, err)
	assert.Equal(t, []c.Segment{literal(0, 32768), literal(32768, 2)}, segments)
	assert.EqualValues(t, -32768, segments[0].EncodedLength())
}

func TestSegmenter__InvalidWidth(t *testing.T) {
	_, err := c.NewSegmenter([]byte{1, 2, 3}, cmpress.UnitWidth(24))
	assert.ErrorIs(t, err, cmpress.ErrInvalidUnitWidth)
}

func TestSegment__Encoding(t *testing.T) {
	assert.EqualValues(t, 0, run(0, 2, 0).EncodedLength())
	assert.EqualValues(t, 127, run(0, 129, 0).EncodedLength())
	assert.EqualValues(t, -5, literal(0, 5).EncodedLength())

	assert.Equal(t, 2, run(0, 100, 0).EncodedSize(1))
	assert.Equal(t, 8, run(0, 100, 0).EncodedSize(4))
	assert.Equal(t, 6, literal(0, 5).EncodedSize(1))
	assert.Equal(t, 12, literal(0, 5).EncodedSize(2))
}
