package compression_test

import (
	"math"
	"testing"

	"github.com/cmptools/cmpress"
	c "github.com/cmptools/cmpress/utilities/compression"
	cmptest "github.com/cmptools/cmpress/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHeader(t *testing.T) {
	tests := []struct {
		Width     cmpress.UnitWidth
		Size      int64
		ForceWide bool
		Expected  []byte
		Name      string
	}{
		{cmpress.Width8, 100, false, []byte{0x00, 0x00, 0x00, 0x64}, "8-bit narrow"},
		{cmpress.Width16, 100, false, []byte{0x02, 0x00, 0x00, 0x64}, "16-bit narrow"},
		{cmpress.Width32, 65535, false, []byte{0x04, 0x00, 0xFF, 0xFF}, "largest narrow"},
		{
			cmpress.Width32,
			65536,
			false,
			[]byte{0x04, 0x08, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00},
			"smallest wide",
		},
		{
			cmpress.Width8,
			70000,
			false,
			[]byte{0x00, 0x08, 0x00, 0x00, 0x00, 0x01, 0x11, 0x70},
			"too big for 16 bits",
		},
		{
			cmpress.Width8,
			100,
			true,
			[]byte{0x00, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x64},
			"forced wide",
		},
		{
			cmpress.Width16,
			math.MaxUint32,
			false,
			[]byte{0x02, 0x08, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF},
			"largest wide",
		},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				header, err := c.BuildHeader(test.Width, test.Size, test.ForceWide)
				require.NoError(t, err)
				assert.Equal(t, test.Expected, header)

				parsed, err := cmptest.ParseHeader(header)
				require.NoError(t, err)
				assert.Equal(t, test.Width, parsed.Width)
				assert.Equal(t, test.Size, parsed.OriginalSize)
				assert.Equal(t, len(header), parsed.Size)
			},
		)
	}
}

func TestBuildHeader__Invalid(t *testing.T) {
	_, err := c.BuildHeader(cmpress.UnitWidth(12), 100, false)
	assert.ErrorIs(t, err, cmpress.ErrInvalidUnitWidth)

	_, err = c.BuildHeader(cmpress.Width8, -1, false)
	assert.ErrorIs(t, err, cmpress.ErrInvalidArgument)

	_, err = c.BuildHeader(cmpress.Width8, math.MaxUint32+1, true)
	assert.ErrorIs(t, err, cmpress.ErrInvalidArgument)
}
