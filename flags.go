package cmpress

// Word 0 of the header:
//
//	0000_0TT0 0000_Z000
//
// TT selects the unit width and Z says whether the original size that follows
// is 16 or 32 bits wide.
const (
	HeaderType8Bit  = 0x0000
	HeaderType16Bit = 0x0200
	HeaderType32Bit = 0x0400
	HeaderTypeMask  = 0x0600

	HeaderSize32Bit = 0x0008
)

const HeaderSizeNarrow = 4
const HeaderSizeWide = 8

// MaxNarrowSize is the largest original size that fits the 16-bit size field.
const MaxNarrowSize = 0xffff

// MaxSourceSize caps how much data a single invocation will read. A Saturn CD
// holds at most 700 MiB, so anything larger can't be a real asset.
const MaxSourceSize = 700 * 1024 * 1024
