// Package compression produces data compressed with the run-length scheme
// understood by the Sega Saturn CMP library.
//
// The input is treated as a sequence of fixed-size units of 8, 16, or 32 bits.
// Multi-byte units are big-endian, the console's native byte order. The
// compressed stream is a series of segments, each starting with a signed count
// field the same width as a unit:
//
//	Run:      N   P          N+2 copies of the unit P
//	Literal: -K   U1 ... UK  K units copied verbatim
//
// For example, with 8-bit units:
//
//	41 41 41 41 42 43
//	02 41 FE 42 43
//
// A run needs at least two identical units to be worth encoding, and only when
// there's no pending literal. A run of two in the middle of literal data saves
// nothing and usually costs an extra count field to restart the literal after
// it. Everywhere else (and always for 16- and 32-bit units) the minimum is
// three.
//
// Compressed data is prefixed with a small header giving the unit width and
// the size of the original data, either 4 or 8 bytes long:
//
//	0000_0TT0 0000_Z000  SSSS_SSSS SSSS_SSSS                            (Z = 0)
//	0000_0TT0 0000_Z000  0000_0000 0000_0000  SSSS_SSSS ... SSSS_SSSS  (Z = 1)
//
// The output buffer is sized to the input. The format has no fallback for data
// that doesn't compress, so if the segments would need more space than the
// original data, compression fails with [cmpress.ErrExpansionOverflow].
//
// This package never decompresses anything. A reference decoder for testing
// lives in the testing package of this module.
package compression
