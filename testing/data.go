package testing

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateRandomData returns `size` random bytes. It is guaranteed to either
// return a valid slice or fail the test and abort.
//
// Random data almost never compresses under this format, so this is mostly
// useful for exercising failure paths.
func CreateRandomData(size int, t *testing.T) []byte {
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to initialize %d random bytes", size)
	return data
}

// CreateDistinctBytes returns `size` bytes where no two adjacent bytes are
// equal, so the data contains no runs at all.
func CreateDistinctBytes(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

// CreateAlternatingBytes returns `size` bytes alternating between `a` and `b`.
func CreateAlternatingBytes(size int, a, b byte) []byte {
	data := make([]byte, size)
	for i := range data {
		if i%2 == 0 {
			data[i] = a
		} else {
			data[i] = b
		}
	}
	return data
}

// CreateBlockyData returns data made of runs of varying length separated by
// short stretches of distinct bytes, roughly what a sprite sheet or a tile map
// looks like. Unit-aligned runs are long enough to compress at any width.
//
// The output is deterministic for a given size.
func CreateBlockyData(size int) []byte {
	data := make([]byte, 0, size)
	seed := uint32(0x12345678)
	next := func() uint32 {
		// xorshift32
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		return seed
	}

	for len(data) < size {
		// A run of 16 to 527 copies of one byte...
		runValue := byte(next())
		runLength := 16 + int(next()%512)
		for i := 0; i < runLength && len(data) < size; i++ {
			data = append(data, runValue)
		}

		// ...followed by up to 11 bytes of noise.
		noiseLength := int(next() % 12)
		for i := 0; i < noiseLength && len(data) < size; i++ {
			data = append(data, byte(next()))
		}
	}
	return data
}
