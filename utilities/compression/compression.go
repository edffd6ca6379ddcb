package compression

import (
	"errors"
	"fmt"
	"io"

	"github.com/cmptools/cmpress"
)

// CompressImage reads all of `input`, compresses it, and writes the header
// followed by the compressed data to `output`.
//
// The returned int64 gives the number of bytes written to the output stream. If
// an error occurred, the value is undefined and should not be used.
func CompressImage(input io.Reader, output io.Writer, options Options) (int64, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return 0, cmpress.ErrSourceRead.Wrap(err)
	}
	return WriteImage(data, output, options)
}

// WriteImage compresses `data` and writes the header followed by the compressed
// data to `output`. Nothing is written if compression fails.
func WriteImage(data []byte, output io.Writer, options Options) (int64, error) {
	result, err := Compress(data, options.Width)
	if err != nil {
		return 0, err
	}

	header, err := result.Header(options.ForceWideSize)
	if err != nil {
		return 0, err
	}

	totalBytesWritten := int64(0)
	for _, chunk := range [][]byte{header, result.Data} {
		n, err := output.Write(chunk)
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
		}
	}
	return totalBytesWritten, nil
}

// ReadSource reads the data to compress from `source`.
//
// Reading starts at byte `offset`. If `size` is 0, everything up to the end of
// the source is read; otherwise at most `size` bytes are. Running into the end
// of the source early isn't an error, but reading nothing at all is.
func ReadSource(source io.ReadSeeker, offset, size int64) ([]byte, error) {
	if offset < 0 || size < 0 {
		return nil, cmpress.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("offset %d and size %d must not be negative", offset, size))
	}
	if size > cmpress.MaxSourceSize {
		return nil, cmpress.ErrInputTooLarge.WithMessage(
			fmt.Sprintf("%d bytes requested, limit is %d", size, cmpress.MaxSourceSize))
	}

	if size == 0 {
		end, err := source.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, cmpress.ErrSourceRead.Wrap(err)
		}
		size = end - offset
		if size <= 0 {
			return nil, cmpress.ErrEmptyInput.WithMessage(
				fmt.Sprintf("offset %d is at or past the end of the source (%d bytes)", offset, end))
		}
		if size > cmpress.MaxSourceSize {
			return nil, cmpress.ErrInputTooLarge.WithMessage(
				fmt.Sprintf("%d bytes after offset %d, limit is %d", size, offset, cmpress.MaxSourceSize))
		}
	}

	if _, err := source.Seek(offset, io.SeekStart); err != nil {
		return nil, cmpress.ErrSourceRead.Wrap(err)
	}

	buf := make([]byte, size)
	n, err := io.ReadFull(source, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, cmpress.ErrSourceRead.Wrap(err)
	}
	if n == 0 {
		return nil, cmpress.ErrEmptyInput.WithMessage(
			fmt.Sprintf("nothing to read at offset %d", offset))
	}
	return buf[:n], nil
}
