package cmpress

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CompressionError is the error type returned by every operation in this
// module. Each error kind below is a sentinel; derived errors keep the kind in
// their chain so callers can test for it with [errors.Is].
type CompressionError interface {
	error
	WithMessage(message string) CompressionError
	Wrap(err error) CompressionError
}

type baseCmpError string

const rootError = baseCmpError("")

var ErrAllocationFailure = rootError.WithMessage("Cannot allocate output buffer")
var ErrEmptyInput = rootError.WithMessage("No input data to compress")
var ErrExpansionOverflow = rootError.WithMessage("Compressed data would be larger than the input")
var ErrInputTooLarge = rootError.WithMessage("Input data too large")
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")
var ErrInvalidUnitWidth = rootError.WithMessage("Invalid unit width")
var ErrSourceRead = rootError.WithMessage("Failed to read source data")

func (e baseCmpError) Error() string {
	return string(e)
}

func (e baseCmpError) WithMessage(message string) CompressionError {
	return customCmpError{
		message:       message,
		originalError: e,
	}
}

func (e baseCmpError) Wrap(err error) CompressionError {
	return customCmpError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCmpError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customCmpError) Error() string {
	return e.message
}

func (e customCmpError) WithMessage(message string) CompressionError {
	return customCmpError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCmpError) Wrap(err error) CompressionError {
	return customCmpError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCmpError) Unwrap() error {
	return e.originalError
}
