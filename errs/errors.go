// Package errs defines the sentinel errors returned by tracefile packages.
//
// Callers should match errors with errors.Is; all errors returned by the
// library wrap one of these sentinels with contextual detail.
package errs

import "errors"

var (
	// ErrInvalidSeriesName indicates a series name that is empty or contains
	// a colon character, which the text format reserves as the header
	// separator.
	ErrInvalidSeriesName = errors.New("invalid series name")

	// ErrMixedDimension indicates an attempt to access an existing series
	// through a handle of the other dimension.
	ErrMixedDimension = errors.New("series has a different dimension")

	// ErrSeriesCapExceeded indicates that a new series could not be created
	// because the distinct-name cap was reached.
	ErrSeriesCapExceeded = errors.New("series cap exceeded")

	// ErrMalformedHeader indicates a line that is neither a valid series
	// header, the terminator, nor end-of-input.
	ErrMalformedHeader = errors.New("malformed series header")

	// ErrMalformedValue indicates a data line whose field count or number
	// formatting does not match the declared dimension.
	ErrMalformedValue = errors.New("malformed data line")

	// ErrTruncatedSeries indicates that the input ended before a series
	// block delivered its declared number of data lines.
	ErrTruncatedSeries = errors.New("truncated series block")
)
