package matrixio

import "errors"

// Sentinel errors for matrixio. Callers MUST use errors.Is to branch on
// semantics; wrap with fmt.Errorf("...: %w", Err...) for context.
var (
	// ErrEmptyFile indicates the input had no header line to parse.
	ErrEmptyFile = errors.New("matrixio: empty or all-comment input")

	// ErrBadHeader indicates the "N N M" header could not be parsed.
	ErrBadHeader = errors.New("matrixio: malformed matrix header")

	// ErrNonSquare indicates the declared row and column counts differ.
	ErrNonSquare = errors.New("matrixio: matrix is not square")

	// ErrTruncated indicates input ended early or the number of data
	// lines or entries present differs from the declared count.
	ErrTruncated = errors.New("matrixio: truncated matrix data")

	// ErrMalformedElement indicates a "row col val" line failed to parse.
	ErrMalformedElement = errors.New("matrixio: malformed element line")

	// ErrSectionMismatch indicates a partition file section sentinel did
	// not match the expected header, out of order or misspelled.
	ErrSectionMismatch = errors.New("matrixio: partition file section mismatch")

	// ErrWorldSizeMismatch indicates the partition file's declared process
	// count does not equal the world size the loader was told to expect.
	ErrWorldSizeMismatch = errors.New("matrixio: declared process count mismatch")

	// ErrScheduleMismatch indicates a send/recv schedule's declared totals
	// did not match the number of indices actually present.
	ErrScheduleMismatch = errors.New("matrixio: schedule length mismatch")
)
