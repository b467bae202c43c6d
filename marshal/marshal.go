// Package marshal provides the canonical payload encoding: big-endian
// scalars, one-byte booleans, IEEE-754 bit patterns for floats, fixed-count
// arrays element by element. No padding, no length prefixes.
//
// Writer and Reader are position-tracking cursors over caller-supplied
// buffers and never allocate.
package marshal

import "errors"

var (
	ErrShortBuffer = errors.New("marshal: short buffer")
	ErrInvalidBool = errors.New("marshal: invalid bool encoding")
)
