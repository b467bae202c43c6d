package umsg

import "errors"

// Closed error set returned by the receive/transmit pipeline. Handlers may
// return their own errors; those pass through Router dispatch untouched.
var (
	// Framer / link layer.
	ErrFrameTooLarge    = errors.New("umsg: incoming packet exceeds max packet size")
	ErrCobsDecodeFailed = errors.New("umsg: invalid cobs encoding")
	ErrCrcMismatch      = errors.New("umsg: crc mismatch")
	ErrFrameHeaderSize  = errors.New("umsg: frame shorter than header")

	// Router / application layer.
	ErrMsgVersionMismatch = errors.New("umsg: message version mismatch")
	ErrMsgIdUnknown       = errors.New("umsg: no handler for message id")
	ErrMsgLengthMismatch  = errors.New("umsg: length header does not match frame size")

	// Generic.
	ErrInvalidParameter = errors.New("umsg: invalid parameter")
	ErrTransport        = errors.New("umsg: transport write failed")
)
