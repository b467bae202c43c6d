// Package cobs implements Consistent Overhead Byte Stuffing.
//
// The encoding guarantees that no 0x00 byte appears in the output, so a
// single zero can delimit packets on any byte stream. The trailing delimiter
// itself is not part of the encoding; framing owns it.
package cobs

import "errors"

var (
	ErrOverflow    = errors.New("cobs: output buffer overflow")
	ErrBadEncoding = errors.New("cobs: invalid encoding")
)

// Encoder is an incremental COBS encoder over a caller-supplied buffer.
// After a failed Put or End the encoder state is undefined; call Begin again.
type Encoder struct {
	out       []byte
	codeIndex int
	writeIdx  int
	code      byte
}

// Begin resets the encoder against out. The first byte of out is reserved
// for the initial code slot.
func (e *Encoder) Begin(out []byte) error {
	if len(out) == 0 {
		return ErrOverflow
	}
	e.out = out
	e.codeIndex = 0
	e.writeIdx = 1
	e.code = 1
	e.out[0] = 0
	return nil
}

// Put appends one input byte to the encoding.
func (e *Encoder) Put(b byte) error {
	if b == 0 {
		e.out[e.codeIndex] = e.code
		e.codeIndex = e.writeIdx
		if e.writeIdx >= len(e.out) {
			return ErrOverflow
		}
		e.writeIdx++
		e.code = 1
		return nil
	}

	if e.writeIdx >= len(e.out) {
		return ErrOverflow
	}
	e.out[e.writeIdx] = b
	e.writeIdx++
	e.code++
	if e.code == 0xFF {
		// 254 literal bytes buffered: close the block without consuming
		// an input zero.
		e.out[e.codeIndex] = e.code
		e.codeIndex = e.writeIdx
		if e.writeIdx >= len(e.out) {
			return ErrOverflow
		}
		e.writeIdx++
		e.code = 1
	}
	return nil
}

// End finalizes the encoding and returns the encoded length. The delimiter
// byte is not written.
func (e *Encoder) End() (int, error) {
	e.out[e.codeIndex] = e.code
	return e.writeIdx, nil
}

// Encode encodes src into dst and returns the encoded length.
func Encode(dst, src []byte) (int, error) {
	return EncodePair(dst, src, nil)
}

// EncodePair encodes the concatenation a||b into dst in a single pass.
// Framing uses this to encode frame||crc without a temporary buffer.
func EncodePair(dst, a, b []byte) (int, error) {
	var enc Encoder
	if err := enc.Begin(dst); err != nil {
		return 0, err
	}
	for _, c := range a {
		if err := enc.Put(c); err != nil {
			return 0, err
		}
	}
	for _, c := range b {
		if err := enc.Put(c); err != nil {
			return 0, err
		}
	}
	return enc.End()
}

// DecodeInPlace reverses the encoding inside buf and returns the decoded
// length. Decoded bytes always fit before the read cursor, so no extra
// storage is needed.
func DecodeInPlace(buf []byte) (int, error) {
	readIdx := 0
	writeIdx := 0

	for readIdx < len(buf) {
		code := buf[readIdx]
		readIdx++
		if code == 0 {
			return 0, ErrBadEncoding
		}

		for i := byte(1); i < code; i++ {
			if readIdx >= len(buf) || buf[readIdx] == 0 {
				return 0, ErrBadEncoding
			}
			buf[writeIdx] = buf[readIdx]
			writeIdx++
			readIdx++
		}

		if code != 0xFF && readIdx < len(buf) {
			buf[writeIdx] = 0x00
			writeIdx++
		}
	}
	return writeIdx, nil
}
