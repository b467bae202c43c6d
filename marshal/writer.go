package marshal

import (
	"encoding/binary"
	"math"
)

// Writer encodes scalars into a caller-supplied buffer. A failing write
// leaves the buffer contents and the cursor unchanged.
type Writer struct {
	buf []byte
	off int
}

// NewWriter returns a Writer over buf. Capacity is len(buf).
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Reset rewinds the cursor and retargets the writer at buf.
func (w *Writer) Reset(buf []byte) {
	w.buf = buf
	w.off = 0
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return w.off }

// Bytes returns the written prefix of the underlying buffer.
func (w *Writer) Bytes() []byte { return w.buf[:w.off] }

func (w *Writer) ensure(n int) error {
	if w.off+n > len(w.buf) {
		return ErrShortBuffer
	}
	return nil
}

func (w *Writer) WriteUint8(v uint8) error {
	if err := w.ensure(1); err != nil {
		return err
	}
	w.buf[w.off] = v
	w.off++
	return nil
}

func (w *Writer) WriteInt8(v int8) error { return w.WriteUint8(uint8(v)) }

func (w *Writer) WriteBool(v bool) error {
	b := uint8(0)
	if v {
		b = 1
	}
	return w.WriteUint8(b)
}

func (w *Writer) WriteUint16(v uint16) error {
	if err := w.ensure(2); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(w.buf[w.off:], v)
	w.off += 2
	return nil
}

func (w *Writer) WriteInt16(v int16) error { return w.WriteUint16(uint16(v)) }

func (w *Writer) WriteUint32(v uint32) error {
	if err := w.ensure(4); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
	return nil
}

func (w *Writer) WriteInt32(v int32) error { return w.WriteUint32(uint32(v)) }

func (w *Writer) WriteUint64(v uint64) error {
	if err := w.ensure(8); err != nil {
		return err
	}
	binary.BigEndian.PutUint64(w.buf[w.off:], v)
	w.off += 8
	return nil
}

func (w *Writer) WriteInt64(v int64) error { return w.WriteUint64(uint64(v)) }

// WriteFloat32 transports the IEEE-754 bit pattern; NaN and Inf round-trip
// exactly.
func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}

func (w *Writer) WriteUint8Array(vs []uint8) error {
	if err := w.ensure(len(vs)); err != nil {
		return err
	}
	copy(w.buf[w.off:], vs)
	w.off += len(vs)
	return nil
}

func (w *Writer) WriteInt8Array(vs []int8) error {
	if err := w.ensure(len(vs)); err != nil {
		return err
	}
	for i, v := range vs {
		w.buf[w.off+i] = uint8(v)
	}
	w.off += len(vs)
	return nil
}

func (w *Writer) WriteBoolArray(vs []bool) error {
	if err := w.ensure(len(vs)); err != nil {
		return err
	}
	for i, v := range vs {
		b := uint8(0)
		if v {
			b = 1
		}
		w.buf[w.off+i] = b
	}
	w.off += len(vs)
	return nil
}

func (w *Writer) WriteUint16Array(vs []uint16) error {
	if err := w.ensure(2 * len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		binary.BigEndian.PutUint16(w.buf[w.off:], v)
		w.off += 2
	}
	return nil
}

func (w *Writer) WriteInt16Array(vs []int16) error {
	if err := w.ensure(2 * len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		binary.BigEndian.PutUint16(w.buf[w.off:], uint16(v))
		w.off += 2
	}
	return nil
}

func (w *Writer) WriteUint32Array(vs []uint32) error {
	if err := w.ensure(4 * len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		binary.BigEndian.PutUint32(w.buf[w.off:], v)
		w.off += 4
	}
	return nil
}

func (w *Writer) WriteInt32Array(vs []int32) error {
	if err := w.ensure(4 * len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		binary.BigEndian.PutUint32(w.buf[w.off:], uint32(v))
		w.off += 4
	}
	return nil
}

func (w *Writer) WriteUint64Array(vs []uint64) error {
	if err := w.ensure(8 * len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		binary.BigEndian.PutUint64(w.buf[w.off:], v)
		w.off += 8
	}
	return nil
}

func (w *Writer) WriteInt64Array(vs []int64) error {
	if err := w.ensure(8 * len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		binary.BigEndian.PutUint64(w.buf[w.off:], uint64(v))
		w.off += 8
	}
	return nil
}

func (w *Writer) WriteFloat32Array(vs []float32) error {
	if err := w.ensure(4 * len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		binary.BigEndian.PutUint32(w.buf[w.off:], math.Float32bits(v))
		w.off += 4
	}
	return nil
}

func (w *Writer) WriteFloat64Array(vs []float64) error {
	if err := w.ensure(8 * len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		binary.BigEndian.PutUint64(w.buf[w.off:], math.Float64bits(v))
		w.off += 8
	}
	return nil
}
