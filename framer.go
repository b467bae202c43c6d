package umsg

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/embedwire/umsg/cobs"
)

// PacketFunc receives a complete, CRC-validated frame. The slice aliases the
// Framer's receive buffer and is valid only until the callback returns; copy
// bytes out to retain them. Do not feed bytes back into the Framer from
// inside the callback.
type PacketFunc func(frame []byte) error

// Framer turns a byte stream into validated frames and frames into wire
// packets. Wire packet layout: COBS(frame || crc32_be) || 0x00.
//
// The receive buffer is allocated once at construction; ProcessByte does not
// allocate.
type Framer struct {
	rx       []byte
	rxIndex  int
	onPacket PacketFunc
}

// NewFramer returns a Framer that accepts encoded packets up to
// maxPacketSize bytes (delimiter not counted against the buffer).
func NewFramer(maxPacketSize int) *Framer {
	return &Framer{rx: make([]byte, maxPacketSize)}
}

// OnPacket installs the single downstream sink, replacing any prior one.
func (f *Framer) OnPacket(fn PacketFunc) {
	f.onPacket = fn
}

// CreatePacket appends the CRC32 trailer to frame, COBS-encodes the pair
// into packet, writes the 0x00 delimiter, and returns the total packet
// length. The packet buffer must hold at least two bytes.
func (f *Framer) CreatePacket(frame, packet []byte) (int, error) {
	if len(packet) < 2 {
		return 0, ErrInvalidParameter
	}

	var crcBytes [crcSize]byte
	binary.BigEndian.PutUint32(crcBytes[:], crc32.ChecksumIEEE(frame))

	n, err := cobs.EncodePair(packet, frame, crcBytes[:])
	if err != nil {
		return 0, ErrInvalidParameter
	}
	if n >= len(packet) {
		return 0, ErrInvalidParameter
	}
	packet[n] = 0x00
	return n + 1, nil
}

// ProcessByte feeds one received byte into the deframer. On the 0x00
// delimiter the accumulated packet is COBS-decoded in place, the CRC trailer
// is verified, and the enclosed frame is handed to the registered callback;
// the callback's error is returned as-is. Every failure resets the
// accumulator so the stream resynchronizes at the next delimiter.
func (f *Framer) ProcessByte(b byte) error {
	if b == 0x00 {
		if f.rxIndex == 0 {
			// Stray delimiter or stream start-up.
			return nil
		}

		n := f.rxIndex
		f.rxIndex = 0
		decoded, err := cobs.DecodeInPlace(f.rx[:n])
		if err != nil {
			return ErrCobsDecodeFailed
		}
		if decoded < crcSize {
			return ErrFrameHeaderSize
		}

		frameLen := decoded - crcSize
		received := binary.BigEndian.Uint32(f.rx[frameLen:])
		if received != crc32.ChecksumIEEE(f.rx[:frameLen]) {
			return ErrCrcMismatch
		}

		if f.onPacket == nil {
			return nil
		}
		return f.onPacket(f.rx[:frameLen])
	}

	if f.rxIndex >= len(f.rx) {
		// Overflow; drop and resync on the next delimiter.
		f.rxIndex = 0
		return ErrFrameTooLarge
	}
	f.rx[f.rxIndex] = b
	f.rxIndex++
	return nil
}
