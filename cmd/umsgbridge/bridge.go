package main

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/embedwire/umsg"
	"github.com/embedwire/umsg/internal/observability"
)

// byteLink is the minimal surface the pump needs from a transport.
type byteLink interface {
	ReadByte() (byte, bool)
	Write(p []byte) bool
}

// tap observes one direction of the bridged stream without consuming it.
// A Framer replays every forwarded byte so packet counts and framing errors
// show up in the metrics even though the bridge never decodes payloads.
type tap struct {
	direction string
	framer    *umsg.Framer
}

func newTap(direction string, maxPayload int) *tap {
	t := &tap{
		direction: direction,
		framer:    umsg.NewFramer(umsg.MaxPacketSize(maxPayload)),
	}
	t.framer.OnPacket(func(frame []byte) error {
		observability.RecordPacket(direction)
		return nil
	})
	return t
}

func (t *tap) observe(b byte) {
	if err := t.framer.ProcessByte(b); err != nil {
		observability.RecordFrameError(t.direction, errorKind(err))
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, umsg.ErrCobsDecodeFailed):
		return "cobs"
	case errors.Is(err, umsg.ErrCrcMismatch):
		return "crc"
	case errors.Is(err, umsg.ErrFrameTooLarge):
		return "too_large"
	case errors.Is(err, umsg.ErrFrameHeaderSize):
		return "short"
	default:
		return "other"
	}
}

// pump forwards bytes in both directions until stop is closed. Chunks are
// accumulated per poll round so the write side sees batched writes rather
// than byte-at-a-time syscalls.
func pump(serialSide, tcpSide byteLink, maxPayload int, stop <-chan struct{}, logger zerolog.Logger) {
	s2t := newTap("serial_to_tcp", maxPayload)
	t2s := newTap("tcp_to_serial", maxPayload)

	chunk := make([]byte, 0, 512)
	for {
		select {
		case <-stop:
			logger.Info().Msg("bridge stopping")
			return
		default:
		}

		moved := false

		chunk = chunk[:0]
		for len(chunk) < cap(chunk) {
			b, ok := serialSide.ReadByte()
			if !ok {
				break
			}
			chunk = append(chunk, b)
			s2t.observe(b)
		}
		if len(chunk) > 0 {
			moved = true
			observability.RecordBytes("serial_to_tcp", len(chunk))
			if !tcpSide.Write(chunk) {
				logger.Error().Msg("tcp write failed, dropping chunk")
			}
		}

		chunk = chunk[:0]
		for len(chunk) < cap(chunk) {
			b, ok := tcpSide.ReadByte()
			if !ok {
				break
			}
			chunk = append(chunk, b)
			t2s.observe(b)
		}
		if len(chunk) > 0 {
			moved = true
			observability.RecordBytes("tcp_to_serial", len(chunk))
			if !serialSide.Write(chunk) {
				logger.Error().Msg("serial write failed, dropping chunk")
			}
		}

		if !moved {
			time.Sleep(time.Millisecond)
		}
	}
}
