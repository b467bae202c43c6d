// Package stream adapts an io.ReadWriteCloser to the non-blocking byte
// transport contract. A background goroutine drains the underlying
// connection into a bounded queue; ReadByte never blocks.
package stream

import (
	"errors"
	"io"
	"net"
	"sync"

	"github.com/rs/zerolog"
)

// Transport wraps a byte-stream connection. Create with New, release with
// Close. ReadByte and Write are intended for a single polling goroutine.
type Transport struct {
	conn   io.ReadWriteCloser
	rx     chan byte
	logger zerolog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// New starts draining conn into an internal queue of queueSize bytes.
// Bytes arriving while the queue is full are dropped; the framing layer
// resynchronizes on the next packet delimiter, exactly as it would after
// line noise.
func New(conn io.ReadWriteCloser, queueSize int, logger zerolog.Logger) *Transport {
	t := &Transport{
		conn:   conn,
		rx:     make(chan byte, queueSize),
		logger: logger,
		done:   make(chan struct{}),
	}
	go t.readLoop()
	return t
}

func (t *Transport) readLoop() {
	buf := make([]byte, 512)
	for {
		n, err := t.conn.Read(buf)
		for i := 0; i < n; i++ {
			select {
			case t.rx <- buf[i]:
			default:
				t.logger.Warn().Msg("rx queue full, dropping byte")
			}
		}
		if err != nil {
			select {
			case <-t.done:
			default:
				if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
					t.logger.Error().Err(err).Msg("transport read failed")
				}
			}
			return
		}
	}
}

// ReadByte pops one queued byte without blocking.
func (t *Transport) ReadByte() (byte, bool) {
	select {
	case b := <-t.rx:
		return b, true
	default:
		return 0, false
	}
}

// Write pushes p to the connection, reporting whether every byte was
// accepted.
func (t *Transport) Write(p []byte) bool {
	for len(p) > 0 {
		n, err := t.conn.Write(p)
		if err != nil {
			t.logger.Error().Err(err).Msg("transport write failed")
			return false
		}
		p = p[n:]
	}
	return true
}

// Close tears down the connection and stops the read loop.
func (t *Transport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		err = t.conn.Close()
	})
	return err
}
