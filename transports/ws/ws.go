// Package ws adapts a WebSocket connection to the umsg transport contract.
// Each binary WebSocket message carries an arbitrary chunk of the byte
// stream; packet boundaries come from the COBS delimiter, not from message
// boundaries.
package ws

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultQueueSize bounds the bytes buffered between the socket and Poll.
const DefaultQueueSize = 8192

// Transport is a WebSocket byte stream.
type Transport struct {
	conn   *websocket.Conn
	rx     chan byte
	logger zerolog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to a ws:// or wss:// URL.
func Dial(url string) (*Transport, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("ws: dial %s: %w", url, err)
	}
	logger := log.With().Str("transport", "ws").Str("url", url).Logger()
	logger.Info().Msg("connected")
	return wrap(conn, logger), nil
}

// Wrap adapts an already-upgraded server-side connection.
func Wrap(conn *websocket.Conn) *Transport {
	logger := log.With().Str("transport", "ws").Str("remote", conn.RemoteAddr().String()).Logger()
	return wrap(conn, logger)
}

func wrap(conn *websocket.Conn, logger zerolog.Logger) *Transport {
	t := &Transport{
		conn:   conn,
		rx:     make(chan byte, DefaultQueueSize),
		logger: logger,
		done:   make(chan struct{}),
	}
	go t.readLoop()
	return t
}

func (t *Transport) readLoop() {
	for {
		kind, data, err := t.conn.ReadMessage()
		if err != nil {
			select {
			case <-t.done:
			default:
				t.logger.Error().Err(err).Msg("websocket read failed")
			}
			return
		}
		if kind != websocket.BinaryMessage {
			t.logger.Warn().Int("type", kind).Msg("ignoring non-binary message")
			continue
		}
		for _, b := range data {
			select {
			case t.rx <- b:
			default:
				t.logger.Warn().Msg("rx queue full, dropping byte")
			}
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

// Write sends p as one binary message.
func (t *Transport) Write(p []byte) bool {
	if err := t.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		t.logger.Error().Err(err).Msg("websocket write failed")
		return false
	}
	return true
}

// Close closes the connection and stops the read loop.
func (t *Transport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		err = t.conn.Close()
	})
	return err
}
