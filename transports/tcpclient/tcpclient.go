// Package tcpclient adapts a TCP connection to the umsg transport contract.
package tcpclient

import (
	"context"
	"fmt"
	"net"

	"github.com/rs/zerolog/log"

	"github.com/embedwire/umsg/transports/internal/stream"
)

// DefaultQueueSize bounds the bytes buffered between the socket and Poll.
const DefaultQueueSize = 8192

// Transport is a connected TCP byte stream.
type Transport struct {
	*stream.Transport
	remote string
}

// Dial connects to addr (host:port).
func Dial(ctx context.Context, addr string) (*Transport, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("tcpclient: dial %s: %w", addr, err)
	}
	logger := log.With().Str("transport", "tcp").Str("remote", addr).Logger()
	logger.Info().Msg("connected")
	return &Transport{
		Transport: stream.New(conn, DefaultQueueSize, logger),
		remote:    addr,
	}, nil
}

// Wrap adapts an already-established connection, e.g. one side of an
// accepted listener socket.
func Wrap(conn net.Conn) *Transport {
	remote := conn.RemoteAddr().String()
	logger := log.With().Str("transport", "tcp").Str("remote", remote).Logger()
	return &Transport{
		Transport: stream.New(conn, DefaultQueueSize, logger),
		remote:    remote,
	}
}

// Remote returns the peer address.
func (t *Transport) Remote() string { return t.remote }
