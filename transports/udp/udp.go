// Package udp adapts a connected UDP socket to the umsg transport contract.
//
// Datagram boundaries are irrelevant to the protocol: packets are
// self-delimiting through COBS, so a wire packet may span datagrams or
// share one with its neighbors.
package udp

import (
	"fmt"
	"net"

	"github.com/rs/zerolog/log"

	"github.com/embedwire/umsg/transports/internal/stream"
)

// DefaultQueueSize bounds the bytes buffered between the socket and Poll.
const DefaultQueueSize = 8192

// Transport is a connected UDP byte stream.
type Transport struct {
	*stream.Transport
}

// Dial binds a UDP socket connected to addr (host:port). Only datagrams
// from that peer are received.
func Dial(addr string) (*Transport, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("udp: resolve %s: %w", addr, err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("udp: dial %s: %w", addr, err)
	}
	logger := log.With().Str("transport", "udp").Str("remote", addr).Logger()
	logger.Info().Msg("socket connected")
	return &Transport{Transport: stream.New(conn, DefaultQueueSize, logger)}, nil
}
