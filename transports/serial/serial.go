// Package serial adapts a serial port to the umsg transport contract.
package serial

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"

	"github.com/embedwire/umsg/transports/internal/stream"
)

// DefaultQueueSize bounds the bytes buffered between the port and Poll.
const DefaultQueueSize = 4096

// Config selects the port settings. Zero values fall back to 115200 8N1.
type Config struct {
	BaudRate int
}

// Transport is an open serial port.
type Transport struct {
	*stream.Transport
	device string
}

// Open opens the named device (e.g. /dev/ttyUSB0) in 8N1 framing.
func Open(device string, cfg Config) (*Transport, error) {
	baud := cfg.BaudRate
	if baud == 0 {
		baud = 115200
	}
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", device, err)
	}
	logger := log.With().Str("transport", "serial").Str("device", device).Int("baud", baud).Logger()
	logger.Info().Msg("port open")
	return &Transport{
		Transport: stream.New(port, DefaultQueueSize, logger),
		device:    device,
	}, nil
}

// Device returns the opened device path.
func (t *Transport) Device() string { return t.device }
