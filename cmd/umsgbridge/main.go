// umsgbridge forwards a umsg byte stream between a serial port and a TCP
// peer, exposing packet and error counters on an admin endpoint. It never
// decodes payloads; framing stays intact end to end.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/embedwire/umsg/internal/logging"
	"github.com/embedwire/umsg/transports/serial"
	"github.com/embedwire/umsg/transports/tcpclient"
)

func main() {
	configPath := flag.String("config", "bridge.toml", "path to bridge config")
	flag.Parse()

	logger := logging.ConfigureRuntime("umsgbridge")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	serialSide, err := serial.Open(cfg.SerialDevice, serial.Config{BaudRate: cfg.SerialBaud})
	if err != nil {
		logger.Fatal().Err(err).Msg("serial")
	}
	defer serialSide.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tcpSide, err := tcpclient.Dial(ctx, cfg.TCPAddr)
	if err != nil {
		logger.Fatal().Err(err).Msg("tcp")
	}
	defer tcpSide.Close()

	go func() {
		router := adminRouter(cfg)
		logger.Info().Str("addr", cfg.AdminAddr).Msg("admin listening")
		if err := router.Run(cfg.AdminAddr); err != nil {
			logger.Error().Err(err).Msg("admin server exited")
		}
	}()

	logger.Info().
		Str("serial", cfg.SerialDevice).
		Str("tcp", cfg.TCPAddr).
		Msg("bridging")

	pump(serialSide, tcpSide, cfg.MaxPayload, ctx.Done(), logger)
}
