package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type fileConfig struct {
	SerialDevice string `toml:"serial_device"`
	SerialBaud   int    `toml:"serial_baud"`
	TCPAddr      string `toml:"tcp_addr"`
	AdminAddr    string `toml:"admin_addr"`
	MaxPayload   int    `toml:"max_payload"`
}

type bridgeConfig struct {
	SerialDevice string
	SerialBaud   int
	TCPAddr      string
	AdminAddr    string
	MaxPayload   int
}

func defaultConfig() bridgeConfig {
	return bridgeConfig{
		SerialBaud: 115200,
		AdminAddr:  ":9700",
		MaxPayload: 512,
	}
}

func loadConfig(path string) (bridgeConfig, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return bridgeConfig{}, fmt.Errorf("load bridge config: %w", err)
	}

	if meta.IsDefined("serial_device") {
		cfg.SerialDevice = strings.TrimSpace(raw.SerialDevice)
	}
	if meta.IsDefined("serial_baud") && raw.SerialBaud > 0 {
		cfg.SerialBaud = raw.SerialBaud
	}
	if meta.IsDefined("tcp_addr") {
		cfg.TCPAddr = strings.TrimSpace(raw.TCPAddr)
	}
	if meta.IsDefined("admin_addr") {
		cfg.AdminAddr = strings.TrimSpace(raw.AdminAddr)
	}
	if meta.IsDefined("max_payload") && raw.MaxPayload > 0 {
		cfg.MaxPayload = raw.MaxPayload
	}

	if cfg.SerialDevice == "" {
		return bridgeConfig{}, fmt.Errorf("bridge config: serial_device is required")
	}
	if cfg.TCPAddr == "" {
		return bridgeConfig{}, fmt.Errorf("bridge config: tcp_addr is required")
	}
	return cfg, nil
}
