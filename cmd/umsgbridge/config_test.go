package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
serial_device = "/dev/ttyUSB0"
tcp_addr = "10.0.0.2:7000"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SerialBaud != 115200 {
		t.Fatalf("baud = %d, want default 115200", cfg.SerialBaud)
	}
	if cfg.AdminAddr != ":9700" {
		t.Fatalf("admin = %q", cfg.AdminAddr)
	}
	if cfg.MaxPayload != 512 {
		t.Fatalf("max payload = %d", cfg.MaxPayload)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
serial_device = "/dev/ttyACM1"
serial_baud = 921600
tcp_addr = "127.0.0.1:7000"
admin_addr = ":8088"
max_payload = 128
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SerialBaud != 921600 || cfg.AdminAddr != ":8088" || cfg.MaxPayload != 128 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigRequiresEndpoints(t *testing.T) {
	path := writeConfig(t, `serial_device = "/dev/ttyUSB0"`)
	if _, err := loadConfig(path); err == nil {
		t.Fatalf("missing tcp_addr accepted")
	}

	path = writeConfig(t, `tcp_addr = "1.2.3.4:5"`)
	if _, err := loadConfig(path); err == nil {
		t.Fatalf("missing serial_device accepted")
	}
}
