package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profile != ProfileNRF21540 {
		t.Errorf("default profile = %q, want %q", cfg.Profile, ProfileNRF21540)
	}
	if cfg.GPIO.Chip != "gpiochip0" {
		t.Errorf("default chip = %q, want gpiochip0", cfg.GPIO.Chip)
	}
	if !cfg.GPIO.TXEN.Wired() || cfg.GPIO.PDN.Wired() {
		t.Errorf("default wiring unexpected: %+v", cfg.GPIO)
	}
	if cfg.Tuning.GainDB != 20 {
		t.Errorf("default gain = %d, want 20", cfg.Tuning.GainDB)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fem.yaml")
	data := `
profile: uartfem
uart:
  tty: /dev/ttyAMA0
  baud: 115200
tuning:
  gainDb: 12
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profile != ProfileUARTFEM {
		t.Errorf("profile = %q, want %q", cfg.Profile, ProfileUARTFEM)
	}
	if cfg.UART.TTY != "/dev/ttyAMA0" || cfg.UART.Baud != 115200 {
		t.Errorf("uart = %+v", cfg.UART)
	}
	if cfg.Tuning.GainDB != 12 {
		t.Errorf("gain = %d, want 12", cfg.Tuning.GainDB)
	}
	// Untouched sections keep their defaults.
	if cfg.GPIO.Chip != "gpiochip0" {
		t.Errorf("chip = %q, want default gpiochip0", cfg.GPIO.Chip)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name: "nrf21540 without control lines",
			mutate: func(cfg *Config) {
				cfg.GPIO.TXEN.Offset = -1
				cfg.GPIO.RXEN.Offset = -1
			},
			wantErr: true,
		},
		{
			name: "uartfem without tty",
			mutate: func(cfg *Config) {
				cfg.Profile = ProfileUARTFEM
				cfg.UART.TTY = ""
			},
			wantErr: true,
		},
		{
			name: "uartfem with bad baud",
			mutate: func(cfg *Config) {
				cfg.Profile = ProfileUARTFEM
				cfg.UART.Baud = 0
			},
			wantErr: true,
		},
		{
			name: "unknown profile",
			mutate: func(cfg *Config) {
				cfg.Profile = "sky66112"
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := getDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
