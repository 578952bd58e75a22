// Package config loads the hardware description of the front-end module:
// which profile drives it, where its control lines sit and how it is tuned.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Profile kinds.
const (
	ProfileNRF21540 = "nrf21540"
	ProfileUARTFEM  = "uartfem"
)

// Config describes one front-end module installation.
type Config struct {
	Profile string       `yaml:"profile"`
	GPIO    GPIOConfig   `yaml:"gpio"`
	UART    UARTConfig   `yaml:"uart"`
	Tuning  TuningConfig `yaml:"tuning"`
}

// GPIOConfig holds the control line mapping.
type GPIOConfig struct {
	Chip      string    `yaml:"chip"`
	TXEN      PinConfig `yaml:"txen"`
	RXEN      PinConfig `yaml:"rxen"`
	Mode      PinConfig `yaml:"mode"`
	PDN       PinConfig `yaml:"pdn"`
	PowerGood int       `yaml:"powerGood"`
}

// PinConfig holds one line assignment. Offset -1 means not wired.
type PinConfig struct {
	Offset     int  `yaml:"offset"`
	ActiveHigh bool `yaml:"activeHigh"`
}

// Wired reports whether the line is present.
func (p PinConfig) Wired() bool { return p.Offset >= 0 }

// UARTConfig holds the configuration link settings of UART-configured
// boards.
type UARTConfig struct {
	TTY  string `yaml:"tty"`
	Baud int    `yaml:"baud"`
}

// TuningConfig holds the logical FEM parameters applied at start-up.
type TuningConfig struct {
	GainDB    int8   `yaml:"gainDb"`
	PALeadUS  uint32 `yaml:"paLeadUs"`
	LNALeadUS uint32 `yaml:"lnaLeadUs"`
}

func getDefaultConfig() *Config {
	return &Config{
		Profile: ProfileNRF21540,
		GPIO: GPIOConfig{
			Chip:      "gpiochip0",
			TXEN:      PinConfig{Offset: 23, ActiveHigh: true},
			RXEN:      PinConfig{Offset: 24, ActiveHigh: true},
			Mode:      PinConfig{Offset: 25, ActiveHigh: true},
			PDN:       PinConfig{Offset: -1},
			PowerGood: -1,
		},
		UART: UARTConfig{
			TTY:  "/dev/ttyS0",
			Baud: 9600,
		},
		Tuning: TuningConfig{
			GainDB:    20,
			PALeadUS:  13,
			LNALeadUS: 13,
		},
	}
}

// Load builds the configuration from defaults overlaid with the given YAML
// file. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := getDefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if err := loadFromFile(cfg, path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks the structural consistency of the description.
func (cfg *Config) Validate() error {
	switch cfg.Profile {
	case ProfileNRF21540:
		if !cfg.GPIO.TXEN.Wired() && !cfg.GPIO.RXEN.Wired() {
			return fmt.Errorf("profile %s needs at least one of txen, rxen", cfg.Profile)
		}
	case ProfileUARTFEM:
		if cfg.UART.TTY == "" {
			return fmt.Errorf("profile %s needs uart.tty", cfg.Profile)
		}
		if cfg.UART.Baud <= 0 {
			return fmt.Errorf("profile %s needs a positive uart.baud", cfg.Profile)
		}
	default:
		return fmt.Errorf("unknown profile %q", cfg.Profile)
	}
	return nil
}
