// Package nrf21540 implements the front-end profile of a GPIO-controlled
// nRF21540 range extender: TX_EN/RX_EN activation lines, a MODE line that
// selects between the two PA gain presets and a PDN power-down line.
package nrf21540

import (
	"fmt"

	"github.com/ahasztag/hal-nordic/pkg/fem"
	"github.com/ahasztag/hal-nordic/pkg/hal"
)

// PA gain presets selected by the MODE line.
const (
	GAIN_POUTA int8 = 20 // MODE low
	GAIN_POUTB int8 = 10 // MODE high
)

// Control line settle times in microseconds. The activation task must fire
// this far ahead of the radio operation.
const (
	PA_LEAD_US  = 13
	LNA_LEAD_US = 13
)

// radioPowers lists the achievable radio-stage output powers in dBm for the
// nRF52 radio the device is paired with, ascending.
var radioPowers = []int8{-40, -20, -16, -12, -8, -4, 0, 2, 3, 4, 5, 6, 7, 8}

// Config carries the control lines of the device. TXEN or RXEN may be nil
// when the corresponding path is not wired; MODE and PDN are optional.
type Config struct {
	TXEN hal.ControlPin
	RXEN hal.ControlPin
	MODE hal.ControlPin
	PDN  hal.ControlPin

	// HonorChannelOverride marks hardware families where an event
	// descriptor may carry an explicit fabric channel id.
	HonorChannelOverride bool
}

// FEM is the nRF21540 profile. Implements hal.FrontEnd.
type FEM struct {
	cfg  Config
	gain int8
}

func New(cfg Config) (*FEM, error) {
	if cfg.TXEN == nil && cfg.RXEN == nil {
		return nil, fmt.Errorf("at least one of TXEN, RXEN must be wired: %w", fem.ErrInvalidConfiguration)
	}
	f := &FEM{cfg: cfg, gain: GAIN_POUTA}
	if cfg.MODE != nil {
		// MODE low selects POUTA after power-up.
		cfg.MODE.Drive(false)
	}
	return f, nil
}

func (obj *FEM) Supports(f hal.Functionality) bool {
	switch f {
	case hal.PA:
		return obj.cfg.TXEN != nil
	case hal.LNA:
		return obj.cfg.RXEN != nil
	}
	return false
}

func (obj *FEM) pin(f hal.Functionality) (hal.ControlPin, error) {
	switch f {
	case hal.PA:
		if obj.cfg.TXEN != nil {
			return obj.cfg.TXEN, nil
		}
	case hal.LNA:
		if obj.cfg.RXEN != nil {
			return obj.cfg.RXEN, nil
		}
	}
	return nil, fmt.Errorf("no control line for %s", f)
}

func (obj *FEM) ActivateTask(f hal.Functionality) (hal.TaskID, error) {
	p, err := obj.pin(f)
	if err != nil {
		return 0, err
	}
	return p.ActivateTask(), nil
}

func (obj *FEM) DeactivateTask(f hal.Functionality) (hal.TaskID, error) {
	p, err := obj.pin(f)
	if err != nil {
		return 0, err
	}
	return p.DeactivateTask(), nil
}

func (obj *FEM) DriveInactive(f hal.Functionality) {
	if p, err := obj.pin(f); err == nil {
		p.Drive(false)
	}
}

func (obj *FEM) ActivationLead(f hal.Functionality) uint32 {
	if f == hal.LNA {
		return LNA_LEAD_US
	}
	return PA_LEAD_US
}

// GainSet selects a PA gain preset. Only the two MODE presets are
// achievable on this device.
func (obj *FEM) GainSet(db int8) error {
	switch db {
	case GAIN_POUTA:
		if obj.cfg.MODE != nil {
			obj.cfg.MODE.Drive(false)
		}
	case GAIN_POUTB:
		if obj.cfg.MODE == nil {
			return fmt.Errorf("MODE line not wired, gain fixed at %d dB: %w",
				GAIN_POUTA, fem.ErrInvalidConfiguration)
		}
		obj.cfg.MODE.Drive(true)
	default:
		return fmt.Errorf("gain %d dB not achievable: %w", db, fem.ErrInvalidConfiguration)
	}
	obj.gain = db
	return nil
}

func (obj *FEM) Gain() int8 {
	if obj.cfg.TXEN == nil {
		return 0
	}
	return obj.gain
}

func (obj *FEM) GainModes() []int8 {
	if obj.cfg.MODE == nil {
		return []int8{GAIN_POUTA}
	}
	return []int8{GAIN_POUTB, GAIN_POUTA}
}

func (obj *FEM) RadioPowers() []int8 {
	return radioPowers
}

func (obj *FEM) LegacyChannelOverride() bool {
	return obj.cfg.HonorChannelOverride
}

// PowerUp releases the PDN line, waking the device.
func (obj *FEM) PowerUp() {
	if obj.cfg.PDN != nil {
		obj.cfg.PDN.Drive(true)
	}
}

// PowerDown asserts the PDN line. All control lines should be inactive
// first, see fem.Controller.Disable.
func (obj *FEM) PowerDown() {
	if obj.cfg.PDN != nil {
		obj.cfg.PDN.Drive(false)
	}
}
