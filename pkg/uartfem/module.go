package uartfem

import (
	"fmt"
	"sort"

	"github.com/ahasztag/hal-nordic/pkg/fem"
	"github.com/ahasztag/hal-nordic/pkg/hal"
)

// radioPowers lists the achievable radio-stage output powers in dBm,
// ascending.
var radioPowers = []int8{-40, -20, -16, -12, -8, -4, 0, 2, 3, 4, 5, 6, 7, 8}

// Module is the hal.FrontEnd profile of a UART-configured FEM board: gain
// and timing live in the board registers, activation runs over the CTX and
// CRX control lines.
type Module struct {
	chip *Chip
	ctx  hal.ControlPin
	crx  hal.ControlPin
}

// NewModule builds the profile. Either control pin may be nil when that
// path is not wired.
func NewModule(chip *Chip, ctx, crx hal.ControlPin) (*Module, error) {
	if chip == nil {
		return nil, fmt.Errorf("config chip is required: %w", fem.ErrInvalidConfiguration)
	}
	if ctx == nil && crx == nil {
		return nil, fmt.Errorf("at least one of CTX, CRX must be wired: %w", fem.ErrInvalidConfiguration)
	}
	return &Module{chip: chip, ctx: ctx, crx: crx}, nil
}

func (obj *Module) Supports(f hal.Functionality) bool {
	switch f {
	case hal.PA:
		return obj.ctx != nil
	case hal.LNA:
		return obj.crx != nil
	}
	return false
}

func (obj *Module) pin(f hal.Functionality) (hal.ControlPin, error) {
	switch f {
	case hal.PA:
		if obj.ctx != nil {
			return obj.ctx, nil
		}
	case hal.LNA:
		if obj.crx != nil {
			return obj.crx, nil
		}
	}
	return nil, fmt.Errorf("no control line for %s", f)
}

func (obj *Module) ActivateTask(f hal.Functionality) (hal.TaskID, error) {
	p, err := obj.pin(f)
	if err != nil {
		return 0, err
	}
	return p.ActivateTask(), nil
}

func (obj *Module) DeactivateTask(f hal.Functionality) (hal.TaskID, error) {
	p, err := obj.pin(f)
	if err != nil {
		return 0, err
	}
	return p.DeactivateTask(), nil
}

func (obj *Module) DriveInactive(f hal.Functionality) {
	if p, err := obj.pin(f); err == nil {
		p.Drive(false)
	}
}

// ActivationLead reads the lead programmed into the board's timing
// registers.
func (obj *Module) ActivationLead(f hal.Functionality) uint32 {
	if f == hal.LNA {
		return uint32(obj.chip.registers[TIM1].GetValue())
	}
	return uint32(obj.chip.registers[TIM0].GetValue())
}

// GainSet writes the gain register over the config link. Only table values
// are achievable.
func (obj *Module) GainSet(db int8) error {
	code, err := gainCodeFor(db)
	if err != nil {
		return fmt.Errorf("%s: %w", err, fem.ErrInvalidConfiguration)
	}
	return NewConfigBuilder(obj.chip).Gain(code).WritePermanentConfig()
}

func (obj *Module) Gain() int8 {
	if obj.ctx == nil {
		return 0
	}
	gain := obj.chip.registers[GAIN].(*Gain)
	return gainDBMap[gain.code]
}

func (obj *Module) GainModes() []int8 {
	modes := make([]int8, 0, len(gainDBMap))
	for _, db := range gainDBMap {
		modes = append(modes, db)
	}
	sort.Slice(modes, func(a, b int) bool { return modes[a] < modes[b] })
	return modes
}

func (obj *Module) RadioPowers() []int8 {
	return radioPowers
}

// LegacyChannelOverride is never honored by UART-configured boards.
func (obj *Module) LegacyChannelOverride() bool {
	return false
}
