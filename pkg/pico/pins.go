//go:build pico
// +build pico

// Package pico drives FEM control lines through the TinyGo machine package
// on RP2040 class boards.
package pico

import (
	"machine"

	"github.com/ahasztag/hal-nordic/pkg/hal"
)

// ControlPin is a machine.Pin backed FEM control line.
type ControlPin struct {
	pin        machine.Pin
	activeHigh bool
	actTsk     hal.TaskID
	deaTsk     hal.TaskID
}

// NewControlPin configures the pin as an output, drives it inactive and
// registers its set/clear tasks with the registrar.
func NewControlPin(pin machine.Pin, activeHigh bool, reg hal.TaskRegistrar) *ControlPin {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	obj := &ControlPin{pin: pin, activeHigh: activeHigh}
	obj.Drive(false)
	obj.actTsk = reg.RegisterTask(func() { obj.Drive(true) })
	obj.deaTsk = reg.RegisterTask(func() { obj.Drive(false) })
	return obj
}

func (obj *ControlPin) ActivateTask() hal.TaskID { return obj.actTsk }

func (obj *ControlPin) DeactivateTask() hal.TaskID { return obj.deaTsk }

// Drive sets the line level with immediate effect.
func (obj *ControlPin) Drive(active bool) {
	obj.pin.Set(active == obj.activeHigh)
}
