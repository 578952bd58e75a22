package sim

import "github.com/ahasztag/hal-nordic/pkg/hal"

// Pin is a simulated FEM control line. It records level changes so tests
// can assert on activation ordering.
type Pin struct {
	name   string
	level  bool
	rises  int
	falls  int
	actTsk hal.TaskID
	deaTsk hal.TaskID
}

// NewPin creates a pin and registers its set/clear tasks with the registrar.
func NewPin(name string, reg hal.TaskRegistrar) *Pin {
	p := &Pin{name: name}
	p.actTsk = reg.RegisterTask(func() { p.set(true) })
	p.deaTsk = reg.RegisterTask(func() { p.set(false) })
	return p
}

// ActivateTask implements hal.ControlPin.
func (p *Pin) ActivateTask() hal.TaskID { return p.actTsk }

// DeactivateTask implements hal.ControlPin.
func (p *Pin) DeactivateTask() hal.TaskID { return p.deaTsk }

// Drive implements hal.ControlPin.
func (p *Pin) Drive(active bool) { p.set(active) }

func (p *Pin) set(active bool) {
	if active && !p.level {
		p.rises++
	}
	if !active && p.level {
		p.falls++
	}
	p.level = active
}

// Level returns the current line level.
func (p *Pin) Level() bool { return p.level }

// Rises returns how many inactive-to-active transitions occurred.
func (p *Pin) Rises() int { return p.rises }

// Falls returns how many active-to-inactive transitions occurred.
func (p *Pin) Falls() int { return p.falls }

// Name returns the pin label.
func (p *Pin) Name() string { return p.name }
