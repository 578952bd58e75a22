// Package rpi drives FEM control lines through the Linux GPIO character
// device, for Raspberry Pi class hosts. 5.5+ kernel needed.
package rpi

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mazen160/go-random"
	"github.com/warthog618/gpiod"

	"github.com/ahasztag/hal-nordic/pkg/hal"
)

const powerGoodTimeout = 1 * time.Second

// Handler owns the GPIO chip handle, the requested control lines and the
// optional power-good input of the FEM board.
type Handler struct {
	chip  *gpiod.Chip
	lines []*gpiod.Line

	pgLine      *gpiod.Line
	muPGWaitMap sync.Mutex            // map protection mutex
	pgWaitGroup map[string]chan error // holds channels that wait for rising PG edge
}

// NewHandler opens the GPIO chip. pgPin is the offset of the board's
// power-good line, -1 if not wired.
func NewHandler(gpioChip string, pgPin int) (*Handler, error) {
	c, err := gpiod.NewChip(gpioChip, gpiod.WithConsumer("hal-nordic"))
	if err != nil {
		return nil, fmt.Errorf("failed to create GPIO chip: %w", err)
	}
	obj := &Handler{
		chip:        c,
		pgWaitGroup: make(map[string]chan error),
	}
	if pgPin >= 0 {
		obj.pgLine, err = c.RequestLine(pgPin, gpiod.WithEventHandler(obj.onPGRiseEvent), gpiod.WithRisingEdge)
		if err != nil {
			return nil, fmt.Errorf("failed to request power-good GPIO line: %w", err)
		}
	}
	return obj, nil
}

// RequestControlPin requests an output line and registers its set/clear
// tasks with the registrar. The line starts inactive.
func (obj *Handler) RequestControlPin(offset int, activeHigh bool, reg hal.TaskRegistrar) (*ControlPin, error) {
	inactive := 0
	if !activeHigh {
		inactive = 1
	}
	line, err := obj.chip.RequestLine(offset, gpiod.AsOutput(inactive))
	if err != nil {
		return nil, fmt.Errorf("failed to request GPIO line %d: %w", offset, err)
	}
	obj.lines = append(obj.lines, line)

	pin := &ControlPin{line: line, activeHigh: activeHigh}
	pin.actTsk = reg.RegisterTask(func() { pin.Drive(true) })
	pin.deaTsk = reg.RegisterTask(func() { pin.Drive(false) })
	return pin, nil
}

// WaitPowerGood blocks until the board reports power good, or times out.
// Returns immediately when no power-good line is wired.
func (obj *Handler) WaitPowerGood() error {
	if obj.pgLine == nil {
		return nil
	}
	val, err := obj.pgLine.Value()
	if err != nil {
		return fmt.Errorf("failed to check power-good state: %w", err)
	}
	if val == 1 {
		return nil
	}

	ch := make(chan error)
	id, err := random.String(16)
	if err != nil {
		return fmt.Errorf("failed to generate random id: %w", err)
	}
	obj.muPGWaitMap.Lock()
	obj.pgWaitGroup[id] = ch
	obj.muPGWaitMap.Unlock()
	select {
	case <-time.After(powerGoodTimeout):
		return fmt.Errorf("power-good wait timeouted")
	case <-ch:
		return nil
	}
}

func (obj *Handler) onPGRiseEvent(evt gpiod.LineEvent) {
	obj.muPGWaitMap.Lock()
	defer obj.muPGWaitMap.Unlock()
	for id, ch := range obj.pgWaitGroup {
		ch <- nil
		close(ch)
		delete(obj.pgWaitGroup, id)
	}
}

func (obj *Handler) Close() (err error) {
	for _, line := range obj.lines {
		if cerr := line.Close(); cerr != nil {
			err = fmt.Errorf("failed to close GPIO line: %w", cerr)
		}
	}
	if obj.pgLine != nil {
		if cerr := obj.pgLine.Close(); cerr != nil {
			err = fmt.Errorf("failed to close power-good line: %w", cerr)
		}
	}
	if cerr := obj.chip.Close(); cerr != nil {
		err = fmt.Errorf("failed to close GPIO chip: %w", cerr)
	}
	return err
}

// ControlPin is a gpiod-backed FEM control line. Without a hardware event
// fabric on this host, its tasks are software tasks dispatched by the
// fabric implementation in use.
type ControlPin struct {
	line       *gpiod.Line
	activeHigh bool
	actTsk     hal.TaskID
	deaTsk     hal.TaskID
}

func (obj *ControlPin) ActivateTask() hal.TaskID { return obj.actTsk }

func (obj *ControlPin) DeactivateTask() hal.TaskID { return obj.deaTsk }

// Drive sets the line level. The write is assumed always possible, a failed
// syscall is only logged.
func (obj *ControlPin) Drive(active bool) {
	value := 0
	if active == obj.activeHigh {
		value = 1
	}
	if err := obj.line.SetValue(value); err != nil {
		log.Printf("failed to set GPIO line value: %s", err)
	}
}
