// Package fem coordinates a radio transceiver with an external front-end
// module (PA/LNA), keeping the amplifiers powered only during the windows
// around actual transmission or reception. Activation and deactivation are
// wired as hardware event-to-task bindings: configuration calls return
// immediately and no software runs at trigger time.
package fem

import (
	"fmt"

	"github.com/ahasztag/hal-nordic/pkg/hal"
)

// Controller is the caller-facing coordination layer between the radio
// protocol driver and the front-end module. It assumes a single logical
// caller: all entries execute synchronously in the caller's context,
// concurrent calls must be serialized by the caller.
type Controller struct {
	fab hal.Fabric
	fe  hal.FrontEnd

	reg   bindingRegistry
	sched scheduler
	abort abortPath

	enabled bool
}

// NewController builds a controller around the injected fabric and FEM
// profile. The controller starts enabled.
func NewController(fab hal.Fabric, fe hal.FrontEnd) (*Controller, error) {
	if fab == nil || fe == nil {
		return nil, fmt.Errorf("fabric and front-end profile are required: %w", ErrInvalidConfiguration)
	}
	c := &Controller{fab: fab, fe: fe, enabled: true}
	c.sched = scheduler{fab: fab, fe: fe, reg: &c.reg}
	c.abort = abortPath{fab: fab, reg: &c.reg}
	return c, nil
}

// Enable re-enables configuration after a Disable.
func (c *Controller) Enable() {
	c.enabled = true
}

// Disable switches the front-end module off to preserve power. Disabling is
// synchronous and immediate and leaves no scheduled hardware action
// pending, so it fails while PA or LNA configuration is still in place.
func (c *Controller) Disable() error {
	if !c.reg.empty() {
		return fmt.Errorf("PA or LNA configuration still active: %w", ErrPermissionDenied)
	}
	c.sched.deactivateNow(hal.All)
	c.enabled = false
	return nil
}

// PAConfigure sets up PA activation/deactivation for the upcoming radio
// transmission. Repeated calls accumulate bindings; the configuration is
// preserved between calls until PAClear. The order of PAConfigure and
// LNAConfigure calls must match the order of the radio operations.
func (c *Controller) PAConfigure(activate, deactivate Event) error {
	return c.configure(hal.PA, activate, deactivate)
}

// PAClear releases the bindings created by PAConfigure.
func (c *Controller) PAClear() error {
	return c.clear(hal.PA)
}

// LNAConfigure sets up LNA activation/deactivation for the upcoming radio
// reception. Same accumulation and ordering rules as PAConfigure.
func (c *Controller) LNAConfigure(activate, deactivate Event) error {
	return c.configure(hal.LNA, activate, deactivate)
}

// LNAClear releases the bindings created by LNAConfigure.
func (c *Controller) LNAClear() error {
	return c.clear(hal.LNA)
}

func (c *Controller) configure(f hal.Functionality, activate, deactivate Event) error {
	if !c.enabled || !c.fe.Supports(f) {
		return fmt.Errorf("%s is disabled: %w", f, ErrPermissionDenied)
	}
	return c.sched.configure(f, activate, deactivate)
}

func (c *Controller) clear(f hal.Functionality) error {
	if !c.enabled || !c.fe.Supports(f) {
		return fmt.Errorf("%s is disabled: %w", f, ErrPermissionDenied)
	}
	return c.sched.clear(f)
}

// DeactivateNow drives the control lines of the given set inactive with
// immediate effect, overriding any scheduled trigger.
func (c *Controller) DeactivateNow(set hal.Functionality) {
	c.sched.deactivateNow(set)
}

// AbortSet arms the abort path: when event fires, every fabric channel in
// group is disabled.
func (c *Controller) AbortSet(event hal.EventID, group hal.Group) error {
	return c.abort.set(event, group)
}

// AbortExtend adds a channel to the abort group.
func (c *Controller) AbortExtend(ch hal.Channel, group hal.Group) error {
	return c.abort.extend(ch, group)
}

// AbortReduce removes a channel from the abort group.
func (c *Controller) AbortReduce(ch hal.Channel, group hal.Group) error {
	return c.abort.reduce(ch, group)
}

// AbortClear tears down the abort trigger.
func (c *Controller) AbortClear() error {
	return c.abort.clear()
}

// Cleanup resets every hardware resource taken for the just-finished radio
// operation: PA and LNA bindings, the abort path and any pending powerdown
// schedule. Gain and timing parameters survive, so the next operation can
// reuse the logical configuration with fresh bindings. Intended to run once
// per radio operation-finished signal; never fails.
func (c *Controller) Cleanup() {
	c.reg.release(ownerPA, c.fab)
	c.reg.release(ownerLNA, c.fab)
	c.reg.release(ownerPowerdown, c.fab)
	c.abort.reset()
}

// SplitPower divides the requested over-the-air power between the radio
// stage and the FEM stage. See SplitPower for the selection rules.
func (c *Controller) SplitPower(requested int8) (TxPowerSplit, error) {
	return SplitPower(c.fe, requested)
}

// PAGainSet applies a PA gain to transmissions following the call. Calling
// during a transmission or ramp-up has unspecified effect.
func (c *Controller) PAGainSet(db int8) error {
	if err := c.fe.GainSet(db); err != nil {
		return fmt.Errorf("failed to set PA gain %d dB: %w", db, err)
	}
	return nil
}

// PAIsConfigured returns the configured PA gain in dB, 0 if no PA is
// present or the PA does not affect the signal gain.
func (c *Controller) PAIsConfigured() int8 {
	if !c.fe.Supports(hal.PA) {
		return 0
	}
	return c.fe.Gain()
}

// PreparePowerdown schedules the front-end module switch-off through the
// given timer compare channel and fabric channel. The timer is caller-owned
// and must be started by the caller; the binding is released by Cleanup.
// Returns whether the transition could be scheduled.
//
// Deprecated: use Disable after clearing configuration instead.
func (c *Controller) PreparePowerdown(t hal.Timer, compareChannel uint8, ch hal.Channel, value uint32) bool {
	if t == nil {
		return false
	}
	task, err := c.fe.DeactivateTask(hal.PA)
	if err != nil {
		task, err = c.fe.DeactivateTask(hal.LNA)
		if err != nil {
			return false
		}
	}
	ev, err := t.SetCompare(compareChannel, value)
	if err != nil {
		return false
	}
	if err := c.fab.Connect(ch, ev, task); err != nil {
		return false
	}
	if err := c.fab.Enable(ch); err != nil {
		c.fab.Disconnect(ch)
		return false
	}
	return c.reg.add(ownerPowerdown, ch, true) == nil
}

// Bindings returns the fabric channels currently held per owner tag.
// Diagnostic view of the binding registry.
func (c *Controller) Bindings() map[string][]hal.Channel {
	return c.reg.snapshot()
}
