package fem

import (
	"fmt"

	"github.com/ahasztag/hal-nordic/pkg/hal"
)

// abortPath wires an emergency disable-everything trigger: when the armed
// event fires, the fabric disables every channel in the associated group.
// It is installed and removed independently of the normal PA/LNA
// scheduling, so a safety interrupt composes with, never replaces, the
// timing-based activation logic.
type abortPath struct {
	fab hal.Fabric
	reg *bindingRegistry

	armed bool
	group hal.Group
}

// set arms the abort trigger for the given group. Arming while already
// armed fails, even for the same group: silently replacing the binding
// would orphan the previous one.
func (a *abortPath) set(event hal.EventID, group hal.Group) error {
	if a.armed {
		return fmt.Errorf("abort path already armed for group %d: %w", a.group, ErrPermissionDenied)
	}

	task, err := a.fab.GroupDisableTask(group)
	if err != nil {
		return fmt.Errorf("group %d disable task: %w", group, err)
	}
	ch, err := a.fab.AllocChannel()
	if err != nil {
		return fmt.Errorf("failed to allocate abort channel: %w", err)
	}
	if err := a.fab.Connect(ch, event, task); err != nil {
		a.fab.FreeChannel(ch)
		return fmt.Errorf("failed to connect abort channel %d: %w", ch, err)
	}
	if err := a.fab.Enable(ch); err != nil {
		a.fab.Disconnect(ch)
		a.fab.FreeChannel(ch)
		return fmt.Errorf("failed to enable abort channel %d: %w", ch, err)
	}
	if err := a.reg.add(ownerAbort, ch, false); err != nil {
		return err
	}

	a.armed = true
	a.group = group
	return nil
}

// extend adds a channel to the armed group.
func (a *abortPath) extend(ch hal.Channel, group hal.Group) error {
	if err := a.check(group); err != nil {
		return err
	}
	if err := a.fab.GroupAdd(group, ch); err != nil {
		return fmt.Errorf("failed to add channel %d to group %d: %w", ch, group, err)
	}
	return nil
}

// reduce removes a channel from the armed group.
func (a *abortPath) reduce(ch hal.Channel, group hal.Group) error {
	if err := a.check(group); err != nil {
		return err
	}
	if err := a.fab.GroupRemove(group, ch); err != nil {
		return fmt.Errorf("failed to remove channel %d from group %d: %w", ch, group, err)
	}
	return nil
}

func (a *abortPath) check(group hal.Group) error {
	if !a.armed {
		return fmt.Errorf("abort path not armed: %w", ErrPermissionDenied)
	}
	if group != a.group {
		return fmt.Errorf("abort path armed for group %d, not %d: %w", a.group, group, ErrPermissionDenied)
	}
	return nil
}

// clear tears down the trigger-to-group binding.
func (a *abortPath) clear() error {
	if !a.armed {
		return fmt.Errorf("abort path not armed, nothing to clear: %w", ErrPermissionDenied)
	}
	if err := a.reg.release(ownerAbort, a.fab); err != nil {
		return fmt.Errorf("failed to tear down abort binding: %w", err)
	}
	a.armed = false
	a.group = 0
	return nil
}

// reset drops the abort state without reporting errors, used by cleanup.
func (a *abortPath) reset() {
	if !a.armed {
		return
	}
	a.reg.release(ownerAbort, a.fab)
	a.armed = false
	a.group = 0
}
