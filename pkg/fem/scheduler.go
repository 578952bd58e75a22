package fem

import (
	"fmt"

	"github.com/ahasztag/hal-nordic/pkg/hal"
)

// scheduler programs the fabric so that a functionality's control line goes
// active ahead of the radio operation and inactive on the deactivation
// event, with no software participation at trigger time. Successive
// configure calls for the same functionality accumulate bindings; clear
// releases them in one go.
type scheduler struct {
	fab hal.Fabric
	fe  hal.FrontEnd
	reg *bindingRegistry
}

// configure wires one activation and one deactivation trigger for f.
//
// The activation event must be a timer deadline: the control line is driven
// active when the counter reaches Window.End minus the profile's activation
// lead. The deactivation event may be either kind; a timer deadline
// deactivates at its Window.End.
func (s *scheduler) configure(f hal.Functionality, activate, deactivate Event) error {
	if activate.Kind != KindTimer {
		return fmt.Errorf("activation event must be a timer deadline: %w", ErrInvalidConfiguration)
	}
	if err := activate.validate(); err != nil {
		return fmt.Errorf("activation event: %w", err)
	}
	if err := deactivate.validate(); err != nil {
		return fmt.Errorf("deactivation event: %w", err)
	}

	lead := s.fe.ActivationLead(f)
	if activate.Timer.Window.End-activate.Timer.Window.Start < lead {
		return fmt.Errorf("counter window shorter than %d us activation lead: %w",
			lead, ErrInvalidConfiguration)
	}

	actTask, err := s.fe.ActivateTask(f)
	if err != nil {
		return fmt.Errorf("%s activate task: %w", f, err)
	}
	deactTask, err := s.fe.DeactivateTask(f)
	if err != nil {
		return fmt.Errorf("%s deactivate task: %w", f, err)
	}

	actEvent, err := activate.Timer.Timer.SetCompare(
		activate.Timer.lowestCompare(),
		activate.Timer.Window.End-lead,
	)
	if err != nil {
		return fmt.Errorf("failed to program activation compare: %w", err)
	}
	if err := s.bind(f, &activate, actEvent, actTask); err != nil {
		return err
	}

	deactEvent, err := s.deactivationEvent(&deactivate)
	if err != nil {
		return err
	}
	return s.bind(f, &deactivate, deactEvent, deactTask)
}

// deactivationEvent resolves the event that will drive the line inactive.
func (s *scheduler) deactivationEvent(e *Event) (hal.EventID, error) {
	if e.Kind == KindGeneric {
		return e.Generic.Event, nil
	}
	ev, err := e.Timer.Timer.SetCompare(e.Timer.lowestCompare(), e.Timer.Window.End)
	if err != nil {
		return 0, fmt.Errorf("failed to program deactivation compare: %w", err)
	}
	return ev, nil
}

// bind allocates a channel (or borrows the descriptor's legacy channel),
// connects event to task, enables the channel and records it under f.
func (s *scheduler) bind(f hal.Functionality, e *Event, event hal.EventID, task hal.TaskID) error {
	ch, borrowed, err := s.pickChannel(e)
	if err != nil {
		return err
	}
	if err := s.fab.Connect(ch, event, task); err != nil {
		if !borrowed {
			s.fab.FreeChannel(ch)
		}
		return fmt.Errorf("failed to connect channel %d: %w", ch, err)
	}
	if err := s.fab.Enable(ch); err != nil {
		s.fab.Disconnect(ch)
		if !borrowed {
			s.fab.FreeChannel(ch)
		}
		return fmt.Errorf("failed to enable channel %d: %w", ch, err)
	}
	return s.reg.add(ownerOf(f), ch, borrowed)
}

func (s *scheduler) pickChannel(e *Event) (hal.Channel, bool, error) {
	if e.Kind == KindTimer && e.Timer.Legacy.Override {
		if !s.fe.LegacyChannelOverride() {
			return 0, false, fmt.Errorf("hardware profile does not honor channel override: %w",
				ErrInvalidConfiguration)
		}
		return e.Timer.Legacy.ID, true, nil
	}
	ch, err := s.fab.AllocChannel()
	if err != nil {
		return 0, false, fmt.Errorf("failed to allocate fabric channel: %w", err)
	}
	return ch, false, nil
}

// clear releases every binding recorded for f, leaving the other
// functionality and the abort path untouched. Timer start/stop state is
// caller-owned and not affected.
func (s *scheduler) clear(f hal.Functionality) error {
	return s.reg.release(ownerOf(f), s.fab)
}

// deactivateNow drives the control lines of the given set inactive with
// immediate effect, overriding any scheduled trigger.
func (s *scheduler) deactivateNow(set hal.Functionality) {
	if set.Has(hal.PA) && s.fe.Supports(hal.PA) {
		s.fe.DriveInactive(hal.PA)
	}
	if set.Has(hal.LNA) && s.fe.Supports(hal.LNA) {
		s.fe.DriveInactive(hal.LNA)
	}
}
