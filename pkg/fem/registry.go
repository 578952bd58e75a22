package fem

import (
	"fmt"

	"github.com/ahasztag/hal-nordic/pkg/hal"
)

// owner tags a registry slot with the functionality the binding serves.
type owner uint8

const (
	ownerNone owner = iota
	ownerPA
	ownerLNA
	ownerAbort
	ownerPowerdown
)

func ownerOf(f hal.Functionality) owner {
	if f == hal.PA {
		return ownerPA
	}
	return ownerLNA
}

// registrySlots is sized to the fabric channel count of the supported
// hardware families.
const registrySlots = 16

type binding struct {
	owner   owner
	channel hal.Channel
	// borrowed channels come from a legacy override and are not freed back
	// to the fabric on release.
	borrowed bool
}

// bindingRegistry tracks which fabric channels are currently allocated to
// PA, LNA or the abort path, so cleanup can release exactly what was
// allocated. Fixed-size arena, no dynamic allocation.
type bindingRegistry struct {
	slots [registrySlots]binding
}

// add records a channel under the given owner.
func (r *bindingRegistry) add(o owner, ch hal.Channel, borrowed bool) error {
	for i := range r.slots {
		if r.slots[i].owner == ownerNone {
			r.slots[i] = binding{owner: o, channel: ch, borrowed: borrowed}
			return nil
		}
	}
	return fmt.Errorf("binding registry full (%d slots)", registrySlots)
}

// release disables, disconnects and frees every channel recorded under the
// given owner, leaving other owners untouched.
func (r *bindingRegistry) release(o owner, fab hal.Fabric) error {
	var firstErr error
	for i := range r.slots {
		if r.slots[i].owner != o {
			continue
		}
		if err := r.releaseSlot(i, fab); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *bindingRegistry) releaseSlot(i int, fab hal.Fabric) error {
	b := r.slots[i]
	r.slots[i] = binding{}

	if err := fab.Disable(b.channel); err != nil {
		return fmt.Errorf("failed to disable channel %d: %w", b.channel, err)
	}
	if err := fab.Disconnect(b.channel); err != nil {
		return fmt.Errorf("failed to disconnect channel %d: %w", b.channel, err)
	}
	if b.borrowed {
		return nil
	}
	if err := fab.FreeChannel(b.channel); err != nil {
		return fmt.Errorf("failed to free channel %d: %w", b.channel, err)
	}
	return nil
}

// count returns the number of slots held by the given owner.
func (r *bindingRegistry) count(o owner) int {
	n := 0
	for i := range r.slots {
		if r.slots[i].owner == o {
			n++
		}
	}
	return n
}

// empty reports whether no PA or LNA binding is recorded.
func (r *bindingRegistry) empty() bool {
	return r.count(ownerPA) == 0 && r.count(ownerLNA) == 0
}

// Snapshot returns the channels currently held per functionality tag.
// Intended for diagnostics and tests.
func (r *bindingRegistry) snapshot() map[string][]hal.Channel {
	out := map[string][]hal.Channel{}
	for i := range r.slots {
		var key string
		switch r.slots[i].owner {
		case ownerPA:
			key = "pa"
		case ownerLNA:
			key = "lna"
		case ownerAbort:
			key = "abort"
		case ownerPowerdown:
			key = "powerdown"
		default:
			continue
		}
		out[key] = append(out[key], r.slots[i].channel)
	}
	return out
}
