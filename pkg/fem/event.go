package fem

import "github.com/ahasztag/hal-nordic/pkg/hal"

// EventKind discriminates the two event descriptor variants.
type EventKind uint8

const (
	// KindTimer describes a deadline relative to a caller-owned timer.
	KindTimer EventKind = iota
	// KindGeneric describes an opaque subscribable hardware event.
	KindGeneric
)

// CounterWindow is the counter interval within which the FEM must be
// prepared. The radio operation starts when the counter reaches End.
type CounterWindow struct {
	Start uint32
	End   uint32
}

// LegacyChannel carries the explicit fabric channel selection honored only
// by hardware families reporting hal.FrontEnd.LegacyChannelOverride.
type LegacyChannel struct {
	Override bool
	ID       hal.Channel
}

// TimerEvent is the KindTimer payload. The timer instance is caller-owned:
// the caller starts it, stops it, and must keep it running until the lowest
// compare channel granted through Compares has expired.
type TimerEvent struct {
	Timer    hal.Timer
	Window   CounterWindow
	Compares uint8 // bitmask of compare channels the FEM may use
	Legacy   LegacyChannel
}

// GenericEvent is the KindGeneric payload.
type GenericEvent struct {
	Event hal.EventID
}

// Event describes either a timer-relative deadline or a generic hardware
// signaled event. Exactly one payload is meaningful, selected by Kind.
// Activation events must be of KindTimer; passing a generic activation event
// is rejected with ErrInvalidConfiguration.
type Event struct {
	Kind    EventKind
	Timer   TimerEvent
	Generic GenericEvent
}

// TimerActivation builds an activation event for the given timer window.
func TimerActivation(t hal.Timer, start, end uint32, compareMask uint8) Event {
	return Event{
		Kind: KindTimer,
		Timer: TimerEvent{
			Timer:    t,
			Window:   CounterWindow{Start: start, End: end},
			Compares: compareMask,
		},
	}
}

// Signal builds a generic event descriptor for a subscribable hardware event.
func Signal(ev hal.EventID) Event {
	return Event{
		Kind:    KindGeneric,
		Generic: GenericEvent{Event: ev},
	}
}

// validate checks the structural invariants of the descriptor.
func (e *Event) validate() error {
	switch e.Kind {
	case KindTimer:
		if e.Timer.Timer == nil {
			return ErrInvalidConfiguration
		}
		if e.Timer.Compares == 0 {
			return ErrInvalidConfiguration
		}
		if e.Timer.Window.Start > e.Timer.Window.End {
			return ErrInvalidConfiguration
		}
		return nil
	case KindGeneric:
		return nil
	}
	return ErrInvalidConfiguration
}

// lowestCompare returns the lowest compare channel granted by the mask.
// The mask must be non zero, validate guarantees that.
func (e *TimerEvent) lowestCompare() uint8 {
	var ch uint8
	for mask := e.Compares; mask&1 == 0; mask >>= 1 {
		ch++
	}
	return ch
}
