package sim

import (
	"fmt"
	"sort"

	"github.com/ahasztag/hal-nordic/pkg/hal"
)

const timerCompareChannels = 8

type compare struct {
	armed bool
	value uint32
	event hal.EventID
}

// Timer simulates the caller-owned 1 us compare timer. Tests own its
// lifecycle the way the radio protocol driver owns the real peripheral:
// start it, advance the counter, stop it.
type Timer struct {
	fab      *Fabric
	running  bool
	counter  uint32
	compares [timerCompareChannels]compare
}

func NewTimer(fab *Fabric) *Timer {
	return &Timer{fab: fab}
}

func (t *Timer) Start() { t.running = true }
func (t *Timer) Stop()  { t.running = false }

// Counter implements hal.Timer.
func (t *Timer) Counter() uint32 { return t.counter }

// SetCompare implements hal.Timer. Re-arming a compare channel replaces its
// value but keeps the event identity, like reprogramming a CC register.
func (t *Timer) SetCompare(channel uint8, value uint32) (hal.EventID, error) {
	if channel >= timerCompareChannels {
		return 0, fmt.Errorf("compare channel %d out of range", channel)
	}
	cc := &t.compares[channel]
	if cc.event == 0 {
		cc.event = t.fab.NewEvent()
	}
	cc.armed = true
	cc.value = value
	return cc.event, nil
}

// Advance moves the counter to the given value, firing every armed compare
// whose value lies in (current, to] in counter order. No-op while stopped.
func (t *Timer) Advance(to uint32) {
	if !t.running || to <= t.counter {
		t.counter = to
		return
	}

	type firing struct {
		value uint32
		event hal.EventID
	}
	var due []firing
	for i := range t.compares {
		cc := &t.compares[i]
		if cc.armed && cc.value > t.counter && cc.value <= to {
			due = append(due, firing{value: cc.value, event: cc.event})
			cc.armed = false
		}
	}
	sort.Slice(due, func(a, b int) bool { return due[a].value < due[b].value })

	t.counter = to
	for _, f := range due {
		t.fab.Publish(f.event)
	}
}
