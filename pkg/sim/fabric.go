// Package sim provides software stand-ins for the timer peripheral, the
// event/channel subscription fabric and the FEM control pins, so the
// coordination layer can be exercised without hardware.
package sim

import (
	"fmt"

	"github.com/Workiva/go-datastructures/queue"

	"github.com/ahasztag/hal-nordic/pkg/hal"
)

const fabricChannels = 16

type channelState struct {
	used      bool
	connected bool
	enabled   bool
	event     hal.EventID
	task      hal.TaskID
}

// Fabric is an in-memory event/channel fabric. Publishing an event triggers
// the task of every enabled channel connected to it; tasks may publish
// further events, which are dispatched in FIFO order.
type Fabric struct {
	channels [fabricChannels]channelState
	groups   map[hal.Group]map[hal.Channel]bool
	tasks    map[hal.TaskID]func()

	nextTask  hal.TaskID
	nextEvent hal.EventID

	pending     *queue.Queue
	dispatching bool
}

func NewFabric() *Fabric {
	return &Fabric{
		groups:    map[hal.Group]map[hal.Channel]bool{},
		tasks:     map[hal.TaskID]func(){},
		nextTask:  1,
		nextEvent: 1,
		pending:   queue.New(fabricChannels),
	}
}

// NewEvent mints a fresh subscribable event identifier.
func (f *Fabric) NewEvent() hal.EventID {
	ev := f.nextEvent
	f.nextEvent++
	return ev
}

// RegisterTask implements hal.TaskRegistrar.
func (f *Fabric) RegisterTask(fn func()) hal.TaskID {
	id := f.nextTask
	f.nextTask++
	f.tasks[id] = fn
	return id
}

func (f *Fabric) AllocChannel() (hal.Channel, error) {
	for i := range f.channels {
		if !f.channels[i].used {
			f.channels[i] = channelState{used: true}
			return hal.Channel(i), nil
		}
	}
	return 0, fmt.Errorf("no free fabric channel")
}

func (f *Fabric) FreeChannel(ch hal.Channel) error {
	st, err := f.state(ch)
	if err != nil {
		return err
	}
	if st.enabled {
		return fmt.Errorf("channel %d still enabled", ch)
	}
	*st = channelState{}
	return nil
}

func (f *Fabric) Connect(ch hal.Channel, event hal.EventID, task hal.TaskID) error {
	st, err := f.state(ch)
	if err != nil {
		return err
	}
	if st.connected {
		return fmt.Errorf("channel %d already connected", ch)
	}
	st.connected = true
	st.event = event
	st.task = task
	return nil
}

func (f *Fabric) Disconnect(ch hal.Channel) error {
	st, err := f.state(ch)
	if err != nil {
		return err
	}
	st.connected = false
	st.event = 0
	st.task = 0
	return nil
}

func (f *Fabric) Enable(ch hal.Channel) error {
	st, err := f.state(ch)
	if err != nil {
		return err
	}
	if !st.connected {
		return fmt.Errorf("channel %d not connected", ch)
	}
	st.enabled = true
	return nil
}

func (f *Fabric) Disable(ch hal.Channel) error {
	st, err := f.state(ch)
	if err != nil {
		return err
	}
	st.enabled = false
	return nil
}

func (f *Fabric) GroupAdd(group hal.Group, ch hal.Channel) error {
	if _, err := f.state(ch); err != nil {
		return err
	}
	members := f.groups[group]
	if members == nil {
		members = map[hal.Channel]bool{}
		f.groups[group] = members
	}
	members[ch] = true
	return nil
}

func (f *Fabric) GroupRemove(group hal.Group, ch hal.Channel) error {
	members := f.groups[group]
	if members == nil || !members[ch] {
		return fmt.Errorf("channel %d not in group %d", ch, group)
	}
	delete(members, ch)
	return nil
}

// GroupDisableTask returns a task that disables every channel currently in
// the group when triggered.
func (f *Fabric) GroupDisableTask(group hal.Group) (hal.TaskID, error) {
	return f.RegisterTask(func() {
		for ch := range f.groups[group] {
			if int(ch) < len(f.channels) {
				f.channels[ch].enabled = false
			}
		}
	}), nil
}

// GroupMembers returns the channels currently in the group.
func (f *Fabric) GroupMembers(group hal.Group) []hal.Channel {
	var out []hal.Channel
	for ch := range f.groups[group] {
		out = append(out, ch)
	}
	return out
}

// Publish fires a hardware event. Triggered tasks run synchronously before
// Publish returns; cascaded events queue up and are drained in order.
func (f *Fabric) Publish(event hal.EventID) {
	f.pending.Put(event)
	if f.dispatching {
		return
	}
	f.dispatching = true
	defer func() { f.dispatching = false }()

	for f.pending.Len() > 0 {
		items, err := f.pending.Get(1)
		if err != nil || len(items) == 0 {
			return
		}
		ev := items[0].(hal.EventID)
		for i := range f.channels {
			st := &f.channels[i]
			if st.used && st.enabled && st.connected && st.event == ev {
				if fn := f.tasks[st.task]; fn != nil {
					fn()
				}
			}
		}
	}
}

// Enabled reports whether the channel is currently enabled.
func (f *Fabric) Enabled(ch hal.Channel) bool {
	if int(ch) >= len(f.channels) {
		return false
	}
	return f.channels[ch].enabled
}

// InUse returns the number of allocated channels.
func (f *Fabric) InUse() int {
	n := 0
	for i := range f.channels {
		if f.channels[i].used {
			n++
		}
	}
	return n
}

func (f *Fabric) state(ch hal.Channel) (*channelState, error) {
	if int(ch) >= len(f.channels) {
		return nil, fmt.Errorf("channel %d out of range", ch)
	}
	st := &f.channels[ch]
	if !st.used {
		// Caller-managed channels (abort group members, legacy overrides)
		// are claimed on first touch.
		st.used = true
	}
	return st, nil
}
