package hal

// EventID identifies a multiple-subscribable hardware event. On nRF52 class
// hardware this is an event register address, on nRF53 class hardware a DPPI
// channel number; the fabric implementation decides.
type EventID uint32

// TaskID identifies a hardware task that a fabric channel can trigger.
type TaskID uint32

// Channel is a single event-to-task fabric channel.
type Channel uint8

// Group is a set of fabric channels that can be disabled together.
type Group uint8

// Timer models the caller-owned 1 us resolution compare timer. The caller
// starts and stops the timer; this module only programs compare values.
type Timer interface {
	// SetCompare programs a compare channel and returns the event that fires
	// when the counter reaches the given value.
	SetCompare(channel uint8, value uint32) (EventID, error)
	// Counter returns the current counter value.
	Counter() uint32
}

// Fabric is the event/channel subscription fabric (PPI or DPPI like). One
// channel binds one event to one task; a group of channels can be torn down
// by a single disable-all trigger.
type Fabric interface {
	AllocChannel() (Channel, error)
	FreeChannel(ch Channel) error
	Connect(ch Channel, event EventID, task TaskID) error
	Disconnect(ch Channel) error
	Enable(ch Channel) error
	Disable(ch Channel) error
	GroupAdd(group Group, ch Channel) error
	GroupRemove(group Group, ch Channel) error
	// GroupDisableTask returns the task that disables every channel in the
	// group at once. Binding an event to this task arms a disable-all
	// trigger for the group.
	GroupDisableTask(group Group) (TaskID, error)
}

// TaskRegistrar turns a task body into a TaskID that fabric channels can
// trigger. Pin drivers use it to expose their set/clear operations as tasks.
type TaskRegistrar interface {
	RegisterTask(fn func()) TaskID
}

// ControlPin is a single FEM control line (CTX, CRX, mode select...).
type ControlPin interface {
	// ActivateTask returns the task that drives the line to its active state.
	ActivateTask() TaskID
	// DeactivateTask returns the task that drives the line inactive.
	DeactivateTask() TaskID
	// Drive sets the line level synchronously, bypassing any scheduled task.
	// The write is assumed always possible, implementations must not block.
	Drive(active bool)
}
