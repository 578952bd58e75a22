package hal

// Functionality selects PA, LNA or both. Values combine with bitwise or.
type Functionality uint8

const (
	PA  Functionality = 1 << 0
	LNA Functionality = 1 << 1
	All Functionality = PA | LNA
)

// Has reports whether f contains the given functionality.
func (f Functionality) Has(other Functionality) bool {
	return f&other != 0
}

func (f Functionality) String() string {
	switch f {
	case PA:
		return "PA"
	case LNA:
		return "LNA"
	case All:
		return "PA|LNA"
	}
	return "none"
}

// FrontEnd is a concrete Front-End Module profile. A profile knows which
// functionalities the physical device offers, how its control lines map to
// fabric tasks, and how transmit power divides between the radio stage and
// the FEM stage.
type FrontEnd interface {
	// Supports reports whether the device offers the given functionality.
	Supports(f Functionality) bool

	// ActivateTask returns the task driving the control line of f active.
	ActivateTask(f Functionality) (TaskID, error)
	// DeactivateTask returns the task driving the control line of f inactive.
	DeactivateTask(f Functionality) (TaskID, error)

	// DriveInactive forces the control line of f inactive with immediate
	// effect, independent of any scheduled task.
	DriveInactive(f Functionality)

	// ActivationLead returns how many microseconds before the scheduled
	// radio operation the line of f must go active (ramp-up time).
	ActivationLead(f Functionality) uint32

	// GainSet applies a PA gain in dB to subsequent transmissions.
	GainSet(db int8) error
	// Gain returns the currently applied PA gain, 0 if the device has no PA
	// or is gain transparent.
	Gain() int8
	// GainModes returns the achievable FEM gain values in dB, ascending.
	GainModes() []int8

	// RadioPowers returns the achievable radio-stage output powers in dBm,
	// ascending.
	RadioPowers() []int8

	// LegacyChannelOverride reports whether the hardware family honors the
	// caller-supplied fabric channel id carried in a timer event descriptor.
	LegacyChannelOverride() bool
}
