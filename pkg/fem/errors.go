package fem

import "errors"

var (
	// ErrPermissionDenied is returned when an operation is not valid in the
	// current enable/disable or abort state.
	ErrPermissionDenied = errors.New("operation not permitted in current state")

	// ErrInvalidConfiguration is returned for structurally invalid input:
	// missing timer reference, inconsistent counter window, invalid gain.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrOutOfRange is returned by the power split when the requested power
	// is outside the achievable range. The returned split is still valid and
	// represents the closest achievable combination.
	ErrOutOfRange = errors.New("requested power out of achievable range")
)
