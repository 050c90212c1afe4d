package models

import "time"

// UpdateState is the lifecycle of an update check.
type UpdateState int

const (
	// UpdateIdle means no check has run yet.
	UpdateIdle UpdateState = iota
	// UpdateChecking means a check is in flight.
	UpdateChecking
	// UpdateAvailable means a newer version was found.
	UpdateAvailable
	// UpdateCurrent means the installed version is the latest.
	UpdateCurrent
	// UpdateFailed means the check could not complete.
	UpdateFailed
)

// String returns the state name for logging.
func (s UpdateState) String() string {
	switch s {
	case UpdateIdle:
		return "idle"
	case UpdateChecking:
		return "checking"
	case UpdateAvailable:
		return "available"
	case UpdateCurrent:
		return "current"
	case UpdateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// UpdateInfo is the result of an update check.
type UpdateInfo struct {
	State     UpdateState
	Installed string
	Latest    string
	CheckedAt time.Time
	Err       error
}
