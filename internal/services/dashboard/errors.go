package dashboard

import "errors"

// Dashboard service errors
var (
	ErrNoCards         = errors.New("no card ids given")
	ErrNoActiveUser    = errors.New("no active user configured")
	ErrInvalidDays     = errors.New("reschedule offset must be between -365 and 365 days")
	ErrInvalidScope    = errors.New("invalid dashboard scope")
	ErrSnapshotFailure = errors.New("failed to load snapshot")
)
