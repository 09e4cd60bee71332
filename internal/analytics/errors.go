package analytics

import "errors"

// ErrUnknownDateRange is returned when parsing an unrecognised date range
var ErrUnknownDateRange = errors.New("unknown date range")
