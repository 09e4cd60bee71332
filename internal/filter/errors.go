package filter

import "errors"

var (
	ErrUnknownDueDateFilter = errors.New("unknown due date filter")
	ErrUnknownQuickFilter   = errors.New("unknown quick filter")
)
