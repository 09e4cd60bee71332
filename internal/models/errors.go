package models

import "errors"

var (
	// ErrUnknownPriority is returned when parsing an unrecognised priority
	ErrUnknownPriority = errors.New("unknown priority")

	// ErrUnknownViewMode is returned when parsing an unrecognised view mode
	ErrUnknownViewMode = errors.New("unknown view mode")
)
