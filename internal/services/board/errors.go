package board

import (
	"errors"
	"fmt"
)

// Board engine errors
var (
	// Validation errors
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrTitleTooLong    = errors.New("title cannot exceed 255 characters")
	ErrEmptyName       = errors.New("label name cannot be empty")
	ErrNameTooLong     = errors.New("label name cannot exceed 50 characters")
	ErrInvalidColor    = errors.New("invalid color format (must be hex color like #FFFFFF)")
	ErrInvalidViewMode = errors.New("view mode must be cards or list")
	ErrInvalidPriority = errors.New("priority must be low, medium, high or none")
	ErrInvalidID       = errors.New("invalid id")

	// Lookup errors. Mutations on ids outside the loaded boards are
	// no-ops; these are only returned where an entity must come back.
	ErrBoardNotFound = errors.New("board not found")
	ErrListNotFound  = errors.New("list not found")
	ErrCardNotFound  = errors.New("card not found")
	ErrLabelNotFound = errors.New("label not found")

	// ErrPersistence matches every *PersistError
	ErrPersistence = errors.New("failed to persist change")
)

// PersistError reports a storage write that failed after the in-memory
// state was already updated. The engine does not roll back.
type PersistError struct {
	Op       string
	EntityID string
	Err      error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist %s %s: %v", e.Op, e.EntityID, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrPersistence) match
func (e *PersistError) Is(target error) bool { return target == ErrPersistence }
