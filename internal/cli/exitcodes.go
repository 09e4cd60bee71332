package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/analytics"
	"github.com/thenoetrevino/tablero/internal/export"
	"github.com/thenoetrevino/tablero/internal/filter"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/services/board"
	"github.com/thenoetrevino/tablero/internal/services/dashboard"
	"github.com/thenoetrevino/tablero/internal/snapshot"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, persistence failures, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Board, list, card or label ids that don't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Corrupt snapshot files or snapshots from a newer version.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty titles, invalid colors, unknown priorities, date
	// ranges, filters or export formats.
	ExitValidation = 5
)

// Error codes printed with failures
const (
	CodeUsage       = "USAGE_ERROR"
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeDataErr     = "DATA_ERROR"
	CodePersistence = "PERSISTENCE_ERROR"
	CodeError       = "ERROR"
)

// ErrUsage marks an incorrect invocation
var ErrUsage = errors.New("invalid usage")

// UsageError wraps msg so it maps to ExitUsage
func UsageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

var validationErrors = []error{
	ErrInvalidColor,
	ErrInvalidDate,
	board.ErrEmptyTitle,
	board.ErrTitleTooLong,
	board.ErrEmptyName,
	board.ErrNameTooLong,
	board.ErrInvalidColor,
	board.ErrInvalidViewMode,
	board.ErrInvalidPriority,
	board.ErrInvalidID,
	dashboard.ErrNoCards,
	dashboard.ErrNoActiveUser,
	dashboard.ErrInvalidDays,
	dashboard.ErrInvalidScope,
	analytics.ErrUnknownDateRange,
	filter.ErrUnknownDueDateFilter,
	filter.ErrUnknownQuickFilter,
	models.ErrUnknownPriority,
	models.ErrUnknownViewMode,
	export.ErrUnknownFormat,
}

var notFoundErrors = []error{
	board.ErrBoardNotFound,
	board.ErrListNotFound,
	board.ErrCardNotFound,
	board.ErrLabelNotFound,
}

// Classify maps an error to its exit code and error code
func Classify(err error) (int, string) {
	if errors.Is(err, ErrUsage) {
		return ExitUsage, CodeUsage
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return ExitValidation, CodeValidation
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return ExitNotFound, CodeNotFound
		}
	}
	if errors.Is(err, snapshot.ErrCorrupt) || errors.Is(err, snapshot.ErrUnsupportedVersion) {
		return ExitDataErr, CodeDataErr
	}
	if errors.Is(err, board.ErrPersistence) {
		return ExitError, CodePersistence
	}
	return ExitError, CodeError
}

// CommandError carries the process exit code for a failed command
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string { return e.Err.Error() }

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the exit code for err (ExitSuccess for nil)
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *CommandError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	code, _ := Classify(err)
	return code
}
