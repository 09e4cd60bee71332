package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// EnvBoard holds the default board for commands that take --board
const EnvBoard = "TABLERO_BOARD"

var (
	ErrInvalidColor = errors.New("color must be in hex format #RRGGBB")
	ErrInvalidDate  = errors.New("date must be YYYY-MM-DD, RFC 3339 or a +N/-N day offset")
	ErrNoBoard      = errors.New("no board specified: use --board or set " + EnvBoard)
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateColorHex validates that a color string is in valid hex format #RRGGBB
func ValidateColorHex(color string) error {
	if !hexColor.MatchString(color) {
		return fmt.Errorf("%w (e.g., #FF0000), got: %s", ErrInvalidColor, color)
	}
	return nil
}

// ParseDueDate reads a due date as YYYY-MM-DD (local midnight), RFC 3339,
// or a day offset like +3 or -1 counted from the start of today
func ParseDueDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		y, m, d := now.Date()
		return time.Date(y, m, d+n, 0, 0, 0, 0, now.Location()), nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// GetBoardID returns --board, falling back to TABLERO_BOARD
func GetBoardID(cmd *cobra.Command) (string, error) {
	if id, _ := cmd.Flags().GetString("board"); id != "" {
		return id, nil
	}
	if id := os.Getenv(EnvBoard); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("%w: %w", ErrUsage, ErrNoBoard)
}

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// ErrCancelled is returned when a confirmation prompt is declined
var ErrCancelled = errors.New("cancelled")

// Confirm asks a yes/no question on the command's input
func Confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// NeedsConfirmation reports whether a destructive command should prompt:
// not when --force is set and never in --json or --quiet mode
func NeedsConfirmation(cmd *cobra.Command) bool {
	force, _ := cmd.Flags().GetBool("force")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return !force && !jsonOutput && !quiet
}
