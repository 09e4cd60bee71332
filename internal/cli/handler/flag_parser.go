package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParseBoardID extracts the board ID from --board or TABLERO_BOARD
func (p *FlagParser) ParseBoardID() (string, error) {
	return cli.GetBoardID(p.cmd)
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", flagName)
	}
	return value, nil
}

// ParseColor extracts and validates a color flag
func (p *FlagParser) ParseColor(flagName string) (string, error) {
	color, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if err := cli.ValidateColorHex(color); err != nil {
		return "", err
	}
	return color, nil
}

// ParsePriority extracts a priority flag; unset means no priority
func (p *FlagParser) ParsePriority(flagName string) (models.Priority, error) {
	raw, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return models.PriorityNone, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return models.ParsePriority(raw)
}

// ParseDueDate extracts an optional due date flag relative to now
func (p *FlagParser) ParseDueDate(flagName string, now time.Time) (*time.Time, error) {
	raw, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	due, err := cli.ParseDueDate(raw, now)
	if err != nil {
		return nil, err
	}
	return &due, nil
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = p.cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = p.cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	return jsonOutput, quietMode, nil
}
