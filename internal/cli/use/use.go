// Package use holds the cli commands that set shell context
// e.g., tablero use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Set the board context for this shell",
		Long: `Set context that applies to subsequent commands so --board can be
left off.

Examples:
  eval $(tablero use board <board-id>)   # Use a board
  eval $(tablero use board --clear)      # Clear the board context
  tablero use board --show               # Show the current board`,
	}

	cmd.AddCommand(BoardCmd())

	return cmd
}
