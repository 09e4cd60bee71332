package card

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// DropCmd returns the card drop subcommand: a move addressed by slot
// index, the way a drag and drop gesture reports it
func DropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop a card at an index in a list",
		Long: `Drop a card at a zero-based slot among the destination list's other
cards. Only the dropped card's position changes.

Examples:
  tablero card drop --card=<card-id> --to=<list-id> --index=2
`,
		RunE: handler.Command(handler.HandlerFunc(moveCard), func(cmd *cobra.Command) error {
			if !cmd.Flags().Changed("index") {
				return errors.New("--index is required")
			}
			return parseMoveFlags(cmd)
		}),
	}

	addCardFlag(cmd)
	cmd.Flags().String("to", "", "Destination list ID (defaults to the card's list)")
	cmd.Flags().Int("index", 0, "Zero-based drop index")
	cli.AddOutputFlags(cmd)

	return cmd
}
