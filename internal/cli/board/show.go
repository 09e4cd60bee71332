package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a board with its lists and cards",
		Long: `Show a board with every list in order and the cards of each list.

Examples:
  tablero board show --board=<board-id>
  TABLERO_BOARD=<board-id> tablero board show --json
`,
		RunE: handler.Command(handler.HandlerFunc(showBoard), parseBoardFlag),
	}

	cmd.Flags().String("board", "", "Board ID (uses TABLERO_BOARD env var if not specified)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func showBoard(ctx context.Context, args *handler.Arguments) (any, error) {
	boardID, err := cli.GetBoardID(args.GetCmd())
	if err != nil {
		return nil, err
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	svc := cliInstance.App.BoardService
	if err := svc.LoadBoard(ctx, boardID); err != nil {
		return nil, err
	}
	return buildView(svc, boardID)
}

func buildView(svc boardservice.Service, boardID string) (*boardView, error) {
	b, ok := svc.Board(boardID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", boardservice.ErrBoardNotFound, boardID)
	}
	view := &boardView{Board: b, Labels: svc.Labels(boardID)}
	for _, l := range svc.Lists(boardID) {
		view.Lists = append(view.Lists, listView{List: l, Cards: svc.Cards(l.ID)})
	}
	if view.Lists == nil {
		view.Lists = []listView{}
	}
	return view, nil
}

// parseBoardFlag checks that a board was given by flag or environment
func parseBoardFlag(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseBoardID()
	return err
}
