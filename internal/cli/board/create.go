package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// CreateCmd returns the board create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new board",
		Long: `Create a new, empty board.

Examples:
  # Create board (human-readable output)
  tablero board create --title="Roadmap"

  # Create board and fill it with demo lists, labels and cards
  tablero board create --title="Demo" --seed

  # Quiet mode for bash capture
  export TABLERO_BOARD=$(tablero board create --title="Roadmap" --quiet)
`,
		RunE: handler.Command(&createHandler{}, parseCreateFlags),
	}

	cmd.Flags().String("title", "", "Board title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().Bool("seed", false, "Fill the board with demo data")
	cli.AddOutputFlags(cmd)

	return cmd
}

// createHandler implements handler.Handler for board creation
type createHandler struct{}

// Execute implements the Handler interface
func (h *createHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	b, err := cliInstance.App.BoardService.CreateBoard(ctx, args.GetString("title", ""))
	if err != nil {
		return nil, fmt.Errorf("board creation error: %w", err)
	}

	if args.GetBool("seed") {
		if err := cliInstance.App.BoardService.Seed(ctx, b.ID); err != nil {
			return nil, fmt.Errorf("failed to seed board: %w", err)
		}
	}

	return &boardResult{Board: b, verb: "created"}, nil
}

func parseCreateFlags(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseString("title")
	return err
}
