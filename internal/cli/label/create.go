package label

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// CreateCmd returns the label create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new label",
		Long: `Create a new label with a name and color.

Examples:
  # Create label (human-readable output)
  tablero label create --name="bug" --color="#FF0000" --board=<board-id>

  # JSON output for agents
  tablero label create --name="bug" --color="#FF0000" --json

  # Quiet mode for bash capture
  LABEL_ID=$(tablero label create --name="bug" --color="#FF0000" --quiet)
`,
		RunE: handler.Command(&createHandler{}, parseCreateFlags),
	}

	// Required flags
	cmd.Flags().String("name", "", "Label name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().String("color", "", "Label color in hex format #RRGGBB (required)")
	if err := cmd.MarkFlagRequired("color"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().String("board", "", "Board ID (uses TABLERO_BOARD env var if not specified)")
	cli.AddOutputFlags(cmd)

	return cmd
}

// createHandler implements handler.Handler for label creation
type createHandler struct{}

// Execute implements the Handler interface
func (h *createHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	boardID, err := cli.GetBoardID(args.GetCmd())
	if err != nil {
		return nil, err
	}

	// Validate color format
	color := args.GetString("color", "")
	if err := cli.ValidateColorHex(color); err != nil {
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
	label, err := svc.CreateLabel(ctx, boardID, args.GetString("name", ""), color)
	if err != nil {
		return nil, fmt.Errorf("label creation error: %w", err)
	}
	return &labelResult{Label: label, verb: "created"}, nil
}

func parseCreateFlags(cmd *cobra.Command) error {
	p := handler.NewFlagParser(cmd)
	if _, err := p.ParseBoardID(); err != nil {
		return err
	}
	_, err := p.ParseString("name")
	return err
}
