package label

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// DeleteCmd returns the label delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a label",
		Long:  "Delete a label and remove it from every card (requires confirmation unless --force, --json or --quiet).",
		RunE:  handler.SimpleCommand(handler.HandlerFunc(deleteLabel)),
	}

	addLabelFlag(cmd)
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func deleteLabel(ctx context.Context, args *handler.Arguments) (any, error) {
	cmd := args.GetCmd()
	labelID := args.GetString("label", "")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	svc := cliInstance.App.BoardService
	boardID, err := svc.LoadBoardForLabel(ctx, labelID)
	if err != nil {
		return nil, err
	}
	l, err := findLabel(svc, boardID, labelID)
	if err != nil {
		return nil, err
	}

	if cli.NeedsConfirmation(cmd) && !cli.Confirm(cmd, fmt.Sprintf("Delete label '%s' from the board and all its cards?", l.Name)) {
		return &cli.DeleteResult{ID: labelID, Kind: "Label"}, nil
	}
	if err := svc.DeleteLabel(ctx, labelID); err != nil {
		return nil, fmt.Errorf("label deletion error: %w", err)
	}
	return &cli.DeleteResult{ID: labelID, Kind: "Label", Deleted: true}, nil
}
