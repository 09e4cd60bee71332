package label

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	"github.com/thenoetrevino/tablero/internal/models"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
)

// UpdateCmd returns the label update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a label",
		Long: `Update a label's name and/or color. Every card carrying the label
picks up the change.

Examples:
  # Update both name and color
  tablero label update --label=<label-id> --name="critical-bug" --color="#FF0000"

  # Update only color (keeps existing name)
  tablero label update --label=<label-id> --color="#FF0000"
`,
		RunE: handler.Command(handler.HandlerFunc(updateLabel), parseUpdateFlags),
	}

	addLabelFlag(cmd)
	cmd.Flags().String("name", "", "New label name")
	cmd.Flags().String("color", "", "New label color in hex format #RRGGBB")
	cli.AddOutputFlags(cmd)

	return cmd
}

func updateLabel(ctx context.Context, args *handler.Arguments) (any, error) {
	labelID := args.GetString("label", "")
	update := boardservice.LabelUpdate{
		Name:  args.GetStringPtr("name"),
		Color: args.GetStringPtr("color"),
	}
	if update.Color != nil {
		if err := cli.ValidateColorHex(*update.Color); err != nil {
			return nil, err
		}
	}

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
	if err := svc.UpdateLabel(ctx, labelID, update); err != nil {
		return nil, fmt.Errorf("label update error: %w", err)
	}

	l, err := findLabel(svc, boardID, labelID)
	if err != nil {
		return nil, err
	}
	return &labelResult{Label: l, verb: "updated"}, nil
}

func parseUpdateFlags(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("color") {
		return errors.New("at least one of --name or --color must be specified")
	}
	return nil
}

func addLabelFlag(cmd *cobra.Command) {
	cmd.Flags().String("label", "", "Label ID (required)")
	_ = cmd.MarkFlagRequired("label")
}

func findLabel(svc boardservice.Service, boardID, labelID string) (*models.Label, error) {
	for _, l := range svc.Labels(boardID) {
		if l.ID == labelID {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", boardservice.ErrLabelNotFound, labelID)
}
