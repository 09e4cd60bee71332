package list

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
)

// RenameCmd returns the list rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Change a list's title",
		RunE: handler.Command(handler.HandlerFunc(renameList), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseString("title")
			return err
		}),
	}

	addListFlag(cmd)
	cmd.Flags().String("title", "", "New title (required)")
	_ = cmd.MarkFlagRequired("title")
	cli.AddOutputFlags(cmd)

	return cmd
}

func renameList(ctx context.Context, args *handler.Arguments) (any, error) {
	listID := args.GetString("list", "")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	svc := cliInstance.App.BoardService
	if _, err := svc.LoadBoardForList(ctx, listID); err != nil {
		return nil, err
	}
	if err := svc.UpdateList(ctx, listID, args.GetString("title", "")); err != nil {
		return nil, fmt.Errorf("list update error: %w", err)
	}
	return result(ctx, svc, listID, "renamed")
}

// result re-reads the list after a change
func result(ctx context.Context, svc boardservice.Service, listID, verb string) (*listResult, error) {
	boardID, err := svc.LoadBoardForList(ctx, listID)
	if err != nil {
		return nil, err
	}
	for _, l := range svc.Lists(boardID) {
		if l.ID == listID {
			return &listResult{List: l, verb: verb}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", boardservice.ErrListNotFound, listID)
}
