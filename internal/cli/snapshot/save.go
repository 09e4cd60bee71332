package snapshot

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	snapfile "github.com/thenoetrevino/tablero/internal/snapshot"
)

// SaveCmd returns the snapshot save subcommand
func SaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Write every board to a snapshot file",
		Long: `Write every board, list, card and label to a snapshot file. An
existing file is replaced atomically.

Examples:
  tablero snapshot save --output=backup.tablero
`,
		RunE: handler.Command(handler.HandlerFunc(saveSnapshot), nil),
	}

	cmd.Flags().StringP("output", "o", "", "Snapshot file to write (required)")
	_ = cmd.MarkFlagRequired("output")
	cli.AddOutputFlags(cmd)

	return cmd
}

func saveSnapshot(ctx context.Context, args *handler.Arguments) (any, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	snap, err := cliInstance.App.DashboardService.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	path := args.GetString("output", "")
	savedAt := cliInstance.App.Clock.Now().UTC()
	if err := snapfile.Save(path, snap, savedAt); err != nil {
		return nil, err
	}

	return &fileInfo{
		Path:    path,
		Version: snapfile.FormatVersion,
		SavedAt: savedAt,
		Counts:  countsOf(snap),
		verb:    "saved",
	}, nil
}
