package snapshot

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	snapfile "github.com/thenoetrevino/tablero/internal/snapshot"
)

// InspectCmd returns the snapshot inspect subcommand
func InspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show what a snapshot file contains",
		Long: `Show the format version, save time and entity counts of a snapshot
file. Corrupt files and files from a newer version exit with code 4.

Examples:
  tablero snapshot inspect --file=backup.tablero
`,
		RunE: handler.Command(handler.HandlerFunc(inspectSnapshot), nil),
	}

	cmd.Flags().String("file", "", "Snapshot file to read (required)")
	_ = cmd.MarkFlagRequired("file")
	cli.AddOutputFlags(cmd)

	return cmd
}

// inspectSnapshot reads the file only; no database is opened
func inspectSnapshot(_ context.Context, args *handler.Arguments) (any, error) {
	path := args.GetString("file", "")
	f, err := snapfile.Load(path)
	if err != nil {
		return nil, err
	}
	return &fileInfo{
		Path:    path,
		Version: f.Version,
		SavedAt: f.SavedAt,
		Counts:  countsOf(&f.Snapshot),
	}, nil
}
