package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	"github.com/thenoetrevino/tablero/internal/export"
)

// ExportCmd returns the dashboard export subcommand
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dashboard report",
		Long: `Export the dashboard report as JSON, YAML or Markdown.

Without --output the document is written to stdout. --render styles the
Markdown report for the terminal instead.

Examples:
  tablero dashboard export --format=markdown --output=report.md
  tablero dashboard export --format=yaml --range=month
  tablero dashboard export --render
`,
		RunE: handler.Command(handler.HandlerFunc(exportReport), nil),
	}

	addScopeFlags(cmd)
	cmd.Flags().String("format", "json", "Document format: json, yaml or markdown")
	cmd.Flags().StringP("output", "o", "", "Write the document to this file")
	cmd.Flags().Bool("render", false, "Render Markdown for the terminal")
	cmd.Flags().Int("width", 100, "Rendered width in columns")
	cmd.Flags().String("snapshot", "", "Read a snapshot file instead of the database")
	cli.AddOutputFlags(cmd)

	return cmd
}

// document is the export written straight to stdout
type document struct {
	*export.Document
	text string
}

// Human implements cli.Humanizer
func (d *document) Human() string { return d.text }

// written reports an export saved to a file
type written struct {
	Path   string        `json:"path"`
	Format export.Format `json:"format"`
	Bytes  int           `json:"bytes"`
}

// Human implements cli.Humanizer
func (w *written) Human() string {
	return fmt.Sprintf("✓ %s report written to %s (%d bytes)", w.Format, w.Path, w.Bytes)
}

func exportReport(ctx context.Context, args *handler.Arguments) (any, error) {
	format, err := export.ParseFormat(args.GetString("format", "json"))
	if err != nil {
		return nil, err
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	scope, err := scopeFromArgs(args, cliInstance)
	if err != nil {
		return nil, err
	}
	m, err := metrics(ctx, cliInstance, scope, args.GetString("snapshot", ""))
	if err != nil {
		return nil, err
	}
	doc := export.FromMetrics(m)
	doc.Layout = cliInstance.App.Config.Dashboard.ReportLayout()

	if args.GetBool("render") {
		return &document{Document: doc, text: doc.RenderTerminal(args.GetInt("width", 100))}, nil
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf, format); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	if path := args.GetString("output", ""); path != "" {
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		return &written{Path: path, Format: format, Bytes: buf.Len()}, nil
	}
	return &document{Document: doc, text: string(bytes.TrimRight(buf.Bytes(), "\n"))}, nil
}
