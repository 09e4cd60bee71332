// Package serve holds the command that runs the HTTP API
// e.g., tablero serve
package serve

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and websocket server",
		Long: `Serve the board and dashboard API under /api and push change events
to websocket clients on /ws. Stops cleanly on SIGINT or SIGTERM.

Examples:
  tablero serve
  tablero serve --addr=127.0.0.1:9090
`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	a := cliInstance.App
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		a.Config.Server.Addr = addr
	}

	slog.Info("tablero server starting", "addr", a.Config.Server.Addr, "pid", os.Getpid())

	// Blocks until shutdown
	if err := a.Server().Run(ctx); err != nil {
		return err
	}

	slog.Info("tablero server shut down gracefully")
	return nil
}
