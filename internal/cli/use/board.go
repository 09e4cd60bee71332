package use

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
)

// BoardCmd returns the use board subcommand
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board [board-id]",
		Short: "Set the board context for the current shell session",
		Long: `Print the shell command that sets ` + cli.EnvBoard + `. Evaluate it:

  eval $(tablero use board <board-id>)
  eval $(tablero use board --clear)
  tablero use board --show

The --board flag on other commands takes precedence over the variable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseBoard,
	}

	cmd.Flags().Bool("clear", false, "Clear the board context")
	cmd.Flags().Bool("show", false, "Show the board context")

	return cmd
}

func runUseBoard(cmd *cobra.Command, args []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if show, _ := cmd.Flags().GetBool("show"); show {
		return showBoard(cmd)
	}
	if unset, _ := cmd.Flags().GetBool("clear"); unset {
		fmt.Fprintf(out, "unset %s\n", cli.EnvBoard)
		fmt.Fprintln(errOut, "Cleared board context")
		return nil
	}
	if len(args) == 0 {
		return cli.UsageError("board id required\nUsage: eval $(tablero use board <board-id>)")
	}

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	svc := cliInstance.App.BoardService
	if err := svc.LoadBoard(cmd.Context(), args[0]); err != nil {
		fmt.Fprintln(errOut, "Suggestion: Use 'tablero board list' to see available boards")
		return err
	}
	b, _ := svc.Board(args[0])

	fmt.Fprintf(out, "export %s=%s\n", cli.EnvBoard, b.ID)
	fmt.Fprintf(errOut, "Now using board %s: %s\n", b.ID, b.Title)
	return nil
}

func showBoard(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	current := os.Getenv(cli.EnvBoard)
	if current == "" {
		fmt.Fprintln(out, "No board context set")
		fmt.Fprintln(out, "Use 'eval $(tablero use board <board-id>)' to set one")
		return nil
	}

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return fmt.Errorf("initialization error: %w", err)
	}
	defer cliInstance.Release()

	svc := cliInstance.App.BoardService
	if err := svc.LoadBoard(cmd.Context(), current); err != nil {
		fmt.Fprintf(out, "Current board: %s (board not found)\n", current)
		return nil
	}
	b, _ := svc.Board(current)
	fmt.Fprintf(out, "Current board: %s (%s)\n", b.ID, b.Title)
	return nil
}
