package main

import (
	"context"
	"os"

	"github.com/thenoetrevino/tablero/cmd"
	"github.com/thenoetrevino/tablero/internal/cli"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
