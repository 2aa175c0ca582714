package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arthur-debert/barkeep/internal/cli"
	"github.com/arthur-debert/barkeep/pkg/ui"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			printError(err)
		}
		os.Exit(1)
	}
}

func printError(err error) {
	r, rerr := ui.NewRenderer(ui.FormatAuto, os.Stderr)
	if rerr == nil && r.RenderError(err) == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
