package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pattyalex/brand-journey-tracker/cmd"
	"github.com/pattyalex/brand-journey-tracker/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Command failures were already reported by the output formatter
		var cmdErr *cli.CommandError
		if !errors.As(err, &cmdErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
