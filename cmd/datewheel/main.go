// Package main is the entry point for the datewheel CLI.
package main

import (
	"fmt"
	"os"

	"github.com/runger/datewheel/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "datewheel: %s\n", msg)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
