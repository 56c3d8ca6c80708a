//go:build windows

package cmd

import (
	"errors"
	"os"
)

// termWidth returns 0 on Windows; width detection falls back to $COLUMNS.
func termWidth(*os.File) int {
	return 0
}

// openTTY is unsupported on Windows, so pick always falls back.
func openTTY() (*os.File, error) {
	return nil, errors.New("no TTY available on windows")
}
