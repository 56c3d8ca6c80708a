//go:build !windows

package cmd

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const ttyPath = "/dev/tty"

// termWidth returns the column count of the terminal behind f, or 0 if f is
// not a terminal.
func termWidth(f *os.File) int {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 0
	}
	return int(ws.Col)
}

// openTTY opens the controlling terminal for reading and writing.
func openTTY() (*os.File, error) {
	f, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("no TTY available: %w", err)
	}
	return f, nil
}
