package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// Exit codes of the pick command, for shell scripts:
//
//	0 = date selected (printed on stdout)
//	1 = cancelled by user
//	2 = fallback (no TTY, TERM=dumb, narrow terminal, bad flags)
const (
	exitSuccess   = 0
	exitCancelled = 1
	exitFallback  = 2
)

// exitError carries a process exit code. A nil err means exit quietly.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

var rootCmd = &cobra.Command{
	Use:   "datewheel",
	Short: "scroll-wheel date picker for the terminal",
	Long: `datewheel - pick a date with three scroll wheels
  - day, month and year columns that scroll, snap and emphasize the centered item
  - prints the picked date on stdout for use in scripts`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyColorMode()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color output: auto, always, or never")

	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(rangesCmd)
	rootCmd.AddCommand(versionCmd)
}
