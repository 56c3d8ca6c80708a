package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/shlex"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/runger/datewheel/internal/config"
	"github.com/runger/datewheel/internal/datepicker"
	"github.com/runger/datewheel/internal/daterange"
)

// pickFlags holds the command-line options of pick. Flags left unset fall
// back to the config file.
type pickFlags struct {
	mode         string
	maxYear      int
	format       string
	date         string
	throughToday bool
	monthFormat  string
	title        string
	exec         string
}

var pickOpts pickFlags

// pickFlagKeys maps flags onto the config keys they override.
var pickFlagKeys = []struct{ flag, key string }{
	{"mode", "date.mode"},
	{"max-year", "date.max_year"},
	{"format", "date.display_format"},
	{"date", "date.default_date"},
	{"through-today", "date.through_today"},
	{"month-format", "date.month_format"},
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a date with scroll wheels",
	Long: `Open the day/month/year wheels on the terminal and print the picked date.

The picker draws on /dev/tty, so stdout stays free for the result:

  due=$(datewheel pick --format yyyy-MM-dd) || exit

Exit codes: 0 selected, 1 cancelled, 2 fallback (no TTY, TERM=dumb,
terminal too narrow, bad flags).

Examples:
  datewheel pick
  datewheel pick --mode dialog --title "Birthday" --date 4/7/1990
  datewheel pick --max-year 2030 --through-today=false
  datewheel pick --exec 'git log --since {date}' --format yyyy-MM-dd`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	addPickFlags(pickCmd.Flags(), &pickOpts)
}

func addPickFlags(fs *pflag.FlagSet, p *pickFlags) {
	fs.StringVar(&p.mode, "mode", "", "presentation: inline, sheet or dialog")
	fs.IntVar(&p.maxYear, "max-year", 0, "last selectable year (0 = current year)")
	fs.StringVar(&p.format, "format", "", "pattern of the printed date, e.g. dd/MM/yyyy")
	fs.StringVar(&p.date, "date", "", "initially selected date, written in --format")
	fs.BoolVar(&p.throughToday, "through-today", true, "hide dates after today")
	fs.StringVar(&p.monthFormat, "month-format", "", "month labels: MMMM, MMM, MM or M")
	fs.StringVar(&p.title, "title", "", "title shown with the wheels")
	fs.StringVar(&p.exec, "exec", "", "command to run with {date} replaced by the picked date")
}

func runPick(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, err := config.Load()
	if err != nil {
		return &exitError{exitFallback, fmt.Errorf("failed to load config: %w", err)}
	}
	if err := applyPickFlags(cmd.Flags(), cfg); err != nil {
		return &exitError{exitFallback, err}
	}

	logger, closeLog, err := newLogger(cfg.Log, paths, true)
	if err != nil {
		return &exitError{exitFallback, err}
	}
	defer closeLog()

	if err := checkTERM(); err != nil {
		return &exitError{exitFallback, err}
	}
	tty, err := openTTY()
	if err != nil {
		return &exitError{exitFallback, err}
	}
	defer tty.Close()

	opts := cfg.Date.Options()
	opts.Title = pickOpts.title
	opts.Logger = logger
	model, err := datepicker.New(opts, cfg.Picker.Wheel())
	if err != nil {
		return &exitError{exitFallback, err}
	}
	defer model.Close()

	if w := termWidth(tty); w > 0 && w < model.MinWidth() {
		return &exitError{exitFallback, fmt.Errorf("terminal too narrow (%d columns, need at least %d)", w, model.MinWidth())}
	}

	// stdout is usually a pipe here, so detect colors from the tty.
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	progOpts := []tea.ProgramOption{tea.WithInput(tty), tea.WithOutput(tty)}
	if datepicker.Mode(cfg.Date.Mode) != datepicker.ModeInline {
		progOpts = append(progOpts, tea.WithAltScreen(), tea.WithMouseCellMotion())
	}

	logger.Debug("picker starting", "mode", cfg.Date.Mode, "version", Version)
	final, err := tea.NewProgram(model, progOpts...).Run()
	if err != nil {
		return &exitError{exitFallback, fmt.Errorf("TUI error: %w", err)}
	}

	m, ok := final.(datepicker.Model)
	if !ok {
		return &exitError{exitFallback, errors.New("unexpected model type")}
	}
	if m.IsCancelled() || m.Result() == "" {
		logger.Info("picker cancelled")
		return &exitError{code: exitCancelled}
	}

	result := m.Result()
	logger.Info("date selected", "date", result)
	fmt.Fprintln(cmd.OutOrStdout(), result)

	if pickOpts.exec != "" {
		return runExec(cmd, pickOpts.exec, result)
	}
	return nil
}

// applyPickFlags writes explicitly set flags over cfg and validates the
// result. A new --format without --date rewrites the configured default
// date into the new pattern.
func applyPickFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	prevFormat, prevDate := cfg.Date.DisplayFormat, cfg.Date.DefaultDate

	for _, fk := range pickFlagKeys {
		f := fs.Lookup(fk.flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := cfg.Set(fk.key, f.Value.String()); err != nil {
			return fmt.Errorf("--%s: %w", fk.flag, err)
		}
	}

	if fs.Changed("format") && !fs.Changed("date") {
		if d, err := reformatDate(prevDate, prevFormat, cfg.Date.DisplayFormat); err == nil {
			cfg.Date.DefaultDate = d
		}
	}

	return cfg.Validate()
}

func reformatDate(date, from, to string) (string, error) {
	src, err := daterange.Compile(from)
	if err != nil {
		return "", err
	}
	dst, err := daterange.Compile(to)
	if err != nil {
		return "", err
	}
	fields, err := src.Parse(date)
	if err != nil {
		return "", err
	}
	return dst.Format(fields), nil
}

// checkTERM verifies that the TERM environment variable is not "dumb".
func checkTERM() error {
	if os.Getenv("TERM") == "dumb" {
		return errors.New("TERM=dumb is not supported")
	}
	return nil
}

// execArgs splits cmdline with shell quoting rules and substitutes {date}
// in every argument.
func execArgs(cmdline, date string) ([]string, error) {
	args, err := shlex.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("--exec: %w", err)
	}
	if len(args) == 0 {
		return nil, errors.New("--exec: empty command")
	}
	for i, a := range args {
		args[i] = strings.ReplaceAll(a, "{date}", date)
	}
	return args, nil
}

func runExec(cmd *cobra.Command, cmdline, date string) error {
	args, err := execArgs(cmdline, date)
	if err != nil {
		return err
	}
	c := exec.Command(args[0], args[1:]...)
	c.Stdin = os.Stdin
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		return fmt.Errorf("--exec %s: %w", args[0], err)
	}
	return nil
}
