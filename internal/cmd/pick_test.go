package cmd

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/runger/datewheel/internal/config"
)

func parsePickFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("pick", pflag.ContinueOnError)
	addPickFlags(fs, &pickFlags{})
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error: %v", args, err)
	}
	return fs
}

func TestApplyPickFlags_NoFlagsKeepsConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Date.MaxYear = 2030
	cfg.Date.ThroughToday = false

	if err := applyPickFlags(parsePickFlags(t), cfg); err != nil {
		t.Fatalf("applyPickFlags error: %v", err)
	}
	if cfg.Date.MaxYear != 2030 {
		t.Errorf("max_year = %d, want 2030", cfg.Date.MaxYear)
	}
	if cfg.Date.ThroughToday {
		t.Error("an unset --through-today flag must not override the config")
	}
}

func TestApplyPickFlags_Overrides(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := parsePickFlags(t,
		"--mode", "Dialog",
		"--max-year", "2040",
		"--format", "yyyy-MM-dd",
		"--date", "2001-02-03",
		"--through-today=false",
		"--month-format", "MMM",
	)

	if err := applyPickFlags(fs, cfg); err != nil {
		t.Fatalf("applyPickFlags error: %v", err)
	}

	want := config.DateConfig{
		MaxYear:       2040,
		DisplayFormat: "yyyy-MM-dd",
		DefaultDate:   "2001-02-03",
		ThroughToday:  false,
		MonthFormat:   "MMM",
		Mode:          "dialog",
	}
	if cfg.Date != want {
		t.Errorf("date config = %+v, want %+v", cfg.Date, want)
	}
}

func TestApplyPickFlags_FormatRewritesDefaultDate(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := applyPickFlags(parsePickFlags(t, "--format", "d MMMM yyyy"), cfg); err != nil {
		t.Fatalf("applyPickFlags error: %v", err)
	}
	if cfg.Date.DefaultDate != "1 November 1970" {
		t.Errorf("default_date = %q, want %q", cfg.Date.DefaultDate, "1 November 1970")
	}
}

func TestApplyPickFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"mode", []string{"--mode", "popup"}, "--mode"},
		{"max year", []string{"--max-year", "1900"}, "--max-year"},
		{"format", []string{"--format", "QQ"}, "--format"},
		{"month format", []string{"--month-format", "'MMM"}, "--month-format"},
		{"date mismatch", []string{"--date", "2020-01-01"}, "default_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := applyPickFlags(parsePickFlags(t, tt.args...), config.DefaultConfig())
			if err == nil {
				t.Fatal("applyPickFlags should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestReformatDate(t *testing.T) {
	got, err := reformatDate("4/7/1990", "dd/MM/yyyy", "yyyy-MM-dd")
	if err != nil {
		t.Fatalf("reformatDate error: %v", err)
	}
	if got != "1990-07-04" {
		t.Errorf("reformatDate = %q, want 1990-07-04", got)
	}

	if _, err := reformatDate("1990-07-04", "dd/MM/yyyy", "yyyy"); err == nil {
		t.Error("reformatDate should fail when the date does not match")
	}
}

func TestExecArgs(t *testing.T) {
	tests := []struct {
		cmdline string
		want    []string
	}{
		{"echo {date}", []string{"echo", "2024-02-29"}},
		{`git log --since="{date} 00:00"`, []string{"git", "log", "--since=2024-02-29 00:00"}},
		{"printf '%s\\n' 'due {date}'", []string{"printf", "%s\\n", "due 2024-02-29"}},
		{"true", []string{"true"}},
	}
	for _, tt := range tests {
		t.Run(tt.cmdline, func(t *testing.T) {
			got, err := execArgs(tt.cmdline, "2024-02-29")
			if err != nil {
				t.Fatalf("execArgs error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("execArgs = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := execArgs("   ", "x"); err == nil {
		t.Error("execArgs should reject an empty command")
	}
}

func TestCheckTERM(t *testing.T) {
	t.Setenv("TERM", "dumb")
	if err := checkTERM(); err == nil {
		t.Error("checkTERM should fail for TERM=dumb")
	}

	t.Setenv("TERM", "xterm-256color")
	if err := checkTERM(); err != nil {
		t.Errorf("checkTERM error: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"cancelled", &exitError{code: exitCancelled}, exitCancelled},
		{"fallback", &exitError{exitFallback, errors.New("no tty")}, exitFallback},
		{"wrapped", errors.Join(errors.New("ctx"), &exitError{code: exitFallback}), exitFallback},
		{"plain", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}

	if msg := (&exitError{code: exitCancelled}).Error(); msg != "" {
		t.Errorf("a quiet exit should have an empty message, got %q", msg)
	}
}
