package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runger/datewheel/internal/config"
	"github.com/runger/datewheel/internal/daterange"
)

type rangesFlags struct {
	year         int // 0 = current year
	month        int // 1..12, 0 = current month
	maxYear      int
	throughToday bool
	monthFormat  string
	output       string
}

var rangesOpts rangesFlags

var rangesCmd = &cobra.Command{
	Use:   "ranges years|months|days",
	Short: "Print the options a wheel column offers",
	Long: `Print the labels the picker would offer in one column.

Examples:
  datewheel ranges years --max-year 2030
  datewheel ranges months --year 2025 --month-format MMM
  datewheel ranges days --year 2024 --month 2 --output json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"years", "months", "days"},
	RunE:      runRanges,
}

func init() {
	f := rangesCmd.Flags()
	f.IntVar(&rangesOpts.year, "year", 0, "year of the months/days (default current year)")
	f.IntVar(&rangesOpts.month, "month", 0, "month of the days, 1-12 (default current month)")
	f.IntVar(&rangesOpts.maxYear, "max-year", 0, "last year (default date.max_year, then current year)")
	f.BoolVar(&rangesOpts.throughToday, "through-today", true, "hide dates after today")
	f.StringVar(&rangesOpts.monthFormat, "month-format", "", "month labels: MMMM, MMM, MM or M")
	f.StringVarP(&rangesOpts.output, "output", "o", "text", "output format: text, lines, json or yaml")
}

// rangeOutput is the machine-readable form of one column.
type rangeOutput struct {
	Kind   string   `json:"kind" yaml:"kind"`
	Year   int      `json:"year,omitempty" yaml:"year,omitempty"`
	Month  int      `json:"month,omitempty" yaml:"month,omitempty"`
	Labels []string `json:"labels" yaml:"labels"`
}

func runRanges(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, closeLog, err := newLogger(cfg.Log, config.DefaultPaths(), false)
	if err != nil {
		return err
	}
	defer closeLog()

	r := rangesOpts
	flags := cmd.Flags()
	if !flags.Changed("max-year") {
		r.maxYear = cfg.Date.MaxYear
	}
	if !flags.Changed("through-today") {
		r.throughToday = cfg.Date.ThroughToday
	}
	if r.monthFormat == "" {
		r.monthFormat = cfg.Date.MonthFormat
	}
	if _, err := daterange.Compile(r.monthFormat); err != nil {
		return fmt.Errorf("--month-format: %w", err)
	}

	provider := daterange.New(
		daterange.WithMonthFormat(r.monthFormat),
		daterange.WithLogger(logger),
	)
	out, err := computeRange(provider, args[0], r)
	if err != nil {
		return err
	}
	return writeRange(cmd.OutOrStdout(), out, r.output)
}

func computeRange(p *daterange.Provider, kind string, r rangesFlags) (rangeOutput, error) {
	year := r.year
	if year == 0 {
		year = p.CurrentYear()
	}
	month := r.month
	if month == 0 {
		month = p.CurrentMonthIndex() + 1
	}

	out := rangeOutput{Kind: kind}
	var err error
	switch kind {
	case "years":
		maxYear := r.maxYear
		if maxYear == 0 {
			maxYear = p.CurrentYear()
		}
		out.Labels, err = p.YearsUpTo(maxYear)
	case "months":
		out.Year = year
		out.Labels, err = p.MonthsInYear(year, r.throughToday)
	case "days":
		if month < 1 || month > 12 {
			return rangeOutput{}, fmt.Errorf("--month must be 1-12 (got %d)", month)
		}
		out.Year, out.Month = year, month
		out.Labels, err = p.DaysInMonth(year, month-1, r.throughToday)
	default:
		return rangeOutput{}, fmt.Errorf("unknown range %q (want years, months or days)", kind)
	}
	if err != nil {
		return rangeOutput{}, err
	}
	return out, nil
}

func writeRange(w io.Writer, out rangeOutput, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case "lines":
		for _, label := range out.Labels {
			fmt.Fprintln(w, label)
		}
		return nil
	case "text", "":
		fmt.Fprintf(w, "%s%s%s\n", colorBold, rangeTitle(out), colorReset)
		for _, row := range gridRows(out.Labels, terminalWidth()) {
			fmt.Fprintln(w, row)
		}
		return nil
	default:
		return fmt.Errorf("--output must be text, lines, json or yaml (got %q)", format)
	}
}

func rangeTitle(out rangeOutput) string {
	switch out.Kind {
	case "months":
		return fmt.Sprintf("Months of %d", out.Year)
	case "days":
		return fmt.Sprintf("Days of %d/%d", out.Month, out.Year)
	default:
		return "Years"
	}
}

// gridRows lays labels out left to right in equal-width cells that fit
// within width.
func gridRows(labels []string, width int) []string {
	if len(labels) == 0 {
		return nil
	}
	cell := 0
	for _, l := range labels {
		cell = max(cell, runewidth.StringWidth(l))
	}
	const sep = "  "
	perRow := max(1, (width+len(sep))/(cell+len(sep)))

	var rows []string
	for start := 0; start < len(labels); start += perRow {
		end := min(start+perRow, len(labels))
		cells := make([]string, 0, end-start)
		for _, l := range labels[start:end] {
			cells = append(cells, runewidth.FillRight(l, cell))
		}
		rows = append(rows, strings.TrimRight(strings.Join(cells, sep), " "))
	}
	return rows
}
