package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/datewheel/internal/config"
)

var (
	logsFollow bool
	logsLines  int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View picker logs",
	Long: `View the datewheel log file.

While the picker runs it owns the terminal, so it logs to a file
(log.file, or the state directory when unset).

Examples:
  datewheel logs              # Show last 50 lines
  datewheel logs -f           # Follow log output
  datewheel logs --lines=100  # Show last 100 lines`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 50, "Number of lines to show")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = config.DefaultPaths().LogFile()
	}

	out := cmd.OutOrStdout()
	f, err := os.Open(logFile)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(out, "No log file found at: %s\n", logFile)
		fmt.Fprintln(out, "The picker may not have been run yet.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	if logsFollow {
		return followLogs(cmd.Context(), f, out)
	}

	lines, err := tailLines(f, logsLines)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}

// tailLines returns the last n lines of r.
func tailLines(r io.Reader, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	ring := make([]string, n)
	count := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		ring[count%n] = sc.Text()
		count++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	if count <= n {
		return ring[:count], nil
	}
	start := count % n
	return append(ring[start:], ring[:start]...), nil
}

// followLogs copies lines appended to f until ctx is done.
func followLogs(ctx context.Context, f *os.File, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	fmt.Fprintf(w, "Following %s (Ctrl+C to stop)...\n\n", f.Name())

	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			fmt.Fprint(w, line)
		}
		if err == nil {
			continue
		}
		if err != io.EOF {
			return fmt.Errorf("error reading log: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}
