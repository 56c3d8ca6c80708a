package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/datewheel/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set datewheel configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.config/datewheel/config.yaml (XDG compliant).

Keys are in the format: section.key
Sections: date, picker, log

Examples:
  datewheel config                            # List all keys
  datewheel config date.display_format        # Get the output pattern
  datewheel config date.display_format yyyy-MM-dd
  datewheel config picker.clamp_on_shrink true`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.OutOrStdout()
	switch len(args) {
	case 0:
		return listConfig(out, cfg, paths)
	case 1:
		return getConfig(out, cfg, args[0])
	case 2:
		return setConfig(out, cfg, paths, args[0], args[1])
	}

	return nil
}

func listConfig(w io.Writer, cfg *config.Config, paths *config.Paths) error {
	fmt.Fprintf(w, "%sConfiguration Keys%s\n", colorBold, colorReset)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintln(w)

	keys := config.ListKeys()
	var failedKeys []string
	for _, key := range keys {
		value, err := cfg.Get(key)
		if err != nil {
			failedKeys = append(failedKeys, key)
			continue
		}

		displayValue := value
		if displayValue == "" {
			displayValue = colorDim + "(not set)" + colorReset
		}

		fmt.Fprintf(w, "  %s%s%s = %s\n", colorCyan, key, colorReset, displayValue)
	}

	if len(failedKeys) > 0 {
		fmt.Fprintf(w, "\n%sWarning:%s Failed to retrieve keys: %s\n", colorYellow, colorReset, strings.Join(failedKeys, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Config file: %s\n", paths.ConfigFile())

	return nil
}

func getConfig(w io.Writer, cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}

	if value == "" {
		fmt.Fprintf(w, "%s(not set)%s\n", colorDim, colorReset)
	} else {
		fmt.Fprintln(w, value)
	}

	return nil
}

func setConfig(w io.Writer, cfg *config.Config, paths *config.Paths, key, value string) error {
	prevFormat := cfg.Date.DisplayFormat
	if err := cfg.Set(key, value); err != nil {
		return err
	}

	// Keep the default date readable under a new display format.
	if key == "date.display_format" {
		if d, err := reformatDate(cfg.Date.DefaultDate, prevFormat, value); err == nil {
			cfg.Date.DefaultDate = d
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := cfg.SaveToFile(paths.ConfigFile()); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s%s%s = %s\n", colorCyan, key, colorReset, value)
	fmt.Fprintf(w, "Saved to: %s\n", paths.ConfigFile())

	return nil
}
