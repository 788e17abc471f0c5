package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/five82/quayside/internal/config"
	"github.com/five82/quayside/internal/logtail"
)

// LogsCmd returns the logs command.
func LogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of quayside's log file",
		Long: `Print the last lines of quayside's own log file.

Examples:
  quayside logs
  quayside logs -n 200
  quayside logs --level error`,
		Args: cobra.NoArgs,
		RunE: runLogs,
	}

	cmd.Flags().IntP("lines", "n", 50, "number of lines to read (0 for the whole file)")
	cmd.Flags().String("level", "debug", "minimum level: debug, info, warn or error")

	return cmd
}

func runLogs(cmd *cobra.Command, args []string) error {
	lines, _ := cmd.Flags().GetInt("lines")
	levelArg, _ := cmd.Flags().GetString("level")

	minLevel, err := zapcore.ParseLevel(strings.ToLower(levelArg))
	if err != nil {
		return fmt.Errorf("level: %w", err)
	}

	opts := sessionOptions(cmd)
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Apply(opts.Overrides); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}

	raw, err := logtail.Read(cfg.LogPath(), lines)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	entries := logtail.FilterLevel(raw, minLevel)
	if len(entries) == 0 {
		fmt.Fprintf(out, "No log entries in %s\n", cfg.LogPath())
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintln(out, colorizeEntry(entry))
	}
	return nil
}

func colorizeEntry(entry logtail.Entry) string {
	if !entry.Parsed {
		return color.New(color.Faint).Sprint(entry.Raw)
	}
	var levelColor *color.Color
	switch {
	case entry.Level >= zapcore.ErrorLevel:
		levelColor = color.New(color.FgRed, color.Bold)
	case entry.Level == zapcore.WarnLevel:
		levelColor = color.New(color.FgYellow)
	case entry.Level == zapcore.InfoLevel:
		levelColor = color.New(color.FgCyan)
	default:
		levelColor = color.New(color.Faint)
	}
	line := fmt.Sprintf("%s %s %s %s",
		entry.Time, levelColor.Sprintf("%-5s", entry.Level.CapitalString()), entry.Caller, entry.Message)
	if entry.Fields != "" {
		line += " " + color.New(color.FgHiBlack).Sprint(entry.Fields)
	}
	return line
}
