// confview is a terminal viewer for a conference schedule feed. It
// fetches the talk list once at startup and lets the user narrow the
// visible set by day and by tag, entirely client-side.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"confview/internal/config"
	appLog "confview/internal/log"
	"confview/internal/schedule"
	"confview/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var endpoint string
	var logOutput string
	var day int

	flagSet := pflag.NewFlagSet("confview", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: <user config dir>/confview/config.yaml)")
	flagSet.StringVar(&endpoint, "endpoint", "", "feed URL (overrides config if set)")
	flagSet.IntVar(&day, "day", 0, "day-of-month selected at startup (overrides config if set)")
	flagSet.StringVar(&logOutput, "log-output", "", "write log records to this file (overrides config log_file)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	if configPath == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("cannot determine config directory: %w", err)
		}
		configPath = filepath.Join(base, "confview", "config.yaml")
	}

	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("cannot load config %s: %w", configPath, err)
	}

	// CLI overrides take precedence over the config file.
	if endpoint != "" {
		conf.Endpoint = endpoint
	}
	if day > 0 {
		conf.DefaultDay = day
	}
	if logOutput != "" {
		conf.LogFile = logOutput
	}

	// The TUI owns the terminal; log records go to a file when one is
	// configured and are discarded otherwise.
	if conf.LogFile != "" {
		file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file %s: %w", conf.LogFile, err)
		}
		defer file.Close()
		appLog.SetOutput(file)
	} else {
		appLog.SetOutput(io.Discard)
	}

	appLog.Info("confview starting",
		"config_path", configPath,
		"timezone", conf.Timezone,
		"default_day", conf.DefaultDay,
		"fetch_timeout_seconds", conf.FetchTimeoutSeconds,
	)

	client := schedule.NewClient(conf.Endpoint, conf.FetchTimeout())
	model := ui.NewModel(client, conf.Location(), conf.DefaultDay, conf.FetchTimeout())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `confview — interactive terminal viewer for a conference schedule.

Fetches the talk feed once at startup. Inside the viewer:

  j/k or ↑/↓    move through talks
  h/l or ←/→    switch day
  1-9           apply the nth tag of the selected talk as a filter
  Esc           clear all tag filters
  r             retry a failed fetch
  q             quit

Usage:
  confview [flags]

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
