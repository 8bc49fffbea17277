// Command countdown runs a countdown timer from the command line.
//
// Usage:
//
//	countdown <command> [flags]
//
// Commands:
//
//	run          Count down until the timer expires (or pulse with -auto-restart)
//	interactive  Drive a timer from an interactive prompt
//
// Examples:
//
//	# Three-minute timer
//	countdown run -duration 180
//
//	# Pulse every 30s, five times, recording events
//	countdown run -duration 30s -auto-restart -pulses 5 -event-log pulses.clog
//
//	# Settings from a file, label overridden
//	countdown run -config tea.yaml -label green-tea
//
//	# Interactive prompt
//	countdown interactive -duration 1m
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mash-protocol/countdown/internal/config"
	"github.com/mash-protocol/countdown/pkg/duration"
	"github.com/mash-protocol/countdown/pkg/log"
)

const usage = `countdown - Countdown timer

Usage:
  countdown <command> [flags]

Commands:
  run          Count down until the timer expires (or pulse with -auto-restart)
  interactive  Drive a timer from an interactive prompt

Use "countdown <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = runRun(args)
	case "interactive", "i":
		err = runInteractive(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// timerFlags are the flags shared by all commands.
type timerFlags struct {
	configFile   string
	label        string
	duration     string
	start        bool
	autoRestart  bool
	pulses       int
	pollInterval time.Duration
	eventLog     string
	logLevel     string
}

func (f *timerFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configFile, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&f.label, "label", "", "Timer label recorded in events")
	fs.StringVar(&f.duration, "duration", "", "Timer duration: seconds (\"90\", \"1.5\") or Go duration (\"1m30s\")")
	fs.BoolVar(&f.autoRestart, "auto-restart", false, "Restart the timer on expiry")
	fs.IntVar(&f.pulses, "pulses", config.DefaultPulses, "Expiries to wait for with -auto-restart (0 = until interrupted)")
	fs.DurationVar(&f.pollInterval, "poll", config.DefaultPollInterval, "Poll interval")
	fs.StringVar(&f.eventLog, "event-log", "", "Append timer events to this CBOR log file")
	fs.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
}

// registerStart adds -start. Only interactive registers it; run always
// starts the timer.
func (f *timerFlags) registerStart(fs *flag.FlagSet) {
	fs.BoolVar(&f.start, "start", false, "Start the timer immediately")
}

// resolve loads the config file, if any, and applies the flags that were
// set explicitly on top of it.
func (f *timerFlags) resolve(fs *flag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if f.configFile != "" {
		loaded, err := config.Load(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	var flagErr error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "label":
			cfg.Label = f.label
		case "duration":
			d, err := duration.Parse(f.duration)
			if err != nil {
				flagErr = fmt.Errorf("-duration: %w", err)
				return
			}
			cfg.Duration = config.Duration(d)
		case "start":
			cfg.StartImmediately = f.start
		case "auto-restart":
			cfg.AutoRestart = f.autoRestart
		case "pulses":
			cfg.Pulses = f.pulses
		case "poll":
			cfg.PollInterval = config.Duration(f.pollInterval)
		case "event-log":
			cfg.EventLog = f.eventLog
		case "log-level":
			cfg.LogLevel = f.logLevel
		}
	})
	if flagErr != nil {
		return nil, flagErr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setupLogging returns the operational logger and the timer event logger.
// The returned close function must be called to flush the event log.
func setupLogging(cfg *config.Config, stderr io.Writer) (*slog.Logger, log.Logger, func() error, error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	events := []log.Logger{log.NewSlogAdapter(logger)}
	closeFn := func() error { return nil }

	if cfg.EventLog != "" {
		fl, err := log.NewFileLogger(cfg.EventLog)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open event log: %w", err)
		}
		events = append(events, fl)
		closeFn = fl.Close
		logger.Debug("event log opened", "path", cfg.EventLog)
	}

	return logger, log.NewMultiLogger(events...), closeFn, nil
}
