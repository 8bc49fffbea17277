package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mash-protocol/countdown/cmd/countdown/interactive"
	"github.com/mash-protocol/countdown/pkg/countdown"
)

func runInteractive(args []string) error {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `countdown interactive - Drive a timer from an interactive prompt

Usage:
  countdown interactive [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	var flags timerFlags
	flags.register(fs)
	flags.registerStart(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := flags.resolve(fs)
	if err != nil {
		return err
	}

	prompt, err := interactive.New()
	if err != nil {
		return err
	}
	defer prompt.Close()

	// Logs go through readline so they don't clobber the prompt.
	logger, events, closeEvents, err := setupLogging(cfg, prompt.Stderr())
	if err != nil {
		return err
	}
	defer func() {
		if err := closeEvents(); err != nil {
			logger.Warn("failed to close event log", "error", err)
		}
	}()

	opts := []countdown.Option{
		countdown.WithLabel(cfg.Label),
		countdown.WithLogger(events),
	}
	if cfg.StartImmediately {
		opts = append(opts, countdown.StartImmediately())
	}
	timer, err := countdown.New(time.Duration(cfg.Duration), opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	prompt.Run(ctx, cancel, interactive.NewSession(timer))
	return nil
}
