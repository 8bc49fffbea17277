package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mash-protocol/countdown/internal/config"
	"github.com/mash-protocol/countdown/pkg/countdown"
	"github.com/mash-protocol/countdown/pkg/duration"
)

func runRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `countdown run - Count down until the timer expires

Usage:
  countdown run [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	var flags timerFlags
	flags.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := flags.resolve(fs)
	if err != nil {
		return err
	}

	logger, events, closeEvents, err := setupLogging(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeEvents(); err != nil {
			logger.Warn("failed to close event log", "error", err)
		}
	}()

	timer, err := countdown.New(time.Duration(cfg.Duration),
		countdown.WithLabel(cfg.Label),
		countdown.WithLogger(events),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Duration(cfg.PollInterval))
	defer ticker.Stop()

	logger.Info("countdown started",
		"timer_id", timer.ID(),
		"label", cfg.Label,
		"duration", timer.Duration(),
		"auto_restart", cfg.AutoRestart,
	)

	timer.Start()
	pulses := poll(ctx, timer, cfg, ticker.C, os.Stdout, logger)
	fmt.Fprintln(os.Stdout)

	if ctx.Err() != nil {
		logger.Info("interrupted", "pulses", pulses, "remaining", timer.RemainingTime())
		return nil
	}
	logger.Info("countdown finished", "pulses", pulses)
	return nil
}

// poll checks the timer on every tick and renders progress to w. It returns
// the number of expiries seen, stopping once the timer is up (or, with
// AutoRestart, after cfg.Pulses expiries) or when ctx is done.
func poll(ctx context.Context, t *countdown.Timer, cfg *config.Config, tick <-chan time.Time, w io.Writer, logger *slog.Logger) int {
	pulses := 0
	render(w, t, pulses)

	for {
		select {
		case <-ctx.Done():
			return pulses
		case <-tick:
		}

		if !cfg.AutoRestart {
			// Check before rendering so the last frame is the expired one.
			up := t.TimeUp()
			render(w, t, pulses)
			if up {
				return pulses + 1
			}
			continue
		}

		if t.TimeUpAndTryRestart() {
			pulses++
			logger.Info("pulse", "count", pulses)
			if cfg.Pulses > 0 && pulses >= cfg.Pulses {
				render(w, t, pulses)
				return pulses
			}
		}
		render(w, t, pulses)
	}
}

const barWidth = 30

// render writes a single carriage-return terminated progress line.
func render(w io.Writer, t *countdown.Timer, pulses int) {
	pct := t.PercentComplete()
	filled := int(pct * barWidth)
	bar := make([]byte, barWidth)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '.'
		}
	}

	fmt.Fprintf(w, "\r[%s] %5.1f%% %s", bar, pct*100, duration.Format(t.RemainingTime()))
	if pulses > 0 {
		fmt.Fprintf(w, " pulses=%d", pulses)
	}
}
