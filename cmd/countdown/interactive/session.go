// Package interactive provides the interactive command-line interface
// for the countdown command.
package interactive

import (
	"fmt"
	"io"
	"strings"

	"github.com/mash-protocol/countdown/pkg/countdown"
	"github.com/mash-protocol/countdown/pkg/duration"
)

// Session executes prompt commands against a single timer.
type Session struct {
	timer *countdown.Timer
}

// NewSession creates a session driving t.
func NewSession(t *countdown.Timer) *Session {
	return &Session{timer: t}
}

// Exec runs one command line, writing output to w.
// It returns true when the user asked to quit.
func (s *Session) Exec(line string, w io.Writer) (quit bool) {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		printHelp(w)

	case "start", "s", "restart":
		s.cmdStart(w)

	case "status", "st":
		s.cmdStatus(w)

	case "up":
		fmt.Fprintf(w, "time up: %t\n", s.timer.TimeUp())

	case "tick", "t":
		s.cmdTick(w)

	case "duration", "d":
		s.cmdDuration(w, args)

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Countdown Commands:
  start              - Start the timer (restarts if already running)
  status             - Show remaining time and progress
  up                 - Check whether the time is up
  tick               - Check and restart the timer if the time is up
  duration <d>       - Change the duration (seconds or e.g. 1m30s)

  help               - Show this help
  quit               - Exit`)
}

func (s *Session) cmdStart(w io.Writer) {
	if s.timer.Running() {
		s.timer.Start()
		fmt.Fprintf(w, "Restarted (%s)\n", duration.Format(s.timer.Duration()))
		return
	}
	s.timer.Start()
	fmt.Fprintf(w, "Started (%s)\n", duration.Format(s.timer.Duration()))
}

func (s *Session) cmdStatus(w io.Writer) {
	t := s.timer
	label := t.Label()
	if label == "" {
		label = t.ID()
	}

	fmt.Fprintf(w, "Timer:     %s\n", label)
	fmt.Fprintf(w, "Duration:  %s\n", duration.Format(t.Duration()))
	if !t.Running() {
		fmt.Fprintln(w, "State:     not started")
		fmt.Fprintf(w, "Remaining: %s\n", duration.Format(t.RemainingTime()))
		return
	}

	state := "running"
	if t.TimeUp() {
		state = "time up"
	}
	fmt.Fprintf(w, "State:     %s\n", state)
	fmt.Fprintf(w, "Elapsed:   %s\n", duration.Format(t.Elapsed()))
	fmt.Fprintf(w, "Remaining: %s\n", duration.Format(t.RemainingTime()))
	fmt.Fprintf(w, "Progress:  %.1f%%\n", t.PercentComplete()*100)
}

func (s *Session) cmdTick(w io.Writer) {
	if s.timer.TimeUpAndTryRestart() {
		fmt.Fprintln(w, "Time up, restarted")
		return
	}
	if !s.timer.Running() {
		fmt.Fprintln(w, "Not started")
		return
	}
	fmt.Fprintf(w, "Not yet (%s remaining)\n", duration.Format(s.timer.RemainingTime()))
}

func (s *Session) cmdDuration(w io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: duration <seconds|duration>")
		return
	}

	d, err := duration.Parse(args[0])
	if err != nil {
		fmt.Fprintf(w, "Invalid duration: %v\n", err)
		return
	}

	s.timer.ChangeDuration(d)
	if d <= 0 {
		fmt.Fprintf(w, "Ignored: duration must be positive (keeping %s)\n", duration.Format(s.timer.Duration()))
		return
	}
	fmt.Fprintf(w, "Duration set to %s\n", duration.Format(s.timer.Duration()))
}
