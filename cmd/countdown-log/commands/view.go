// Package commands implements the countdown-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mash-protocol/countdown/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Kind        *log.Kind
	TimerPrefix string
	Label       string
}

func (f ViewFilter) matches(e log.Event) bool {
	if f.Kind != nil && e.Kind != *f.Kind {
		return false
	}
	if f.TimerPrefix != "" && !strings.HasPrefix(e.TimerID, f.TimerPrefix) {
		return false
	}
	if f.Label != "" && e.Label != f.Label {
		return false
	}
	return true
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [timer:id] KIND label
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [timer:%s] %s", ts, shortenTimerID(event.TimerID), event.Kind)
	if event.Label != "" {
		fmt.Fprintf(w, " %q", event.Label)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Duration: %s\n", formatDuration(event.Duration))
	if event.Elapsed != nil {
		fmt.Fprintf(w, "  Elapsed:  %s\n", formatDuration(*event.Elapsed))
	}
	if event.Change != nil {
		fmt.Fprintf(w, "  Change:   %s -> %s", formatDuration(event.Change.Old), formatDuration(event.Change.Requested))
		if event.Kind == log.KindDurationRejected {
			fmt.Fprint(w, " (rejected)")
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenTimerID returns the first 8 characters of the timer ID.
func shortenTimerID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	neg := ""
	mag := uint64(d)
	if d < 0 {
		neg = "-"
		// Two's complement magnitude; -d overflows for math.MinInt64.
		mag = ^uint64(d) + 1
	}
	if mag < uint64(time.Millisecond) {
		return fmt.Sprintf("%s%.3fus", neg, float64(mag)/1e3)
	}
	if mag < uint64(time.Second) {
		return fmt.Sprintf("%s%.3fms", neg, float64(mag/1e3)/1e3)
	}
	return fmt.Sprintf("%s%.3fs", neg, float64(mag)/1e9)
}

// ParseKindFlag parses an event kind from a command-line flag (case-insensitive).
func ParseKindFlag(s string) (log.Kind, error) {
	k, ok := log.ParseKind(s)
	if !ok {
		return 0, fmt.Errorf("invalid kind: %s (must be started, restarted, expired, duration-changed, or duration-rejected)", s)
	}
	return k, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		if filter.matches(event) {
			formatEvent(output, event)
		}
	}

	return nil
}
