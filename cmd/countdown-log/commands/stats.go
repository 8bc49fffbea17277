package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mash-protocol/countdown/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents  int
	EventsByKind map[log.Kind]int
	Timers       map[string]*TimerStats
	TimeRange    struct {
		Start time.Time
		End   time.Time
	}
}

// TimerStats holds statistics for a single timer.
type TimerStats struct {
	Label     string
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Starts    int
	Expiries  int
	Rejected  int

	// totalElapsed sums Elapsed over expiry events.
	totalElapsed time.Duration
}

// MeanPeriod returns the average observed period between auto-restarts,
// which exceeds the configured duration by the polling drift.
func (s *TimerStats) MeanPeriod() time.Duration {
	if s.Expiries == 0 {
		return 0
	}
	return s.totalElapsed / time.Duration(s.Expiries)
}

// CollectStats reads the whole log file and aggregates it.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByKind: make(map[log.Kind]int),
		Timers:       make(map[string]*TimerStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByKind[event.Kind]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		ts, ok := stats.Timers[event.TimerID]
		if !ok {
			ts = &TimerStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Timers[event.TimerID] = ts
		}
		ts.Events++
		if event.Timestamp.After(ts.LastSeen) {
			ts.LastSeen = event.Timestamp
		}
		if event.Label != "" && ts.Label == "" {
			ts.Label = event.Label
		}

		switch event.Kind {
		case log.KindStarted, log.KindRestarted:
			ts.Starts++
		case log.KindExpired:
			ts.Expiries++
			if event.Elapsed != nil {
				ts.totalElapsed += *event.Elapsed
			}
		case log.KindDurationRejected:
			ts.Rejected++
		}
	}

	return stats, nil
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Countdown Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.UTC().Format(time.RFC3339),
			stats.TimeRange.End.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Kind:")
	for _, kind := range log.AllKinds {
		if count := stats.EventsByKind[kind]; count > 0 {
			fmt.Fprintf(w, "  %-19s %d\n", kind.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Timers: %d\n", len(stats.Timers))
	if len(stats.Timers) == 0 {
		return
	}

	type timerInfo struct {
		id    string
		stats *TimerStats
	}
	timers := make([]timerInfo, 0, len(stats.Timers))
	for id, ts := range stats.Timers {
		timers = append(timers, timerInfo{id, ts})
	}
	sort.Slice(timers, func(i, j int) bool {
		if timers[i].stats.FirstSeen.Equal(timers[j].stats.FirstSeen) {
			return timers[i].id < timers[j].id
		}
		return timers[i].stats.FirstSeen.Before(timers[j].stats.FirstSeen)
	})

	fmt.Fprintln(w)
	for _, ti := range timers {
		span := ti.stats.LastSeen.Sub(ti.stats.FirstSeen).Round(time.Millisecond)
		fmt.Fprintf(w, "  [%s] %d events, span %s\n", shortenTimerID(ti.id), ti.stats.Events, span)
		if ti.stats.Label != "" {
			fmt.Fprintf(w, "           Label: %s\n", ti.stats.Label)
		}
		fmt.Fprintf(w, "           Starts: %d, Expiries: %d\n", ti.stats.Starts, ti.stats.Expiries)
		if ti.stats.Expiries > 0 {
			fmt.Fprintf(w, "           Mean period: %s\n", formatDuration(ti.stats.MeanPeriod()))
		}
		if ti.stats.Rejected > 0 {
			fmt.Fprintf(w, "           Rejected duration changes: %d\n", ti.stats.Rejected)
		}
	}
}
