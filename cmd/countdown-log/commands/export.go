package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mash-protocol/countdown/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

// jsonEvent is the JSONL representation of an event. Durations are in
// seconds so the output is usable without knowing Go's nanosecond encoding.
type jsonEvent struct {
	Timestamp         time.Time `json:"timestamp"`
	TimerID           string    `json:"timer_id"`
	Label             string    `json:"label,omitempty"`
	Kind              string    `json:"kind"`
	Duration          float64   `json:"duration_s"`
	Elapsed           *float64  `json:"elapsed_s,omitempty"`
	OldDuration       *float64  `json:"old_duration_s,omitempty"`
	RequestedDuration *float64  `json:"requested_duration_s,omitempty"`
}

func toJSONEvent(e log.Event) jsonEvent {
	je := jsonEvent{
		Timestamp: e.Timestamp.UTC(),
		TimerID:   e.TimerID,
		Label:     e.Label,
		Kind:      e.Kind.String(),
		Duration:  e.Duration.Seconds(),
	}
	if e.Elapsed != nil {
		s := e.Elapsed.Seconds()
		je.Elapsed = &s
	}
	if e.Change != nil {
		old, req := e.Change.Old.Seconds(), e.Change.Requested.Seconds()
		je.OldDuration = &old
		je.RequestedDuration = &req
	}
	return je
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toJSONEvent(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "timer_id", "label", "kind", "duration_s", "elapsed_s", "old_duration_s", "requested_duration_s"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		elapsed := ""
		if event.Elapsed != nil {
			elapsed = formatSeconds(*event.Elapsed)
		}
		old, requested := "", ""
		if event.Change != nil {
			old = formatSeconds(event.Change.Old)
			requested = formatSeconds(event.Change.Requested)
		}

		row := []string{
			event.Timestamp.UTC().Format(time.RFC3339Nano),
			event.TimerID,
			event.Label,
			event.Kind.String(),
			formatSeconds(event.Duration),
			elapsed,
			old,
			requested,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
