package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned when a string is neither seconds nor a Go duration.
var ErrInvalidFormat = errors.New("invalid duration format")

// FromSeconds converts real seconds to a time.Duration, rounding to the
// nearest nanosecond. Values outside the time.Duration range saturate.
func FromSeconds(seconds float64) time.Duration {
	ns := math.Round(seconds * float64(time.Second))
	switch {
	case math.IsNaN(ns):
		return 0
	case ns >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	case ns <= math.MinInt64:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ns)
}

// Seconds returns d as real seconds.
func Seconds(d time.Duration) float64 {
	return d.Seconds()
}

// Parse parses s as seconds ("2.5") or as a Go duration ("1m30s").
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(secs) || math.IsInf(secs, 0) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		return FromSeconds(secs), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return d, nil
}

// Format renders d as a countdown display, e.g. "01:30.0" or "1:02:03.5".
// Negative durations are shown as zero.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(100 * time.Millisecond)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	tenths := d / (100 * time.Millisecond)

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%d", h, m, s, tenths)
	}
	return fmt.Sprintf("%02d:%02d.%d", m, s, tenths)
}
