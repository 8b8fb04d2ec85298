// Package availability decides whether an office can be contacted right now
// from its free-text work rules and the current local time.
//
// Everything here is pure: no I/O, no shared state.
package availability

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Labels used by the Korean rule documents.
const (
	WorkHoursLabel  = "근무 시간"
	LunchHoursLabel = "점심시간"
)

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ClockOf returns the time-of-day of t in its own location. Seconds are dropped.
func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseTimeOfDay parses "H:MM" or "HH:MM" in 24-hour form. "24:00" is
// accepted as the end of the day.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour == 24 && minute == 0 {
		return TimeOfDay{Hour: 24}, nil
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes() < other.minutes()
}

// String renders the time as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Window is a same-day time range. Both ends are inclusive.
// Start is not required to precede End; an inverted window contains nothing.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Contains reports whether t lies within [Start, End].
func (w Window) Contains(t TimeOfDay) bool {
	return !t.Before(w.Start) && !w.End.Before(t)
}

// String renders the window as "HH:MM~HH:MM".
func (w Window) String() string {
	return w.Start.String() + "~" + w.End.String()
}

// WindowExtractor finds a time window in free text.
type WindowExtractor interface {
	Extract(text string) (Window, bool)
}

// LabelExtractor finds the first occurrence of a label followed, anywhere
// later in the text, by two time tokens.
type LabelExtractor struct {
	pattern *regexp.Regexp
}

// NewLabelExtractor builds an extractor for the given literal label.
func NewLabelExtractor(label string) *LabelExtractor {
	return &LabelExtractor{
		pattern: regexp.MustCompile(`(?s)` + regexp.QuoteMeta(label) + `.*?(\d{1,2}:\d{2}).*?(\d{1,2}:\d{2})`),
	}
}

// Extract returns the first labeled window in text. Out-of-range tokens such
// as "25:00" make the extraction fail rather than guess.
func (e *LabelExtractor) Extract(text string) (Window, bool) {
	m := e.pattern.FindStringSubmatch(text)
	if m == nil {
		return Window{}, false
	}

	start, err := ParseTimeOfDay(m[1])
	if err != nil {
		return Window{}, false
	}
	end, err := ParseTimeOfDay(m[2])
	if err != nil {
		return Window{}, false
	}

	return Window{Start: start, End: end}, true
}

var _ WindowExtractor = (*LabelExtractor)(nil)
