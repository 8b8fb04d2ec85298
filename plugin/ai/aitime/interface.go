// Package aitime provides the current-time lookup used to judge office availability.
package aitime

import (
	"context"
	"fmt"
	"time"
)

// DatetimeLayout is the local datetime format returned by the time providers.
const DatetimeLayout = "2006-01-02 15:04:05"

// TimeService looks up the current local time of an IANA timezone.
type TimeService interface {
	// Now returns the current time in tz.
	// Fails on network errors or unknown zones.
	Now(ctx context.Context, tz string) (*CurrentTime, error)
}

// CurrentTime is a provider's answer for one timezone.
type CurrentTime struct {
	Datetime  string `json:"datetime"`   // local wall clock, DatetimeLayout
	Timezone  string `json:"timezone"`   // IANA zone name echoed by the provider
	UTCOffset int    `json:"gmt_offset"` // seconds east of UTC
}

// Local parses Datetime into a time.Time carrying the provider's UTC offset.
func (c *CurrentTime) Local() (time.Time, error) {
	t, err := ParseLocal(c.Datetime)
	if err != nil {
		return time.Time{}, err
	}
	if t.Location() == time.UTC && c.UTCOffset != 0 {
		loc := time.FixedZone(c.Timezone, c.UTCOffset)
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	}
	return t, nil
}

// ParseLocal parses a local datetime in DatetimeLayout or RFC 3339 form.
func ParseLocal(datetime string) (time.Time, error) {
	for _, layout := range []string{DatetimeLayout, "2006-01-02T15:04:05", time.RFC3339Nano} {
		if t, err := time.Parse(layout, datetime); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", datetime)
}

// TimeInfo is the time context handed to narration.
type TimeInfo struct {
	Region   string `json:"region"`
	Timezone string `json:"timezone"`
	Datetime string `json:"datetime"`
}
