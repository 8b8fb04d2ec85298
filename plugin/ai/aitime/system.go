package aitime

import (
	"context"
	"fmt"
	"time"
)

// SystemService implements TimeService from the local tz database.
// Useful offline and in tests; no network involved.
type SystemService struct {
	now func() time.Time
}

// NewSystemService returns a SystemService backed by time.Now.
func NewSystemService() *SystemService {
	return &SystemService{now: time.Now}
}

// NewFixedSystemService returns a SystemService whose clock always reads now.
func NewFixedSystemService(now time.Time) *SystemService {
	return &SystemService{now: func() time.Time { return now }}
}

// Now implements TimeService.
func (s *SystemService) Now(_ context.Context, tz string) (*CurrentTime, error) {
	if tz == "" {
		return nil, fmt.Errorf("timezone is required")
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}

	local := s.now().In(loc)
	_, offset := local.Zone()

	return &CurrentTime{
		Datetime:  local.Format(DatetimeLayout),
		Timezone:  loc.String(),
		UTCOffset: offset,
	}, nil
}

var _ TimeService = (*SystemService)(nil)
