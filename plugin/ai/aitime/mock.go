package aitime

import (
	"context"
	"sync"
)

// MockTimeService is a scripted TimeService for testing.
type MockTimeService struct {
	mu sync.Mutex

	// Times maps a timezone to the answer returned for it.
	Times map[string]*CurrentTime
	// Err, when set, is returned for every lookup.
	Err error

	calls []string
}

// NewMockTimeService creates an empty MockTimeService.
func NewMockTimeService() *MockTimeService {
	return &MockTimeService{Times: make(map[string]*CurrentTime)}
}

// Now implements TimeService.
func (m *MockTimeService) Now(_ context.Context, tz string) (*CurrentTime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, tz)
	if m.Err != nil {
		return nil, m.Err
	}
	if ct, ok := m.Times[tz]; ok {
		return ct, nil
	}
	return nil, &unknownZoneError{tz: tz}
}

// Calls returns the timezones looked up so far.
func (m *MockTimeService) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

type unknownZoneError struct{ tz string }

func (e *unknownZoneError) Error() string { return "unknown zone: " + e.tz }

var _ TimeService = (*MockTimeService)(nil)
