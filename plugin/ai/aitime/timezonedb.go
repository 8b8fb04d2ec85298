package aitime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hrygo/officehours/plugin/ai/timeout"
)

// DefaultTimeZoneDBURL is the get-time-zone endpoint of TimeZoneDB.
const DefaultTimeZoneDBURL = "https://api.timezonedb.com/v2.1/get-time-zone"

// TimeZoneDBConfig configures the TimeZoneDB client.
type TimeZoneDBConfig struct {
	APIKey  string
	BaseURL string        // default: DefaultTimeZoneDBURL
	Timeout time.Duration // default: 5s
}

// TimeZoneDBService implements TimeService against api.timezonedb.com.
type TimeZoneDBService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewTimeZoneDBService creates a TimeZoneDB client.
func NewTimeZoneDBService(cfg TimeZoneDBConfig) (*TimeZoneDBService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("timezonedb API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultTimeZoneDBURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeout.TimeLookupTimeout
	}

	return &TimeZoneDBService{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type timeZoneDBResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ZoneName  string `json:"zoneName"`
	GMTOffset int    `json:"gmtOffset"`
	Formatted string `json:"formatted"`
}

// Now implements TimeService.
func (s *TimeZoneDBService) Now(ctx context.Context, tz string) (*CurrentTime, error) {
	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("format", "json")
	params.Set("by", "zone")
	params.Set("zone", tz)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timezonedb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("timezonedb API error: status %d: %s", resp.StatusCode, string(body))
	}

	var result timeZoneDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode timezonedb response: %w", err)
	}
	if result.Status != "OK" {
		return nil, fmt.Errorf("timezonedb lookup for %q failed: %s", tz, result.Message)
	}
	if result.Formatted == "" {
		return nil, fmt.Errorf("timezonedb response for %q has no datetime", tz)
	}

	return &CurrentTime{
		Datetime:  result.Formatted,
		Timezone:  result.ZoneName,
		UTCOffset: result.GMTOffset,
	}, nil
}

var _ TimeService = (*TimeZoneDBService)(nil)
