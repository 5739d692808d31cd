package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Default API settings.
const (
	DefaultAPIBaseURL           = "https://bizpilot-backend.vercel.app/bizpilot-api"
	DefaultAPITimeoutSeconds    = 120
	DefaultAPIRequestsPerMinute = 30
)

// APISettings configures access to the BizPilot API.
type APISettings struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int

	// RequestsPerMinute throttles generation calls. Zero disables throttling.
	RequestsPerMinute int
}

// Timeout returns the request timeout as a duration.
func (s APISettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Validate checks the API settings.
func (s APISettings) Validate() error {
	if s.BaseURL == "" {
		return fmt.Errorf("%w: api base url is required", ErrInvalidInput)
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api base url %q is not absolute", ErrInvalidInput, s.BaseURL)
	}
	if s.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: api timeout must be positive", ErrInvalidInput)
	}
	if s.RequestsPerMinute < 0 {
		return fmt.Errorf("%w: requests per minute cannot be negative", ErrInvalidInput)
	}
	return nil
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	API APISettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:           DefaultAPIBaseURL,
			TimeoutSeconds:    DefaultAPITimeoutSeconds,
			RequestsPerMinute: DefaultAPIRequestsPerMinute,
		},
	}
}

// Validate checks all settings.
func (s AppSettings) Validate() error {
	return s.API.Validate()
}
