package services

import (
	"fmt"
	"strings"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAPIBaseURL           = "api.base_url"
	keyAPITimeoutSeconds    = "api.timeout_seconds"
	keyAPIRequestsPerMinute = "api.requests_per_minute"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or unusable values fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:           strings.TrimRight(s.getString(keyAPIBaseURL, defaults.API.BaseURL), "/"),
			TimeoutSeconds:    s.getPositiveInt(keyAPITimeoutSeconds, defaults.API.TimeoutSeconds),
			RequestsPerMinute: s.getRequestsPerMinute(defaults.API.RequestsPerMinute),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are nil", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyAPIBaseURL, strings.TrimRight(settings.API.BaseURL, "/")); err != nil {
		return fmt.Errorf("save api base_url: %w", err)
	}
	if err := s.configStore.Set(keyAPITimeoutSeconds, settings.API.TimeoutSeconds); err != nil {
		return fmt.Errorf("save api timeout_seconds: %w", err)
	}
	if err := s.configStore.Set(keyAPIRequestsPerMinute, settings.API.RequestsPerMinute); err != nil {
		return fmt.Errorf("save api requests_per_minute: %w", err)
	}

	return nil
}

// SetAPIBaseURL updates the API base URL.
func (s *SettingsService) SetAPIBaseURL(baseURL string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.API.BaseURL = strings.TrimSpace(baseURL)
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns where settings are stored.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := strings.TrimSpace(s.configStore.GetString(key))
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

// Zero is meaningful here (throttling off), so only an absent key gets the default.
func (s *SettingsService) getRequestsPerMinute(defaultVal int) int {
	if _, exists := s.configStore.Get(keyAPIRequestsPerMinute); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(keyAPIRequestsPerMinute)
	if val < 0 {
		return defaultVal
	}
	return val
}
