package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

func TestSettingsShowCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Base URL: "+domain.DefaultAPIBaseURL)
	assert.Contains(t, out, "Timeout: 120s")
	assert.Contains(t, out, "Rate limit: 30 requests/minute")
}

func TestSettingsSetCmd(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{
			name:  "base url trims trailing slash",
			key:   "api.base_url",
			value: "http://localhost:3000/bizpilot-api/",
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, "http://localhost:3000/bizpilot-api", s.API.BaseURL)
			},
		},
		{
			name:  "timeout",
			key:   "api.timeout_seconds",
			value: "45",
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, 45, s.API.TimeoutSeconds)
			},
		},
		{
			name:  "rate limit off",
			key:   "API.REQUESTS_PER_MINUTE",
			value: "0",
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, 0, s.API.RequestsPerMinute)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			_, err := execute(t, "settings", "set", tt.key, tt.value)
			require.NoError(t, err)

			settings, err := settingsService.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsSetCmd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"settings", "set", "search.mode", "full"}},
		{"non numeric timeout", []string{"settings", "set", "api.timeout_seconds", "soon"}},
		{"zero timeout", []string{"settings", "set", "api.timeout_seconds", "0"}},
		{"relative url", []string{"settings", "set", "api.base_url", "bizpilot-api"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			_, err := execute(t, tt.args...)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			settings, getErr := settingsService.Get()
			require.NoError(t, getErr)
			assert.Equal(t, domain.DefaultAppSettings(), *settings)
		})
	}
}

func TestSettingsWizardCmd(t *testing.T) {
	setupTestServices(t)

	// Keep the URL, change the timeout, send garbage for the rate limit.
	out, err := executeWithInput(t, "\n60\nlots\n", "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved.")
	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAPIBaseURL, settings.API.BaseURL)
	assert.Equal(t, 60, settings.API.TimeoutSeconds)
	assert.Equal(t, domain.DefaultAPIRequestsPerMinute, settings.API.RequestsPerMinute)
}

func TestSettingsResetCmd(t *testing.T) {
	setupTestServices(t)
	_, err := execute(t, "settings", "set", "api.timeout_seconds", "5")
	require.NoError(t, err)

	out, err := execute(t, "settings", "reset")

	require.NoError(t, err)
	assert.Contains(t, out, "Settings reset to defaults.")
	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAPITimeoutSeconds, settings.API.TimeoutSeconds)
}

func TestParsePositive(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"10", 10},
		{" 7 ", 7},
		{"0", 3},
		{"-1", 3},
		{"abc", 3},
		{"", 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePositive(tt.input, 3))
		})
	}
}

func TestParseNonNegative(t *testing.T) {
	assert.Equal(t, 0, parseNonNegative("0", 30))
	assert.Equal(t, 30, parseNonNegative("-5", 30))
	assert.Equal(t, 12, parseNonNegative("12", 30))
}
