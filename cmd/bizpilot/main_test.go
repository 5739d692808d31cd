package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantURL     string
		wantTimeout int
	}{
		{
			name:        "no overrides",
			env:         map[string]string{},
			wantURL:     domain.DefaultAPIBaseURL,
			wantTimeout: domain.DefaultAPITimeoutSeconds,
		},
		{
			name:        "url and timeout",
			env:         map[string]string{envAPIURL: "http://localhost:3000/api/", envAPITimeout: "30"},
			wantURL:     "http://localhost:3000/api",
			wantTimeout: 30,
		},
		{
			name:        "bad timeout ignored",
			env:         map[string]string{envAPITimeout: "-4"},
			wantURL:     domain.DefaultAPIBaseURL,
			wantTimeout: domain.DefaultAPITimeoutSeconds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := domain.DefaultAppSettings()

			applyEnv(&settings, func(k string) string { return tt.env[k] })

			assert.Equal(t, tt.wantURL, settings.API.BaseURL)
			assert.Equal(t, tt.wantTimeout, settings.API.TimeoutSeconds)
		})
	}
}
