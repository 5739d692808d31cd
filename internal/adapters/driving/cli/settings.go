package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// Keys accepted by "settings set".
const (
	settingAPIURL     = "api.base_url"
	settingAPITimeout = "api.timeout_seconds"
	settingAPIRate    = "api.requests_per_minute"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure how bizpilot talks to the BizPilot API.

Environment variables BIZPILOT_API_URL and BIZPILOT_API_TIMEOUT override
the stored values for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting.

Available keys:
  api.base_url             - API root URL
  api.timeout_seconds      - Request timeout in seconds
  api.requests_per_minute  - Generation call limit (0 disables throttling)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Walk through every setting, keeping the current value on empty input.`,
	RunE:  runSettingsWizard,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Timeout: %ds\n", settings.API.TimeoutSeconds)
	if settings.API.RequestsPerMinute == 0 {
		cmd.Printf("  Rate limit: off\n")
	} else {
		cmd.Printf("  Rate limit: %d requests/minute\n", settings.API.RequestsPerMinute)
	}
	cmd.Println()

	if path := settingsService.ConfigPath(); path != "" {
		cmd.Printf("Config file: %s\n", path)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings %w", errNotConfigured)
	}

	key, value := strings.ToLower(args[0]), strings.TrimSpace(args[1])
	if key == settingAPIURL {
		if err := settingsService.SetAPIBaseURL(value); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		cmd.Printf("Set %s to %s\n", key, value)
		return nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := applySetting(settings, key, value); err != nil {
		return err
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Set %s to %s\n", key, value)
	return nil
}

func applySetting(settings *domain.AppSettings, key, value string) error {
	switch key {
	case settingAPIURL:
		settings.API.BaseURL = strings.TrimRight(value, "/")
	case settingAPITimeout:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a whole number of seconds", domain.ErrInvalidInput, key)
		}
		settings.API.TimeoutSeconds = n
	case settingAPIRate:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a whole number", domain.ErrInvalidInput, key)
		}
		settings.API.RequestsPerMinute = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("BizPilot Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	settings.API.BaseURL = strings.TrimRight(p.line("API base URL", settings.API.BaseURL), "/")
	settings.API.TimeoutSeconds = parsePositive(
		p.line("Request timeout (seconds)", strconv.Itoa(settings.API.TimeoutSeconds)),
		settings.API.TimeoutSeconds)
	settings.API.RequestsPerMinute = parseNonNegative(
		p.line("Requests per minute (0 = unlimited)", strconv.Itoa(settings.API.RequestsPerMinute)),
		settings.API.RequestsPerMinute)

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println()
	cmd.Println("Settings saved.")
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings %w", errNotConfigured)
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings reset to defaults.")
	return nil
}

// parsePositive parses a number greater than zero, returning def otherwise.
func parsePositive(input string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// parseNonNegative parses a number of zero or more, returning def otherwise.
func parseNonNegative(input string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 0 {
		return def
	}
	return n
}
