// Package cli provides the cobra command tree of the bizpilot binary.
// Services are injected by the composition root through SetServices.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driving"
	"github.com/bizpilot/bizpilot-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var (
	sessionManager   driving.SessionManager
	ideaService      driving.IdeaService
	authService      driving.AuthService
	settingsService  driving.SettingsService
	assistantService driving.AssistantService
)

// Services holds the driving ports the commands call into.
type Services struct {
	Session  driving.SessionManager
	Idea     driving.IdeaService
	Auth     driving.AuthService
	Settings driving.SettingsService

	// Assistant answers questions for the ask command. Optional.
	Assistant driving.AssistantService
}

// SetServices injects the services used by all commands.
func SetServices(s Services) {
	sessionManager = s.Session
	ideaService = s.Idea
	authService = s.Auth
	settingsService = s.Settings
	assistantService = s.Assistant
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "bizpilot",
	Short: "Generate and refine business plans from your terminal",
	Long: `bizpilot turns a business idea into a generated plan: idea summary,
business models, a roadmap and a feasibility score. Refine the plan with
plain-language instructions; the latest plan is kept between runs.

Get started:
  bizpilot login
  bizpilot generate "A tea stall near Pune railway station with 50,000 INR"
  bizpilot modify "the budget increased by 20%"
  bizpilot ask "How do I price a cup of chai?"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print request and storage details to stderr")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// userError presents a domain error as its user-facing message while
// keeping the original error available to errors.Is.
type userError struct {
	err error
}

func (e *userError) Error() string {
	return domain.UserMessage(e.err)
}

func (e *userError) Unwrap() error {
	return e.err
}

// friendly converts errors from the core into user-facing errors.
// Details stay available in verbose output.
func friendly(err error) error {
	if err == nil {
		return nil
	}
	logger.Debug("error: %v", err)
	return &userError{err: err}
}

var errNotConfigured = errors.New("service not configured")
