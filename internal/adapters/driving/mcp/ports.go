package mcp

import (
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Session owns the active plan and its saved copy.
	Session driving.SessionManager

	// Idea generates and modifies plans.
	Idea driving.IdeaService

	// Auth provides the account tier used to gate output.
	Auth driving.AuthService

	// Assistant answers free-form questions. Optional.
	Assistant driving.AssistantService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionManager
	}
	if p.Idea == nil {
		return ErrMissingIdeaService
	}
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	return nil
}
