// Package tui provides an interactive terminal user interface for bizpilot.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driving"
)

// Ports aggregates the services the TUI needs.
type Ports struct {
	// Session owns the active plan and its saved copy.
	Session driving.SessionManager

	// Idea generates and modifies plans.
	Idea driving.IdeaService

	// Auth provides the logged-in account and its tier.
	Auth driving.AuthService

	// Watcher reports changes to the saved session made by other processes.
	// Optional.
	Watcher driven.ChangeWatcher
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
