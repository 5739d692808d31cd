// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// PlanGenerated carries the result of a generation or modification.
type PlanGenerated struct {
	// Plan is the new plan, nil on failure.
	Plan domain.PlanDocument

	// Modified is true when the plan came from a modification instruction.
	Modified bool

	Err error
}

// SessionRestored is sent after an explicit restore request.
type SessionRestored struct {
	Plan   domain.PlanDocument
	Prompt string

	// OK is false when nothing valid was saved.
	OK bool
}

// SessionCleared is sent after the session has been discarded.
type SessionCleared struct{}

// AccountLoaded carries the tier of the logged-in account.
type AccountLoaded struct {
	Name          string
	Tier          domain.AccountTier
	Authenticated bool
}

// SavedSessionChecked reports whether a saved session differs from the plan on screen.
type SavedSessionChecked struct {
	Available bool
}

// WatchStarted carries the change channel of the session watcher.
type WatchStarted struct {
	Changes <-chan struct{}
}

// SavedSessionChanged is sent when the stored session changed on disk.
type SavedSessionChanged struct{}

// WatchStopped is sent when the change channel closes or the watcher fails.
type WatchStopped struct {
	Err error
}
