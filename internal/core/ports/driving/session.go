package driving

import (
	"context"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// SessionManager owns the plan currently in effect and its durable copy.
//
// Storage is best-effort: none of these methods fail because of the store.
// Corrupted persisted data is treated as "no previous session".
type SessionManager interface {
	// Current returns a copy of the active session.
	Current() domain.SessionState

	// Replace makes plan and prompt the active session and persists them.
	Replace(ctx context.Context, plan domain.PlanDocument, prompt string)

	// LoadPersisted reads the durable copy without touching the active session.
	// Returns an empty state when nothing valid is stored.
	LoadPersisted(ctx context.Context) domain.SessionState

	// HasPersisted reports whether a valid plan is stored.
	HasPersisted(ctx context.Context) bool

	// Persist writes plan and prompt to durable storage. Errors are logged only.
	Persist(ctx context.Context, plan domain.PlanDocument, prompt string)

	// Restore loads the durable copy into the active session on explicit request.
	// Returns false when nothing valid is stored.
	Restore(ctx context.Context) (domain.PlanDocument, bool)

	// Clear empties the active session and removes the durable copy.
	Clear(ctx context.Context)
}
