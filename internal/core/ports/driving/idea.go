package driving

import (
	"context"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// IdeaService generates business plans and applies iterative modifications.
// At most one generation runs at a time; concurrent calls are rejected with
// domain.ErrUpdateInProgress rather than queued.
type IdeaService interface {
	// Generate creates a plan from a fresh prompt and starts a new session with it.
	Generate(ctx context.Context, prompt string) (domain.PlanDocument, error)

	// RequestUpdate regenerates the current plan with a modification instruction.
	// On failure the session is left exactly as it was.
	RequestUpdate(ctx context.Context, instruction string) (domain.PlanDocument, error)

	// Generating reports whether a generation is in flight.
	Generating() bool

	// State returns the phase of the current generation attempt.
	State() domain.UpdateState
}
