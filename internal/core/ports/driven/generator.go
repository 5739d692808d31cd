package driven

import (
	"context"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// PlanGenerator sends prompts to the remote plan generation endpoint.
//
// Implementations return a result for every response whose body could be
// read, including non-success statuses, and an error only when the exchange
// itself failed (transport error, unreadable body). Deciding whether a result
// is usable is the caller's job.
type PlanGenerator interface {
	// Generate submits a prompt and returns the service's answer.
	Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResult, error)
}
