package driven

import (
	"context"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// CredentialsStore persists the login of the single local user.
type CredentialsStore interface {
	// Save stores credentials, replacing any existing login.
	Save(ctx context.Context, creds domain.Credentials) error

	// Get retrieves the stored credentials.
	// Returns domain.ErrNotFound if nobody is logged in.
	Get(ctx context.Context) (*domain.Credentials, error)

	// Delete removes the stored credentials. Succeeds when none exist.
	Delete(ctx context.Context) error
}
