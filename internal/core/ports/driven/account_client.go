package driven

import (
	"context"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// AccountClient calls the remote account endpoints.
type AccountClient interface {
	// Login exchanges email and password for an access token and the account.
	Login(ctx context.Context, email, password string) (*domain.Credentials, error)

	// Register creates a new account.
	Register(ctx context.Context, reg domain.Registration) error

	// UpdateTier changes the tier of an account and returns the tier the server stored.
	UpdateTier(ctx context.Context, token, userID string, tier domain.AccountTier) (domain.AccountTier, error)
}
