package driving

import (
	"context"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// AuthService manages the login of the local user.
type AuthService interface {
	// Login authenticates against the account service and stores the credentials.
	Login(ctx context.Context, email, password string) (*domain.Credentials, error)

	// Register creates a new account. The user logs in afterwards.
	Register(ctx context.Context, reg domain.Registration) error

	// Logout removes the stored credentials.
	Logout(ctx context.Context) error

	// Current returns the stored credentials.
	// Returns domain.ErrUnauthenticated if nobody is logged in.
	Current(ctx context.Context) (*domain.Credentials, error)

	// IsAuthenticated reports whether valid credentials are stored.
	IsAuthenticated(ctx context.Context) bool

	// Tier returns the account tier of the logged-in user, Free when unknown.
	Tier(ctx context.Context) domain.AccountTier

	// Upgrade moves the logged-in account to the Pro tier.
	Upgrade(ctx context.Context) (domain.AccountTier, error)
}
