package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driving"
	"github.com/bizpilot/bizpilot-cli/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService logs the local user in and out of the BizPilot account service.
type AuthService struct {
	client driven.AccountClient
	store  driven.CredentialsStore
	now    func() time.Time
}

// NewAuthService creates a new auth service.
func NewAuthService(client driven.AccountClient, store driven.CredentialsStore) *AuthService {
	return &AuthService{
		client: client,
		store:  store,
		now:    time.Now,
	}
}

// Login authenticates and stores the returned credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Credentials, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	creds, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !creds.IsAuthenticated() {
		return nil, fmt.Errorf("%w: login response carried no token or user", domain.ErrAuthInvalid)
	}

	now := s.now()
	creds.CreatedAt = now
	creds.UpdatedAt = now
	creds.Account.Tier = domain.ParseAccountTier(string(creds.Account.Tier))

	if err := s.store.Save(ctx, *creds); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}
	logger.Debug("logged in as %s (%s)", creds.Account.ID, creds.Account.Tier)
	return creds, nil
}

// Register creates a new account with the normalised registration.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) error {
	reg = reg.Normalise()
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("%w: first name, email and password are required", err)
	}
	return s.client.Register(ctx, reg)
}

// Logout removes the stored credentials.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	return nil
}

// Current returns the stored credentials.
// An AuthService without a credentials store has nobody logged in.
func (s *AuthService) Current(ctx context.Context) (*domain.Credentials, error) {
	if s == nil || s.store == nil {
		return nil, domain.ErrUnauthenticated
	}
	creds, err := s.store.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("get credentials: %w", err)
	}
	if !creds.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	return creds, nil
}

// IsAuthenticated reports whether valid credentials are stored.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	_, err := s.Current(ctx)
	return err == nil
}

// Tier returns the stored account tier, Free when nobody is logged in.
func (s *AuthService) Tier(ctx context.Context) domain.AccountTier {
	creds, err := s.Current(ctx)
	if err != nil {
		return domain.TierFree
	}
	return creds.Tier()
}

// Upgrade moves the account to Pro and records the tier the server returns.
func (s *AuthService) Upgrade(ctx context.Context) (domain.AccountTier, error) {
	creds, err := s.Current(ctx)
	if err != nil {
		return domain.TierFree, err
	}
	if creds.Tier().IsPro() {
		return domain.TierPro, nil
	}

	tier, err := s.client.UpdateTier(ctx, creds.Token, creds.Account.ID, domain.TierPro)
	if err != nil {
		return creds.Tier(), err
	}

	creds.Account.Tier = tier
	creds.UpdatedAt = s.now()
	if err := s.store.Save(ctx, *creds); err != nil {
		return tier, fmt.Errorf("save credentials: %w", err)
	}
	return tier, nil
}
