package memory

import (
	"context"
	"sync"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
)

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

// CredentialsStore is an in-memory implementation of driven.CredentialsStore.
type CredentialsStore struct {
	mu    sync.RWMutex
	creds *domain.Credentials
}

// NewCredentialsStore creates a new in-memory credentials store.
func NewCredentialsStore() *CredentialsStore {
	return &CredentialsStore{}
}

// Save stores credentials, replacing any existing login.
func (s *CredentialsStore) Save(_ context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &creds
	return nil
}

// Get retrieves the stored credentials.
func (s *CredentialsStore) Get(_ context.Context) (*domain.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil, domain.ErrNotFound
	}
	c := *s.creds
	return &c, nil
}

// Delete removes the stored credentials.
func (s *CredentialsStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}
