package memory

import (
	"context"
	"sync"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
)

// Ensure KVStore implements the interface.
var _ driven.KeyValueStore = (*KVStore)(nil)

// KVStore is an in-memory implementation of driven.KeyValueStore.
// Errors can be injected to exercise best-effort persistence paths.
type KVStore struct {
	mu     sync.RWMutex
	values map[string]string

	// SetErr, when non-nil, is returned by every Set and SetMany call.
	SetErr error
	// KeyErrs fails writes that touch the given keys.
	KeyErrs map[string]error
	// DeleteErr, when non-nil, is returned by every Delete call.
	DeleteErr error
}

// NewKVStore creates a new in-memory key-value store.
func NewKVStore() *KVStore {
	return &KVStore{
		values: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (s *KVStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return val, nil
}

// Set stores value under key.
func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeErr(key); err != nil {
		return err
	}
	s.values[key] = value
	return nil
}

// SetMany stores all entries, or none if any write fails.
func (s *KVStore) SetMany(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range entries {
		if err := s.writeErr(key); err != nil {
			return err
		}
	}
	for key, value := range entries {
		s.values[key] = value
	}
	return nil
}

func (s *KVStore) writeErr(key string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	return s.KeyErrs[key]
}

// Delete removes the given keys.
func (s *KVStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
