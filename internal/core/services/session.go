package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driving"
	"github.com/bizpilot/bizpilot-cli/internal/logger"
)

// Ensure SessionManager implements the interface.
var _ driving.SessionManager = (*SessionManager)(nil)

// Durable storage keys. They match the keys the web front-end used so a
// store migrated from it stays readable.
const (
	KeyGeneratedData  = "bizpilot-generated-data"
	KeyOriginalPrompt = "bizpilot-original-prompt"
)

// sessionFormatVersion is written into every stored plan envelope.
// Version 0 is a bare plan object with no envelope.
const sessionFormatVersion = 1

type sessionEnvelope struct {
	Version int                 `json:"version"`
	Plan    domain.PlanDocument `json:"plan"`
	SavedAt time.Time           `json:"saved_at"`
}

// SessionManager holds the active session in memory and mirrors it to a
// key-value store.
type SessionManager struct {
	store driven.KeyValueStore
	now   func() time.Time

	mu     sync.RWMutex
	active domain.SessionState
}

// NewSessionManager creates a session manager with an empty active session.
// Nothing is read from the store until LoadPersisted or Restore is called.
func NewSessionManager(store driven.KeyValueStore) *SessionManager {
	return &SessionManager{
		store: store,
		now:   time.Now,
	}
}

// Current returns a copy of the active session.
func (m *SessionManager) Current() domain.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active.Clone()
}

// Replace makes plan and prompt the active session and persists them.
func (m *SessionManager) Replace(ctx context.Context, plan domain.PlanDocument, prompt string) {
	now := m.now()

	m.mu.Lock()
	m.active = domain.SessionState{
		OriginalPrompt: prompt,
		CurrentPlan:    plan.Clone(),
		UpdatedAt:      now,
	}
	m.mu.Unlock()

	m.persistAt(ctx, plan, prompt, now)
}

// Persist writes plan and prompt to the store together: either both are
// replaced or the stored session is left as it was. Failures are logged only.
func (m *SessionManager) Persist(ctx context.Context, plan domain.PlanDocument, prompt string) {
	m.persistAt(ctx, plan, prompt, m.now())
}

func (m *SessionManager) persistAt(ctx context.Context, plan domain.PlanDocument, prompt string, savedAt time.Time) {
	if err := plan.Validate(); err != nil {
		logger.Warn("session not persisted: %v", err)
		return
	}

	data, err := json.Marshal(sessionEnvelope{
		Version: sessionFormatVersion,
		Plan:    plan,
		SavedAt: savedAt.UTC(),
	})
	if err != nil {
		logger.Warn("session not persisted: encode plan: %v", err)
		return
	}

	err = m.store.SetMany(ctx, map[string]string{
		KeyGeneratedData:  string(data),
		KeyOriginalPrompt: prompt,
	})
	if err != nil {
		logger.Warn("session not persisted: %v", err)
		return
	}
	logger.Debug("session persisted (%d bytes)", len(data))
}

// LoadPersisted reads the stored session without touching the active one.
// Corrupted data is deleted and reported as an empty session.
func (m *SessionManager) LoadPersisted(ctx context.Context) domain.SessionState {
	raw, err := m.store.Get(ctx, KeyGeneratedData)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.SessionState{}
	}
	if err != nil {
		logger.Warn("read stored session: %v", err)
		return domain.SessionState{}
	}

	plan, savedAt, err := decodeStoredPlan(raw)
	if err != nil {
		logger.Warn("discarding stored session: %v", err)
		m.discard(ctx)
		return domain.SessionState{}
	}

	prompt, err := m.store.Get(ctx, KeyOriginalPrompt)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("read stored prompt: %v", err)
	}

	return domain.SessionState{
		OriginalPrompt: prompt,
		CurrentPlan:    plan,
		UpdatedAt:      savedAt,
	}
}

// HasPersisted reports whether a valid plan is stored.
func (m *SessionManager) HasPersisted(ctx context.Context) bool {
	return m.LoadPersisted(ctx).HasBaseline()
}

// Restore replaces the active session with the stored one.
func (m *SessionManager) Restore(ctx context.Context) (domain.PlanDocument, bool) {
	stored := m.LoadPersisted(ctx)
	if !stored.HasBaseline() {
		return nil, false
	}

	m.mu.Lock()
	m.active = stored
	m.mu.Unlock()

	logger.Debug("session restored from storage")
	return stored.CurrentPlan.Clone(), true
}

// Clear empties the active session and deletes the stored one.
func (m *SessionManager) Clear(ctx context.Context) {
	m.mu.Lock()
	m.active = domain.SessionState{}
	m.mu.Unlock()

	m.discard(ctx)
}

func (m *SessionManager) discard(ctx context.Context) {
	if err := m.store.Delete(ctx, KeyGeneratedData, KeyOriginalPrompt); err != nil {
		logger.Warn("delete stored session: %v", err)
	}
}

// decodeStoredPlan accepts both the versioned envelope and a bare plan object.
// Any document with a version key is an envelope.
func decodeStoredPlan(raw string) (domain.PlanDocument, time.Time, error) {
	doc, err := domain.DecodePlan([]byte(raw))
	if err != nil {
		return nil, time.Time{}, err
	}

	version, hasVersion := doc["version"]
	if !hasVersion {
		if err := doc.Validate(); err != nil {
			return nil, time.Time{}, err
		}
		return doc, time.Time{}, nil
	}

	if v, ok := version.(json.Number); !ok || v.String() != fmt.Sprint(sessionFormatVersion) {
		return nil, time.Time{}, fmt.Errorf("%w: unsupported session format version %v", domain.ErrMalformedPlan, version)
	}
	inner, ok := doc["plan"].(map[string]any)
	if !ok {
		return nil, time.Time{}, fmt.Errorf("%w: session envelope has no plan object", domain.ErrMalformedPlan)
	}

	plan := domain.PlanDocument(inner)
	if err := plan.Validate(); err != nil {
		return nil, time.Time{}, err
	}

	var savedAt time.Time
	if s, ok := doc["saved_at"].(string); ok {
		savedAt, _ = time.Parse(time.RFC3339Nano, s)
	}
	return plan, savedAt, nil
}
