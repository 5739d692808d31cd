package tui

import (
	"context"
	"sync"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// mockSessionManager keeps the active and saved session in memory.
type mockSessionManager struct {
	mu     sync.Mutex
	active domain.SessionState
	saved  domain.SessionState
}

func (m *mockSessionManager) Current() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *mockSessionManager) Replace(_ context.Context, plan domain.PlanDocument, prompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = domain.SessionState{CurrentPlan: plan, OriginalPrompt: prompt}
	m.saved = m.active
}

func (m *mockSessionManager) LoadPersisted(_ context.Context) domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

func (m *mockSessionManager) HasPersisted(ctx context.Context) bool {
	return m.LoadPersisted(ctx).HasBaseline()
}

func (m *mockSessionManager) Persist(_ context.Context, plan domain.PlanDocument, prompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = domain.SessionState{CurrentPlan: plan, OriginalPrompt: prompt}
}

func (m *mockSessionManager) Restore(_ context.Context) (domain.PlanDocument, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved.HasBaseline() {
		return nil, false
	}
	m.active = m.saved
	return m.active.CurrentPlan, true
}

func (m *mockSessionManager) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = domain.SessionState{}
	m.saved = domain.SessionState{}
}

// mockIdeaService records calls and replaces the session on success.
type mockIdeaService struct {
	session     *mockSessionManager
	plan        domain.PlanDocument
	err         error
	prompt      string
	instruction string
}

func (m *mockIdeaService) Generate(ctx context.Context, prompt string) (domain.PlanDocument, error) {
	m.prompt = prompt
	if m.err != nil {
		return nil, m.err
	}
	m.session.Replace(ctx, m.plan, prompt)
	return m.plan, nil
}

func (m *mockIdeaService) RequestUpdate(ctx context.Context, instruction string) (domain.PlanDocument, error) {
	m.instruction = instruction
	if m.err != nil {
		return nil, m.err
	}
	m.session.Replace(ctx, m.plan, m.session.Current().OriginalPrompt)
	return m.plan, nil
}

func (m *mockIdeaService) Generating() bool { return false }

func (m *mockIdeaService) State() domain.UpdateState { return domain.UpdateIdle }

// mockAuthService returns fixed credentials.
type mockAuthService struct {
	creds *domain.Credentials
}

func (m *mockAuthService) Login(_ context.Context, _, _ string) (*domain.Credentials, error) {
	return nil, domain.ErrAuthInvalid
}

func (m *mockAuthService) Register(_ context.Context, _ domain.Registration) error {
	return domain.ErrAuthInvalid
}

func (m *mockAuthService) Logout(_ context.Context) error { return nil }

func (m *mockAuthService) Current(_ context.Context) (*domain.Credentials, error) {
	if m.creds == nil {
		return nil, domain.ErrUnauthenticated
	}
	return m.creds, nil
}

func (m *mockAuthService) IsAuthenticated(_ context.Context) bool { return m.creds.IsAuthenticated() }

func (m *mockAuthService) Tier(_ context.Context) domain.AccountTier { return m.creds.Tier() }

func (m *mockAuthService) Upgrade(_ context.Context) (domain.AccountTier, error) {
	return domain.TierPro, nil
}

// mockWatcher hands out a channel the test controls.
type mockWatcher struct {
	changes chan struct{}
	err     error
}

func (m *mockWatcher) Watch(_ context.Context) (<-chan struct{}, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.changes, nil
}

func (m *mockWatcher) Close() error { return nil }
