package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// mockSessionManager is a mock implementation of driving.SessionManager.
type mockSessionManager struct {
	active  domain.SessionState
	saved   domain.SessionState
	cleared bool
}

func (m *mockSessionManager) Current() domain.SessionState { return m.active }

func (m *mockSessionManager) Replace(_ context.Context, plan domain.PlanDocument, prompt string) {
	m.active = domain.SessionState{CurrentPlan: plan, OriginalPrompt: prompt}
	m.saved = m.active
}

func (m *mockSessionManager) LoadPersisted(_ context.Context) domain.SessionState { return m.saved }

func (m *mockSessionManager) HasPersisted(_ context.Context) bool { return m.saved.HasBaseline() }

func (m *mockSessionManager) Persist(_ context.Context, plan domain.PlanDocument, prompt string) {
	m.saved = domain.SessionState{CurrentPlan: plan, OriginalPrompt: prompt}
}

func (m *mockSessionManager) Restore(_ context.Context) (domain.PlanDocument, bool) {
	if !m.saved.HasBaseline() {
		return nil, false
	}
	m.active = m.saved
	return m.active.CurrentPlan, true
}

func (m *mockSessionManager) Clear(_ context.Context) {
	m.active = domain.SessionState{}
	m.saved = domain.SessionState{}
	m.cleared = true
}

// mockIdeaService is a mock implementation of driving.IdeaService.
type mockIdeaService struct {
	plan        domain.PlanDocument
	err         error
	prompt      string
	instruction string
}

func (m *mockIdeaService) Generate(_ context.Context, prompt string) (domain.PlanDocument, error) {
	m.prompt = prompt
	return m.plan, m.err
}

func (m *mockIdeaService) RequestUpdate(_ context.Context, instruction string) (domain.PlanDocument, error) {
	m.instruction = instruction
	return m.plan, m.err
}

func (m *mockIdeaService) Generating() bool { return false }

func (m *mockIdeaService) State() domain.UpdateState { return domain.UpdateIdle }

// mockAuthService is a mock implementation of driving.AuthService.
type mockAuthService struct {
	tier domain.AccountTier
}

func (m *mockAuthService) Login(_ context.Context, _, _ string) (*domain.Credentials, error) {
	return nil, domain.ErrAuthInvalid
}

func (m *mockAuthService) Register(_ context.Context, _ domain.Registration) error {
	return domain.ErrAuthInvalid
}

func (m *mockAuthService) Logout(_ context.Context) error { return nil }

func (m *mockAuthService) Current(_ context.Context) (*domain.Credentials, error) {
	return nil, domain.ErrUnauthenticated
}

func (m *mockAuthService) IsAuthenticated(_ context.Context) bool { return m.tier != "" }

func (m *mockAuthService) Tier(_ context.Context) domain.AccountTier {
	if m.tier == "" {
		return domain.TierFree
	}
	return m.tier
}

func (m *mockAuthService) Upgrade(_ context.Context) (domain.AccountTier, error) {
	return domain.TierPro, nil
}

func newTestServer(t *testing.T, session *mockSessionManager, idea *mockIdeaService, tier domain.AccountTier) *Server {
	t.Helper()
	s, err := NewServer(&Ports{Session: session, Idea: idea, Auth: &mockAuthService{tier: tier}}, "test")
	require.NoError(t, err)
	return s
}

// proPlan returns a plan carrying automation insights.
func proPlan() domain.PlanDocument {
	return domain.PlanDocument{
		"idea":                map[string]any{"title": "Tea Stall", "budget": "50000 INR"},
		"feasibility":         map[string]any{"profitable": true, "confidence_score": json.Number("7.5")},
		"automation_insights": map[string]any{"tools": []any{"UPI billing"}},
	}
}

// mockAssistant is a mock implementation of driving.AssistantService.
type mockAssistant struct {
	reply   string
	err     error
	message string
}

func (m *mockAssistant) Ask(_ context.Context, message string) (string, error) {
	m.message = message
	return m.reply, m.err
}
