package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bizpilot/bizpilot-cli/internal/adapters/driven/storage/memory"
	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// mockPlanGenerator records requests and answers with a fixed result.
// When block is set, Generate signals started and waits on block before answering.
type mockPlanGenerator struct {
	mu       sync.Mutex
	requests []domain.GenerateRequest
	result   *domain.GenerateResult
	err      error

	started chan struct{}
	block   chan struct{}
}

func (m *mockPlanGenerator) Generate(_ context.Context, req domain.GenerateRequest) (*domain.GenerateResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.block != nil {
		<-m.block
	}
	return m.result, m.err
}

func (m *mockPlanGenerator) calls() []domain.GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.GenerateRequest(nil), m.requests...)
}

type mockAccountClient struct {
	loginCreds *domain.Credentials
	loginErr   error

	registered  []domain.Registration
	registerErr error

	tierCalls  int
	tierResult domain.AccountTier
	tierErr    error
}

func (m *mockAccountClient) Login(_ context.Context, _, _ string) (*domain.Credentials, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	c := *m.loginCreds
	return &c, nil
}

func (m *mockAccountClient) Register(_ context.Context, reg domain.Registration) error {
	m.registered = append(m.registered, reg)
	return m.registerErr
}

func (m *mockAccountClient) UpdateTier(_ context.Context, _, _ string, _ domain.AccountTier) (domain.AccountTier, error) {
	m.tierCalls++
	return m.tierResult, m.tierErr
}

// teaStallPlan builds the plan used throughout the tests.
func teaStallPlan(t *testing.T, confidence int) domain.PlanDocument {
	t.Helper()
	plan, err := domain.DecodePlan([]byte(fmt.Sprintf(`{
		"idea": {"title": "Tea Stall", "location": "Pune", "budget": "50000 INR"},
		"business_models": [{"name": "Kiosk", "summery": "Roadside tea kiosk"}],
		"roadmap": [{"month": "Month 1", "milestones": ["Permit", "Setup"]}],
		"feasibility": {"profitable": true, "confidence_score": %d, "recommended_model": "Kiosk"}
	}`, confidence)))
	require.NoError(t, err)
	return plan
}

func createdResult(plan domain.PlanDocument) *domain.GenerateResult {
	return &domain.GenerateResult{StatusCode: domain.StatusCreated, Plan: plan}
}

// loggedInAuth returns an auth service whose store already holds a login.
func loggedInAuth(t *testing.T, tier domain.AccountTier) *AuthService {
	t.Helper()
	store := memory.NewCredentialsStore()
	require.NoError(t, store.Save(context.Background(), domain.Credentials{
		Token:   "token-abc",
		Account: domain.Account{ID: "user-1", Email: "asha@example.com", Tier: tier},
	}))
	return NewAuthService(&mockAccountClient{}, store)
}
