package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/bizpilot/bizpilot-cli/internal/adapters/driven/storage/memory"
	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/services"
)

// fakeGenerator answers every generation call with a fixed result.
type fakeGenerator struct {
	mu       sync.Mutex
	requests []domain.GenerateRequest
	result   *domain.GenerateResult
	err      error
}

func (g *fakeGenerator) Generate(_ context.Context, req domain.GenerateRequest) (*domain.GenerateResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.result, g.err
}

func (g *fakeGenerator) calls() []domain.GenerateRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.GenerateRequest(nil), g.requests...)
}

// fakeChatClient answers every question with a fixed reply.
type fakeChatClient struct {
	mu        sync.Mutex
	questions []string
	reply     string
	err       error
}

func (c *fakeChatClient) Chat(_ context.Context, message string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions = append(c.questions, message)
	return c.reply, c.err
}

// fakeAccountClient stands in for the account endpoints.
type fakeAccountClient struct {
	creds      *domain.Credentials
	loginErr   error
	email      string
	password   string
	registered []domain.Registration
	tier       domain.AccountTier
}

func (c *fakeAccountClient) Login(_ context.Context, email, password string) (*domain.Credentials, error) {
	c.email, c.password = email, password
	if c.loginErr != nil {
		return nil, c.loginErr
	}
	creds := *c.creds
	return &creds, nil
}

func (c *fakeAccountClient) Register(_ context.Context, reg domain.Registration) error {
	c.registered = append(c.registered, reg)
	return nil
}

func (c *fakeAccountClient) UpdateTier(_ context.Context, _, _ string, tier domain.AccountTier) (domain.AccountTier, error) {
	if c.tier != "" {
		return c.tier, nil
	}
	return tier, nil
}

// testEnv wires real services over in-memory stores.
type testEnv struct {
	kv        *memory.KVStore
	creds     *memory.CredentialsStore
	config    *memory.ConfigStore
	generator *fakeGenerator
	accounts  *fakeAccountClient
	chat      *fakeChatClient
}

func setupTestServices(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		kv:        memory.NewKVStore(),
		creds:     memory.NewCredentialsStore(),
		config:    memory.NewConfigStore(),
		generator: &fakeGenerator{},
		chat:      &fakeChatClient{reply: "Offer a monthly tea pass to regular commuters."},
		accounts: &fakeAccountClient{creds: &domain.Credentials{
			Token:   "token-abc",
			Account: domain.Account{ID: "user-1", FirstName: "Asha", LastName: "Patil", Email: "asha@example.com", Tier: domain.TierFree},
		}},
	}
	env.install()
	t.Cleanup(func() { SetServices(Services{}) })
	return env
}

// install builds fresh services over the env's stores, like a new process would.
func (e *testEnv) install() {
	session := services.NewSessionManager(e.kv)
	auth := services.NewAuthService(e.accounts, e.creds)
	SetServices(Services{
		Session:  session,
		Idea:     services.NewIdeaService(session, e.generator, auth),
		Auth:     auth,
		Settings: services.NewSettingsService(e.config),

		Assistant: services.NewAssistantService(e.chat),
	})
}

func (e *testEnv) login(t *testing.T, tier domain.AccountTier) {
	t.Helper()
	creds := *e.accounts.creds
	creds.Account.Tier = tier
	require.NoError(t, e.creds.Save(context.Background(), creds))
}

func (e *testEnv) willGenerate(plan domain.PlanDocument) {
	e.generator.result = &domain.GenerateResult{StatusCode: domain.StatusCreated, Plan: plan}
}

func teaStall(t *testing.T) domain.PlanDocument {
	t.Helper()
	plan, err := domain.DecodePlan([]byte(`{
		"idea": {"title": "Chai Corner", "location": "Pune", "budget": "50000 INR", "category": "Food"},
		"business_models": [{"name": "Walk-in stall", "summary": "Tea for commuters", "risks": ["Rain"]}],
		"roadmap": [{"month": "Month 1", "milestones": ["Permit", "Setup"]}],
		"feasibility": {"profitable": true, "confidence_score": 8, "recommended_model": "Walk-in stall"},
		"automation_insights": {"billing": "UPI QR codes"}
	}`))
	require.NoError(t, err)
	return plan
}

// execute runs the root command with args and returns everything written
// to stdout and stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	outputFormat = formatText
	verbose = false
	loginEmail = ""
	registerFirstName, registerLastName, registerEmail, registerPhone = "", "", "", ""
	registerRole, registerAccount = "User", string(domain.TierFree)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags puts every flag set by an earlier run, --help included, back to
// its default. Cobra keeps parsed flag values on the command between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}
