package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driving"
	"github.com/bizpilot/bizpilot-cli/internal/logger"
)

// Ensure IdeaService implements the interface.
var _ driving.IdeaService = (*IdeaService)(nil)

// IdeaService runs initial generations and iterative updates against the
// generation endpoint and records successful results in the session.
//
// Every call moves through Idle -> Validating -> Requesting -> Idle.
// Precondition failures return to Idle before any network I/O, and a call
// made while another is in flight is rejected rather than queued.
type IdeaService struct {
	session   driving.SessionManager
	generator driven.PlanGenerator
	auth      driving.AuthService
	newID     func() string

	mu    sync.Mutex
	state domain.UpdateState
}

// NewIdeaService creates a new idea service.
func NewIdeaService(
	session driving.SessionManager,
	generator driven.PlanGenerator,
	auth driving.AuthService,
) *IdeaService {
	return &IdeaService{
		session:   session,
		generator: generator,
		auth:      auth,
		newID:     uuid.NewString,
	}
}

// Generate creates a plan from a fresh prompt. On success the session is
// replaced with the plan and the prompt, and persisted.
func (s *IdeaService) Generate(ctx context.Context, prompt string) (domain.PlanDocument, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.finish()

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}
	creds, err := s.credentials(ctx)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	logger.Section("Generate")
	logger.Debug("request %s: prompt of %d chars", id, len(prompt))

	s.setState(domain.UpdateRequesting)
	plan, err := s.call(ctx, domain.GenerateRequest{
		Prompt:    prompt,
		UserID:    creds.Account.ID,
		Account:   creds.Tier(),
		Token:     creds.Token,
		RequestID: id,
	})
	if err != nil {
		return nil, err
	}

	s.session.Replace(ctx, plan, prompt)
	return plan.Clone(), nil
}

// RequestUpdate applies a modification instruction to the current plan.
// The returned plan replaces the session plan wholesale; the original
// prompt is kept. On any failure the session is left untouched.
func (s *IdeaService) RequestUpdate(ctx context.Context, instruction string) (domain.PlanDocument, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.finish()

	req, err := domain.NewModificationRequest(s.newID(), instruction, s.session.Current())
	if err != nil {
		return nil, err
	}
	creds, err := s.credentials(ctx)
	if err != nil {
		return nil, err
	}

	prompt, err := req.Prompt()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	logger.Section("Iterative Update")
	logger.Debug("request %s: instruction %q", req.ID, req.Instruction)

	s.setState(domain.UpdateRequesting)
	plan, err := s.call(ctx, domain.GenerateRequest{
		Prompt:    prompt,
		UserID:    creds.Account.ID,
		Account:   creds.Tier(),
		Token:     creds.Token,
		RequestID: req.ID,
	})
	if err != nil {
		logger.Debug("request %s failed: %v", req.ID, err)
		return nil, err
	}

	s.session.Replace(ctx, plan, req.BasePrompt)
	logger.Debug("request %s applied", req.ID)
	return plan.Clone(), nil
}

// Generating reports whether a call is in flight.
func (s *IdeaService) Generating() bool {
	return s.State() != domain.UpdateIdle
}

// State returns the phase of the current call.
func (s *IdeaService) State() domain.UpdateState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *IdeaService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.UpdateIdle {
		return domain.ErrUpdateInProgress
	}
	s.state = domain.UpdateValidating
	return nil
}

func (s *IdeaService) setState(state domain.UpdateState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *IdeaService) finish() {
	s.setState(domain.UpdateIdle)
}

func (s *IdeaService) credentials(ctx context.Context) (*domain.Credentials, error) {
	if s.auth == nil {
		return nil, domain.ErrUnauthenticated
	}
	creds, err := s.auth.Current(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthenticated) {
			logger.Warn("read credentials: %v", err)
		}
		return nil, domain.ErrUnauthenticated
	}
	if !creds.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	return creds, nil
}

// call sends one generation request and turns every non-success outcome
// into an error wrapping domain.ErrGenerationFailed.
func (s *IdeaService) call(ctx context.Context, req domain.GenerateRequest) (domain.PlanDocument, error) {
	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	if !result.Succeeded() {
		if result == nil {
			return nil, fmt.Errorf("%w: empty response", domain.ErrGenerationFailed)
		}
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrGenerationFailed, result.StatusCode, result.Message)
	}
	return result.Plan, nil
}
