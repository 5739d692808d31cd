package domain

import (
	"fmt"
	"strings"
)

// ModificationRequest is one iterative update: a free-text instruction
// applied on top of the current plan. It lives for a single call.
type ModificationRequest struct {
	// ID correlates the request in logs and is sent as X-Request-ID.
	ID string

	// Instruction is the trimmed, non-empty modification text.
	Instruction string

	// BasePlan is the plan in effect before the update.
	BasePlan PlanDocument

	// BasePrompt is the session's original prompt.
	BasePrompt string
}

// NewModificationRequest checks the update preconditions against the session
// and builds the request. A missing plan is reported before a blank instruction.
func NewModificationRequest(id, instruction string, session SessionState) (*ModificationRequest, error) {
	if !session.HasBaseline() {
		return nil, ErrNoBaseline
	}
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, ErrEmptyInstruction
	}
	return &ModificationRequest{
		ID:          id,
		Instruction: instruction,
		BasePlan:    session.CurrentPlan,
		BasePrompt:  session.OriginalPrompt,
	}, nil
}

// Prompt composes the natural-language directive sent to the generation service.
func (r *ModificationRequest) Prompt() (string, error) {
	return ComposeModificationPrompt(r.BasePlan, r.Instruction)
}

// ComposeModificationPrompt merges a serialised plan and an instruction into a
// single directive. The plan text is embedded verbatim.
func ComposeModificationPrompt(plan PlanDocument, instruction string) (string, error) {
	serialised, err := plan.Canonical()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"Based on the previous output: %s, now recalculate considering that %s, keeping the same model structure.",
		serialised, instruction,
	), nil
}

// GenerateRequest is the payload of a generation call.
type GenerateRequest struct {
	// Prompt is the full natural-language directive.
	Prompt string

	// UserID identifies the caller.
	UserID string

	// Account is the caller's tier.
	Account AccountTier

	// Token is the caller's access token, sent as the Authorization header.
	Token string

	// RequestID correlates the call in logs. Optional.
	RequestID string
}

// GenerateResult is what the generation service answered.
type GenerateResult struct {
	// StatusCode is the status reported in the response body.
	// 201 signals a created plan.
	StatusCode int

	// Message is the server's message, if any.
	Message string

	// Plan is the returned document; nil when the body carried none.
	Plan PlanDocument
}

// StatusCreated is the body status code of a successful generation.
const StatusCreated = 201

// Succeeded reports whether the result carries a usable plan.
func (r *GenerateResult) Succeeded() bool {
	return r != nil && r.StatusCode == StatusCreated && r.Plan.Validate() == nil
}
