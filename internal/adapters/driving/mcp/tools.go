package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/logger"
)

// GenerateInput is the input schema for the generate_idea tool.
type GenerateInput struct {
	Prompt string `json:"prompt" jsonschema:"the business idea, e.g. location, budget and what to sell"`
}

// ModifyInput is the input schema for the modify_idea tool.
type ModifyInput struct {
	Instruction string `json:"instruction" jsonschema:"the change to apply to the current plan, e.g. the budget increased by 20%"`
}

// EmptyInput is the input schema for tools without arguments.
type EmptyInput struct{}

// PlanOutput is the output schema of the plan tools.
type PlanOutput struct {
	Plan    map[string]any `json:"plan,omitempty"`
	Prompt  string         `json:"prompt,omitempty"`
	Account string         `json:"account"`
}

// AskInput is the input schema for the ask_assistant tool.
type AskInput struct {
	Message string `json:"message" jsonschema:"the question for the business assistant"`
}

// AskOutput is the output schema for the ask_assistant tool.
type AskOutput struct {
	Reply string `json:"reply"`
}

// ClearOutput is the output schema for the clear_session tool.
type ClearOutput struct {
	Cleared bool `json:"cleared"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_idea",
		Description: "Generate a business plan from an idea and start a new session with it",
	}, s.handleGenerate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "modify_idea",
		Description: "Regenerate the current business plan taking a change into account. " +
			"Requires a plan from generate_idea or restore_session",
	}, s.handleModify)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "current_plan",
		Description: "Return the plan in effect, or the saved plan when none is active",
	}, s.handleCurrent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "restore_session",
		Description: "Resume the saved session so that modify_idea can refine it",
	}, s.handleRestore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_session",
		Description: "Discard the current plan and the saved session",
	}, s.handleClear)

	if s.ports.Assistant != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask_assistant",
			Description: "Ask the BizPilot assistant a business question. Does not change the session",
		}, s.handleAsk)
	}
}

func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, PlanOutput, error) {
	plan, err := s.ports.Idea.Generate(ctx, input.Prompt)
	if err != nil {
		return nil, PlanOutput{}, toolError(err)
	}
	return nil, s.planOutput(ctx, plan, input.Prompt), nil
}

func (s *Server) handleModify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ModifyInput,
) (*mcp.CallToolResult, PlanOutput, error) {
	plan, err := s.ports.Idea.RequestUpdate(ctx, input.Instruction)
	if err != nil {
		return nil, PlanOutput{}, toolError(err)
	}
	return nil, s.planOutput(ctx, plan, s.ports.Session.Current().OriginalPrompt), nil
}

func (s *Server) handleCurrent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, PlanOutput, error) {
	state := s.ports.Session.Current()
	if !state.HasBaseline() {
		state = s.ports.Session.LoadPersisted(ctx)
	}
	if !state.HasBaseline() {
		return nil, PlanOutput{Account: s.ports.Auth.Tier(ctx).String()}, nil
	}
	return nil, s.planOutput(ctx, state.CurrentPlan, state.OriginalPrompt), nil
}

func (s *Server) handleRestore(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, PlanOutput, error) {
	plan, ok := s.ports.Session.Restore(ctx)
	if !ok {
		return nil, PlanOutput{}, errNothingToRestore
	}
	return nil, s.planOutput(ctx, plan, s.ports.Session.Current().OriginalPrompt), nil
}

func (s *Server) handleClear(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ClearOutput, error) {
	s.ports.Session.Clear(ctx)
	return nil, ClearOutput{Cleared: true}, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	reply, err := s.ports.Assistant.Ask(ctx, input.Message)
	if err != nil {
		return nil, AskOutput{}, toolError(err)
	}
	return nil, AskOutput{Reply: reply}, nil
}

// planOutput gates automation insights on the account tier.
func (s *Server) planOutput(ctx context.Context, plan domain.PlanDocument, prompt string) PlanOutput {
	tier := s.ports.Auth.Tier(ctx)
	if !tier.ShowsAutomationInsights() {
		plan = plan.WithoutAutomationInsights()
	}
	return PlanOutput{
		Plan:    map[string]any(plan),
		Prompt:  prompt,
		Account: tier.String(),
	}
}

// toolError reports the user-facing message to the client and keeps the
// cause for errors.Is.
func toolError(err error) error {
	logger.Debug("mcp: tool failed: %v", err)
	return fmt.Errorf("%s: %w", domain.UserMessage(err), err)
}
