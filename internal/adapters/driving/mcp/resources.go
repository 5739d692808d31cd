package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for BizPilot resources.
	uriScheme = "bizpilot://"

	planURI   = uriScheme + "session/plan"
	promptURI = uriScheme + "session/prompt"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         planURI,
		Name:        "session-plan",
		Description: "The saved business plan as JSON",
		MIMEType:    "application/json",
	}, s.handlePlanResource)

	s.server.AddResource(&mcp.Resource{
		URI:         promptURI,
		Name:        "session-prompt",
		Description: "The idea prompt that started the saved session",
		MIMEType:    "text/plain",
	}, s.handlePromptResource)
}

// handlePlanResource returns the saved plan, gated on the account tier.
func (s *Server) handlePlanResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	state := s.ports.Session.LoadPersisted(ctx)
	if !state.HasBaseline() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	plan := state.CurrentPlan
	if !s.ports.Auth.Tier(ctx).ShowsAutomationInsights() {
		plan = plan.WithoutAutomationInsights()
	}
	text, err := plan.Canonical()
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}

// handlePromptResource returns the saved prompt.
func (s *Server) handlePromptResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	state := s.ports.Session.LoadPersisted(ctx)
	if !state.HasBaseline() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     state.OriginalPrompt,
		}},
	}, nil
}
