package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
)

// Ensure Client implements the generation port.
var _ driven.PlanGenerator = (*Client)(nil)

// ideaRequest is the POST /idea request format.
type ideaRequest struct {
	Prompt  string `json:"prompt"`
	User    string `json:"user"`
	Account string `json:"account"`
}

// Generate submits a prompt to POST /idea.
//
// The returned StatusCode is the one in the response body when present,
// falling back to the HTTP status. Plan is set only when data is a JSON object.
func (c *Client) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	var header http.Header
	if req.RequestID != "" {
		header = http.Header{"X-Request-Id": []string{req.RequestID}}
	}

	resp, err := c.do(ctx, http.MethodPost, "/idea", req.Token, ideaRequest{
		Prompt:  req.Prompt,
		User:    req.UserID,
		Account: req.Account.String(),
	}, header)
	if err != nil {
		return nil, err
	}
	return c.generateResult(resp)
}

// generateResult interprets a POST /idea response.
func (c *Client) generateResult(resp *response) (*domain.GenerateResult, error) {
	if resp.status == http.StatusTooManyRequests {
		return nil, c.rateLimited(resp)
	}
	if !resp.decoded {
		if !resp.ok() {
			return &domain.GenerateResult{StatusCode: resp.status, Message: resp.message()}, nil
		}
		return nil, fmt.Errorf("decode response: body is not a JSON envelope")
	}

	result := &domain.GenerateResult{
		StatusCode: resp.env.StatusCode,
		Message:    resp.env.Message,
	}
	if result.StatusCode == 0 {
		result.StatusCode = resp.status
	}

	data := bytes.TrimSpace(resp.env.Data)
	if len(data) > 0 && data[0] == '{' {
		plan, err := domain.DecodePlan(data)
		if err != nil {
			return nil, err
		}
		result.Plan = plan
	}
	return result, nil
}
