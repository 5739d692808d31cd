package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driving"
	"github.com/bizpilot/bizpilot-cli/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// AssistantService relays questions to the business assistant.
type AssistantService struct {
	client driven.ChatClient
}

// NewAssistantService creates a new assistant service.
func NewAssistantService(client driven.ChatClient) *AssistantService {
	return &AssistantService{client: client}
}

// Ask sends a trimmed, non-empty message and returns the reply.
// Every failure to get a reply wraps domain.ErrAssistantUnavailable.
func (s *AssistantService) Ask(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", domain.ErrEmptyMessage
	}
	if s.client == nil {
		return "", fmt.Errorf("%w: no chat client", domain.ErrAssistantUnavailable)
	}

	reply, err := s.client.Chat(ctx, message)
	if err != nil {
		logger.Debug("assistant: %v", err)
		return "", fmt.Errorf("%w: %w", domain.ErrAssistantUnavailable, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", domain.ErrAssistantUnavailable)
	}
	return reply, nil
}
