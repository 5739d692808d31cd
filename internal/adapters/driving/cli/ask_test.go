package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

func TestAskCmd_SingleQuestion(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "ask", "How do I keep", "regular customers?")

	require.NoError(t, err)
	assert.Contains(t, out, "Offer a monthly tea pass to regular commuters.")
	assert.Equal(t, []string{"How do I keep regular customers?"}, env.chat.questions)
}

func TestAskCmd_DoesNotNeedLogin(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "ask", "hello")

	require.NoError(t, err)
	assert.Len(t, env.chat.questions, 1)
	assert.False(t, authService.IsAuthenticated(t.Context()))
}

func TestAskCmd_AssistantDown(t *testing.T) {
	env := setupTestServices(t)
	env.chat.err = errors.New("connection refused")

	_, err := execute(t, "ask", "hello")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAssistantUnavailable)
	assert.Equal(t, "Sorry, I'm having trouble connecting right now. Please try again.", err.Error())
}

func TestAskCmd_BlankQuestion(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "ask", "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Empty(t, env.chat.questions)
}

func TestAskCmd_Conversation(t *testing.T) {
	env := setupTestServices(t)

	out, err := executeWithInput(t, "Where should I set up?\n\nWhat about pricing?\nexit\nnever sent\n", "ask")

	require.NoError(t, err)
	assert.Contains(t, out, "BizPilot AI")
	assert.Equal(t, []string{"Where should I set up?", "What about pricing?"}, env.chat.questions)
	assert.Contains(t, out, "BizPilot: Offer a monthly tea pass")
}

func TestAskCmd_ConversationEndsWithInput(t *testing.T) {
	env := setupTestServices(t)
	env.chat.err = errors.New("timeout")

	out, err := executeWithInput(t, "first\nsecond", "ask")

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, env.chat.questions)
	assert.Contains(t, out, "trouble connecting")
}

func TestAskCmd_RequiresService(t *testing.T) {
	SetServices(Services{})

	_, err := execute(t, "ask", "hello")

	assert.ErrorIs(t, err, errNotConfigured)
}
