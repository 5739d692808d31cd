package driving

import "context"

// AssistantService answers free-form business questions. It is independent
// of the plan session and never changes it.
type AssistantService interface {
	// Ask returns the assistant's reply to message.
	Ask(ctx context.Context, message string) (string, error)
}
