package driven

import "context"

// ChatClient sends a question to the remote business assistant.
type ChatClient interface {
	// Chat returns the assistant's reply to message.
	Chat(ctx context.Context, message string) (string, error)
}
