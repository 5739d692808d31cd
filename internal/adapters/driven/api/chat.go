package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
)

// Ensure Client implements the chat port.
var _ driven.ChatClient = (*Client)(nil)

// replyFields are the places the assistant's answer has been seen, in order.
var replyFields = []string{"response", "answer", "data", "message"}

// chatRequest is the POST /idea/chatbot request format.
type chatRequest struct {
	Message string `json:"message"`
}

// Chat sends a question to POST /idea/chatbot and returns the reply text.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for rate limiter: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/idea/chatbot", "", chatRequest{Message: message}, nil)
	if err != nil {
		return "", err
	}
	if resp.status == http.StatusTooManyRequests {
		return "", c.rateLimited(resp)
	}
	if !resp.ok() {
		return "", fmt.Errorf("chat: status %d: %s", resp.status, resp.message())
	}

	reply, ok := chatReply(resp.body)
	if !ok {
		return "", errors.New("chat: response carried no reply")
	}
	return reply, nil
}

// chatReply extracts the reply from a chat response body. A JSON object
// without any known field is returned as JSON text.
func chatReply(body []byte) (string, bool) {
	body = bytes.TrimSpace(body)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		text := string(body)
		return text, text != ""
	}
	if text, ok := fieldText(fields); ok {
		return text, true
	}
	return string(body), len(fields) > 0
}

func fieldText(fields map[string]json.RawMessage) (string, bool) {
	for _, key := range replyFields {
		if text, ok := replyText(fields[key]); ok {
			return text, true
		}
	}
	return "", false
}

// replyText renders one reply field. Strings are used as they are and
// objects are searched for a nested reply.
func replyText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		text = strings.TrimSpace(text)
		return text, text != ""
	}

	var nested map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nested); err == nil {
		if text, ok := fieldText(nested); ok {
			return text, true
		}
	}
	return string(raw), true
}
