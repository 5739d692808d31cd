package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

func TestClient_Chat_SendsMessage(t *testing.T) {
	var (
		got    chatRequest
		path   string
		method string
		auth   string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path, method, auth = r.URL.Path, r.Method, r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, http.StatusOK, map[string]any{"response": "Start with a UPI QR code."})
	})

	reply, err := c.Chat(context.Background(), "How do I take payments at a tea stall?")

	require.NoError(t, err)
	assert.Equal(t, "Start with a UPI QR code.", reply)
	assert.Equal(t, "/bizpilot-api/idea/chatbot", path)
	assert.Equal(t, http.MethodPost, method)
	assert.Empty(t, auth)
	assert.Equal(t, "How do I take payments at a tea stall?", got.Message)
}

func TestClient_Chat_ReplyFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"response", `{"response": "r", "answer": "a"}`, "r"},
		{"answer", `{"answer": "a", "message": "m"}`, "a"},
		{"data string", `{"statusCode": 200, "message": "Success", "data": "d"}`, "d"},
		{"nested data", `{"statusCode": 200, "data": {"answer": "nested"}}`, "nested"},
		{"message", `{"message": "m"}`, "m"},
		{"empty fields skipped", `{"response": "", "data": null, "message": "m"}`, "m"},
		{"unknown shape", `{"reply":"x"}`, `{"reply":"x"}`},
		{"plain text", `Hello there`, "Hello there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			})

			reply, err := c.Chat(context.Background(), "hi")

			require.NoError(t, err)
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestClient_Chat_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
		},
		{
			name: "empty object",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{}`)
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(t, w, http.StatusTooManyRequests, map[string]any{"message": "slow down"})
			},
			wantErr: domain.ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			reply, err := c.Chat(context.Background(), "hi")

			require.Error(t, err)
			assert.Empty(t, reply)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
