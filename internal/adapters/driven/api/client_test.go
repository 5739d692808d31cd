package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// newTestClient starts a server with handler and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL + "/bizpilot-api/", Timeout: 5 * time.Second})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})

	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.client.Timeout)
}

func TestConfigFromSettings(t *testing.T) {
	cfg := ConfigFromSettings(domain.DefaultAppSettings().API)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 120*time.Second, cfg.Timeout)
	assert.Equal(t, 30, cfg.RequestsPerMinute)
}

func TestClient_Generate_Success(t *testing.T) {
	var got ideaRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bizpilot-api/idea", r.URL.Path)
		assert.Equal(t, "tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "req-9", r.Header.Get("X-Request-ID"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"statusCode":201,"message":"created","data":{
			"idea":{"title":"Tea Stall"},
			"feasibility":{"confidence_score":9,"profitable":true}}}`)
	})

	result, err := c.Generate(context.Background(), domain.GenerateRequest{
		Prompt:    "Tea stall",
		UserID:    "u1",
		Account:   domain.TierPro,
		Token:     "tok-123",
		RequestID: "req-9",
	})

	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.Equal(t, "created", result.Message)
	assert.Equal(t, "Tea Stall", result.Plan.Idea().Title)
	assert.Equal(t, json.Number("9"), result.Plan["feasibility"].(map[string]any)["confidence_score"])
	assert.Equal(t, ideaRequest{Prompt: "Tea stall", User: "u1", Account: "Pro"}, got)
}

func TestClient_Generate_DefaultsAccountToFree(t *testing.T) {
	var got ideaRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(t, w, http.StatusCreated, map[string]any{"statusCode": 201, "data": map[string]any{"idea": map[string]any{}}})
	})

	_, err := c.Generate(context.Background(), domain.GenerateRequest{Prompt: "p", UserID: "u"})

	require.NoError(t, err)
	assert.Equal(t, "Free", got.Account)
}

func TestClient_Generate_NonSuccessResults(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantPlan   bool
	}{
		{"server error envelope", 500, `{"statusCode":500,"message":"model overloaded"}`, 500, false},
		{"ok status without created", 200, `{"statusCode":200,"data":{"idea":{}}}`, 200, true},
		{"created with string data", 201, `{"statusCode":201,"data":"not an object"}`, 201, false},
		{"created with array data", 201, `{"statusCode":201,"data":[1,2]}`, 201, false},
		{"html error page", 502, `<html>Bad Gateway</html>`, 502, false},
		{"missing body status", 201, `{"data":{"idea":{}}}`, 201, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			result, err := c.Generate(context.Background(), domain.GenerateRequest{Prompt: "p"})

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, result.StatusCode)
			assert.Equal(t, tt.wantPlan, result.Plan != nil)
		})
	}
}

func TestClient_Generate_MalformedSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"statusCode":201,"data":{"idea":`)
	})

	_, err := c.Generate(context.Background(), domain.GenerateRequest{Prompt: "p"})

	assert.Error(t, err)
}

func TestClient_Generate_RateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "120")
		writeJSON(t, w, http.StatusTooManyRequests, map[string]any{"message": "slow down"})
	})

	_, err := c.Generate(context.Background(), domain.GenerateRequest{Prompt: "p"})

	require.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Contains(t, err.Error(), "slow down")
	assert.Contains(t, err.Error(), "retry in 2m0s")
	assert.Greater(t, c.limiter.BackoffRemaining(), 100*time.Second)
}

func TestClient_Generate_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()
	c := NewClient(Config{BaseURL: server.URL})

	_, err := c.Generate(context.Background(), domain.GenerateRequest{Prompt: "p"})

	assert.Error(t, err)
}

func TestClient_Generate_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusCreated, map[string]any{"statusCode": 201})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Generate(ctx, domain.GenerateRequest{Prompt: "p"})

	assert.ErrorIs(t, err, context.Canceled)
}
