package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string) string {
	return `{"choices":[{"message":{"content":` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestClient_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful completion is trimmed and returned", func(t *testing.T) {
		var gotReq chatRequest
		var gotAuth string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/chat/completions", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionBody("  🌱 Try a meatless Monday.  ")))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-model")

		answer, err := client.Complete(ctx, "sk-test", "system prompt", "user prompt", 100)
		require.NoError(t, err)
		assert.Equal(t, "🌱 Try a meatless Monday.", answer)

		assert.Equal(t, "Bearer sk-test", gotAuth)
		assert.Equal(t, "test-model", gotReq.Model)
		assert.Equal(t, 100, gotReq.MaxTokens)
		assert.InDelta(t, 0.7, gotReq.Temperature, 1e-9)
		require.Len(t, gotReq.Messages, 2)
		assert.Equal(t, "system", gotReq.Messages[0].Role)
		assert.Equal(t, "system prompt", gotReq.Messages[0].Content)
		assert.Equal(t, "user", gotReq.Messages[1].Role)
		assert.Equal(t, "user prompt", gotReq.Messages[1].Content)
	})

	t.Run("Non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "").Complete(ctx, "sk-test", "s", "u", 50)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("Malformed payload is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "").Complete(ctx, "sk-test", "s", "u", 50)
		assert.Error(t, err)
	})

	t.Run("Empty choices map to ErrEmptyCompletion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "").Complete(ctx, "sk-test", "s", "u", 50)
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})

	t.Run("Whitespace-only completion maps to ErrEmptyCompletion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody("   ")))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "").Complete(ctx, "sk-test", "s", "u", 50)
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})

	t.Run("Cancelled context aborts the request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody("unused")))
		}))
		defer server.Close()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewClient(server.URL, "").Complete(cancelled, "sk-test", "s", "u", 50)
		assert.Error(t, err)
	})
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", "")
	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.Equal(t, defaultModel, client.model)

	client = NewClient("http://localhost:9999/", "custom")
	assert.Equal(t, "http://localhost:9999", client.baseURL)
	assert.Equal(t, "custom", client.model)
}
