package translator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingosub/internal/services"
	"lingosub/internal/translation"
)

func writeCompletion(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	payload := map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"choices": []any{
			map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"message": message, "type": "test_error"},
	})
}

func newTestClient(serverURL string, opts ...Option) *Client {
	opts = append([]Option{WithSleeper(func(time.Duration) {})}, opts...)
	return NewClient(Config{APIKey: "test-key", BaseURL: serverURL}, opts...)
}

var testRequest = translation.Request{TargetLanguage: "fr", Model: "demo-model", Temperature: 0.5, MaxTokens: 300}

func TestTranslateSendsPromptAndParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "demo-model", req.Model)
		assert.Equal(t, 300, req.MaxTokens)
		assert.InDelta(t, 0.5, req.Temperature, 1e-6)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
		assert.Contains(t, req.Messages[1].Content, "French")
		assert.True(t, strings.HasSuffix(req.Messages[1].Content, "Hello\n\nGoodbye"))

		writeCompletion(t, w, "Bonjour\n\nAu revoir")
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Translate(context.Background(), "Hello\n\nGoodbye", testRequest)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour\n\nAu revoir", out)
}

func TestTranslateMissingCredential(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "   ", BaseURL: server.URL})
	_, err := client.Translate(context.Background(), "Hello", testRequest)
	require.ErrorIs(t, err, ErrCredentialMissing)
	assert.ErrorIs(t, err, services.ErrConfiguration)
	assert.Equal(t, 3, services.ExitCode(err))
	assert.Zero(t, calls.Load(), "no network I/O without a credential")
}

func TestTranslateRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeAPIError(w, http.StatusTooManyRequests, "slow down")
			return
		}
		writeCompletion(t, w, "Bonjour")
	}))
	defer server.Close()

	var delays []time.Duration
	client := newTestClient(server.URL,
		WithRetryBackoff(10*time.Millisecond, 15*time.Millisecond),
		WithSleeper(func(d time.Duration) { delays = append(delays, d) }),
	)
	out, err := client.Translate(context.Background(), "Hello", testRequest)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", out)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 15 * time.Millisecond}, delays)
}

func TestTranslateGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Translate(context.Background(), "Hello", testRequest)
	require.ErrorIs(t, err, ErrNonSuccessStatus)
	assert.ErrorIs(t, err, services.ErrTransient)
	assert.ErrorIs(t, err, services.ErrExternalTool)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.Equal(t, int32(3), calls.Load())

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusServiceUnavailable, svcErr.StatusCode)
}

func TestTranslateSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeAPIError(w, http.StatusInternalServerError, "boom")
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, WithRetryMaxAttempts(1)).Translate(context.Background(), "Hello", testRequest)
	require.ErrorIs(t, err, ErrNonSuccessStatus)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTranslateDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeAPIError(w, http.StatusUnauthorized, "invalid api key")
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Translate(context.Background(), "Hello", testRequest)
	require.ErrorIs(t, err, ErrNonSuccessStatus)
	assert.False(t, errors.Is(err, services.ErrTransient))
	assert.Equal(t, int32(1), calls.Load())

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
	assert.Equal(t, KindNonSuccessStatus, svcErr.Kind)

	var apiErr *openai.APIError
	require.True(t, errors.As(err, &apiErr), "provider error stays reachable")
	assert.Equal(t, "invalid api key", apiErr.Message)
}

func TestTranslateEmptyChoices(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Translate(context.Background(), "Hello", testRequest)
	require.ErrorIs(t, err, ErrUnexpectedResponseShape)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTranslateEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(t, w, "   ")
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Translate(context.Background(), "Hello", testRequest)
	require.ErrorIs(t, err, ErrUnexpectedResponseShape)
	assert.Contains(t, err.Error(), "finish_reason")
}

func TestTranslateTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).Translate(context.Background(), "Hello", testRequest)
	require.ErrorIs(t, err, ErrTransportFailure)
	assert.ErrorIs(t, err, services.ErrExternalTool)
}

func TestTranslateHonoursCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusBadGateway, "bad gateway")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	client := newTestClient(server.URL, WithSleeper(func(time.Duration) { cancel() }))
	_, err := client.Translate(ctx, "Hello", testRequest)
	require.ErrorIs(t, err, context.Canceled)
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "demo-model", req.Model)
		writeCompletion(t, w, "OK")
	}))
	defer server.Close()

	require.NoError(t, newTestClient(server.URL).HealthCheck(context.Background(), "demo-model"))
}

func TestHealthCheckFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusUnauthorized, "unauthorized")
	}))
	defer server.Close()

	err := newTestClient(server.URL).HealthCheck(context.Background(), "demo-model")
	require.ErrorIs(t, err, ErrNonSuccessStatus)
}

func TestBackoffDelay(t *testing.T) {
	client := NewClient(Config{}, WithRetryBackoff(time.Second, 5*time.Second))
	assert.Equal(t, time.Second, client.backoffDelay(1))
	assert.Equal(t, 2*time.Second, client.backoffDelay(2))
	assert.Equal(t, 4*time.Second, client.backoffDelay(3))
	assert.Equal(t, 5*time.Second, client.backoffDelay(4))
	assert.Equal(t, 5*time.Second, client.backoffDelay(10))

	noDelay := NewClient(Config{}, WithRetryBackoff(0, 0))
	assert.Zero(t, noDelay.backoffDelay(3))
}

func TestUserPromptUsesDisplayName(t *testing.T) {
	prompt := userPrompt("de", "Hallo")
	assert.Contains(t, prompt, "into German")
	assert.True(t, strings.HasSuffix(prompt, "\n\nHallo"))
}

func TestServiceErrorMessage(t *testing.T) {
	err := &ServiceError{Kind: KindNonSuccessStatus, Op: "translate", StatusCode: 429, Err: errors.New("slow down")}
	assert.Equal(t, "translate: non-success status (http 429): slow down", err.Error())
}
