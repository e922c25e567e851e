package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// Provider is a fake OpenAI-compatible chat completions endpoint.
type Provider struct {
	URL   string
	calls atomic.Int32
}

// Calls reports how many completion requests the provider has served.
func (p *Provider) Calls() int {
	return int(p.calls.Load())
}

// NewProvider starts a fake endpoint that passes the payload of each request
// (the text after the prompt's first blank line) through translate. A
// non-empty error string is returned to the client as a 500.
func NewProvider(t testing.TB, translate func(payload string) (string, string)) *Provider {
	t.Helper()

	p := &Provider{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.calls.Add(1)
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		content := req.Messages[len(req.Messages)-1].Content
		payload := content
		if _, rest, ok := strings.Cut(content, "\n\n"); ok {
			payload = rest
		}

		reply, failure := translate(payload)
		w.Header().Set("Content-Type", "application/json")
		if failure != "" {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": failure, "type": "server_error"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-fake",
			"object": "chat.completion",
			"choices": []any{map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
		})
	}))
	t.Cleanup(server.Close)
	p.URL = server.URL
	return p
}

// Uppercase is a translate func that upper-cases every frame.
func Uppercase(payload string) (string, string) {
	return strings.ToUpper(payload), ""
}
