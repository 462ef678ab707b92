package aigateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := New(srv.URL, "test-key", "test-model", WithHTTPClient(srv.Client()))
	return srv, client
}

func TestComplete_ReturnsContent(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"bonjour"}}]}`))
	})

	got, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "salut"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "bonjour" {
		t.Errorf("expected 'bonjour', got %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody.Model != "test-model" {
		t.Errorf("expected model 'test-model', got %q", gotBody.Model)
	}
}

func TestComplete_RateLimited(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestComplete_PaymentRequired(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
	if !errors.Is(err, ErrPaymentRequired) {
		t.Errorf("expected ErrPaymentRequired, got %v", err)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestComplete_NotConfigured(t *testing.T) {
	client := New("http://localhost:0", "", "model")
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCompleteJSON_StripsFences(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "```json\n{\"name\":\"amoxicilline\"}\n```"}},
			},
		}
		json.NewEncoder(w).Encode(body)
	})

	var out struct {
		Name string `json:"name"`
	}
	err := client.CompleteJSON(context.Background(), []Message{{Role: "user", Content: "x"}}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "amoxicilline" {
		t.Errorf("expected 'amoxicilline', got %q", out.Name)
	}
}

func TestCallTool_ReturnsArguments(t *testing.T) {
	var gotReq chatRequest
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices":[{"message":{"tool_calls":[{"function":{"name":"report","arguments":"{\"severity\":\"low\"}"}}]}}]}`))
	})

	tool := NewTool("report", "structured report", json.RawMessage(`{"type":"object"}`))
	args, err := client.CallTool(context.Background(), []Message{{Role: "user", Content: "x"}}, tool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed map[string]string
	if err := json.Unmarshal(args, &parsed); err != nil {
		t.Fatalf("arguments are not valid JSON: %v", err)
	}
	if parsed["severity"] != "low" {
		t.Errorf("expected severity low, got %q", parsed["severity"])
	}
	if len(gotReq.Tools) != 1 || gotReq.Tools[0].Function.Name != "report" {
		t.Error("expected the tool to be forwarded in the request")
	}
	if gotReq.ToolChoice == nil {
		t.Error("expected tool_choice to be set")
	}
}

func TestCallTool_NoToolCall(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"sorry"}}]}`))
	})

	tool := NewTool("report", "", json.RawMessage(`{}`))
	_, err := client.CallTool(context.Background(), []Message{{Role: "user", Content: "x"}}, tool)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestChat_RetriesOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	t.Cleanup(srv.Close)
	client := New(srv.URL, "test-key", "test-model", WithRetries(2, time.Millisecond))

	got, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("expected 'ok', got %q", got)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestChat_ExhaustsRetryBudget(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	client := New(srv.URL, "test-key", "test-model", WithRetries(1, time.Millisecond))

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestChat_DoesNotRetryRateLimit(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)
	client := New(srv.URL, "test-key", "test-model", WithRetries(2, time.Millisecond))

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
