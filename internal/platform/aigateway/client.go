// Package aigateway provides a thin client for the hosted AI gateway used by
// the medication and travel lookups. The gateway speaks an OpenAI-compatible
// chat completions dialect with optional forced tool calls.
package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Sentinel errors surfaced to handlers so they can map gateway failures onto
// stable HTTP statuses.
var (
	// ErrRateLimited means the gateway returned 429.
	ErrRateLimited = errors.New("aigateway: rate limited")
	// ErrPaymentRequired means the gateway returned 402 (credits exhausted).
	ErrPaymentRequired = errors.New("aigateway: payment required")
	// ErrNotConfigured means no API key is set; callers should answer 503.
	ErrNotConfigured = errors.New("aigateway: no API key configured")
	// ErrEmptyResponse means the gateway answered 200 with no usable content.
	ErrEmptyResponse = errors.New("aigateway: empty response")
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FunctionDef describes a callable function exposed to the model.
type FunctionDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
}

// Tool wraps a function definition in the wire envelope the gateway expects.
type Tool struct {
	Type     string      `json:"type"`
	Function FunctionDef `json:"function"`
}

// NewTool builds a function tool from a name, description and JSON schema.
func NewTool(name, description string, parameters json.RawMessage) Tool {
	return Tool{
		Type: "function",
		Function: FunctionDef{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

type chatRequest struct {
	Model      string      `json:"model"`
	Messages   []Message   `json:"messages"`
	Tools      []Tool      `json:"tools,omitempty"`
	ToolChoice interface{} `json:"tool_choice,omitempty"`
}

type toolCall struct {
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string     `json:"content"`
			ToolCalls []toolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithLogger attaches a logger for request-level diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// WithRetries sets the retry budget and the base backoff delay for transient
// failures (transport errors and 5xx answers).
func WithRetries(n int, backoff time.Duration) Option {
	return func(cl *Client) {
		cl.maxRetries = n
		cl.backoff = backoff
	}
}

// Client calls the AI gateway chat completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
	maxRetries int
	backoff    time.Duration
}

// New creates a gateway client. baseURL is the gateway root (without the
// /v1/chat/completions path), model is the default model identifier.
func New(baseURL, apiKey, model string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger:     zerolog.Nop(),
		maxRetries: 2,
		backoff:    500 * time.Millisecond,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Complete sends the messages and returns the plain text answer.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	resp, err := c.chat(ctx, chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteJSON sends the messages, strips any markdown code fences from the
// answer, and unmarshals the remaining JSON into out.
func (c *Client) CompleteJSON(ctx context.Context, messages []Message, out interface{}) error {
	text, err := c.Complete(ctx, messages)
	if err != nil {
		return err
	}
	cleaned := StripFences(text)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("aigateway: decode answer: %w", err)
	}
	return nil
}

// CallTool forces the model to call the given tool and returns the raw JSON
// arguments of the first tool call.
func (c *Client) CallTool(ctx context.Context, messages []Message, tool Tool) (json.RawMessage, error) {
	req := chatRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    []Tool{tool},
		ToolChoice: map[string]interface{}{
			"type":     "function",
			"function": map[string]string{"name": tool.Function.Name},
		},
	}
	resp, err := c.chat(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, ErrEmptyResponse
	}
	args := resp.Choices[0].Message.ToolCalls[0].Function.Arguments
	if args == "" {
		return nil, ErrEmptyResponse
	}
	return json.RawMessage(args), nil
}

func (c *Client) chat(ctx context.Context, reqBody chatRequest) (*chatResponse, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("aigateway: encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug().Int("attempt", attempt).Msg("retrying gateway call")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}

		resp, retryable, err := c.doChat(ctx, reqBody.Model, payload)
		if err == nil {
			return resp, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// doChat performs a single attempt. The second return value reports whether
// the failure is transient (transport error or 5xx).
func (c *Client) doChat(ctx context.Context, model string, payload []byte) (*chatResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("aigateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("aigateway: request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Str("model", model).
		Msg("gateway call")

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, false, ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, false, ErrPaymentRequired
	case resp.StatusCode >= 500:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, true, fmt.Errorf("aigateway: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		// Keep a short slice of the body for the error message.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, false, fmt.Errorf("aigateway: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, false, fmt.Errorf("aigateway: decode response: %w", err)
	}
	return &parsed, false, nil
}

// StripFences removes a surrounding markdown code fence (``` or ```json) from
// a model answer, if present.
func StripFences(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}
