// Package llm is a minimal client for OpenAI-compatible chat completion
// APIs. The default endpoint is Groq's, which speaks the same wire format.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"
)

// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel matches the model the service was built against.
const DefaultModel = "llama-3.3-70b-versatile"

const (
	requestTimeout = 120 * time.Second
	maxRetries     = 2
	retryBackoff   = 2 * time.Second
)

// ChatClient is the interface the execution engine depends on. The real
// Client talks HTTP; tests substitute a scripted fake.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used in tests and for
// alternative providers that speak the same protocol).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient creates a Client with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm: provider returned %d: %s", e.StatusCode, e.Body)
}

// retryable reports whether the request is worth repeating: rate limits
// and server-side failures are, request errors (4xx) are not.
func (e *APIError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// CreateChatCompletion sends a chat completion request, retrying a bounded
// number of times on rate limits, server errors and network failures.
func (c *Client) CreateChatCompletion(ctx context.Context, reqBody ChatCompletionRequest) (*ChatCompletionResponse, error) {
	var resp *ChatCompletionResponse

	backoff := retry.WithMaxRetries(maxRetries, retry.NewConstant(retryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var attemptErr error
		resp, attemptErr = c.doRequest(ctx, reqBody)
		if attemptErr == nil {
			return nil
		}
		var apiErr *APIError
		if errors.As(attemptErr, &apiErr) {
			if apiErr.retryable() {
				return retry.RetryableError(attemptErr)
			}
			return attemptErr
		}
		var urlErr *url.Error
		if errors.As(attemptErr, &urlErr) {
			return retry.RetryableError(attemptErr)
		}
		// Anything else (bad request encoding, undecodable response) will
		// not improve on a second attempt.
		return attemptErr
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) doRequest(ctx context.Context, reqBody ChatCompletionRequest) (*ChatCompletionResponse, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(reqBody); err != nil {
		return nil, fmt.Errorf("llm: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", buf)
	if err != nil {
		return nil, fmt.Errorf("llm: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm: request failed: %w", err)
	}
	defer res.Body.Close() //nolint:errcheck

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return nil, &APIError{StatusCode: res.StatusCode, Body: string(b)}
	}

	var cr ChatCompletionResponse
	if err := json.NewDecoder(res.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("llm: decoding response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("llm: response contained no choices")
	}
	return &cr, nil
}
