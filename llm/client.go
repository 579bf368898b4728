// Package llm provides a provider-agnostic chat-completion client for the
// trip-planning flow. Providers share one request/response contract and are
// selected by configuration; see the providers subpackage for the closed set.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxResponseSize limits the completion response body to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// defaultTimeout bounds a single completion call. The upstream UI has no
// timeout of its own, so a hanging provider would stall the run forever.
const defaultTimeout = 60 * time.Second

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`    // "system", "user", or "assistant"
	Content string `json:"content"` // Message content
}

// Request defines a completion request.
type Request struct {
	// Messages is the chat history to send to the model.
	Messages []Message

	// Temperature controls randomness. nil uses the endpoint default.
	Temperature *float64

	// JSONObject requests that the response body be parseable as a JSON object.
	JSONObject bool
}

// Response contains the completion result.
type Response struct {
	// Content is the generated text of the first choice.
	Content string

	// Model is the model that produced the response.
	Model string

	// TokensUsed is the total tokens consumed, when reported.
	TokensUsed int

	// FinishReason indicates why generation stopped.
	FinishReason string
}

// Client issues single-shot completion requests against a resolved endpoint.
// There is no automatic retry: failures are classified and returned for the
// caller to surface in the conversation.
type Client struct {
	endpoint   *Endpoint
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient creates a client bound to a resolved endpoint.
func NewClient(endpoint *Endpoint, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Endpoint returns the endpoint this client is bound to.
func (c *Client) Endpoint() *Endpoint {
	return c.endpoint
}

// Complete sends a completion request and returns the first choice.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	provider := c.endpoint.Provider
	started := time.Now()

	resp, err := c.doRequest(ctx, req)
	observeRequest(provider.Name(), err, time.Since(started))

	if err != nil {
		c.logger.Warn("completion request failed",
			"provider", provider.Name(),
			"model", c.endpoint.Model,
			"kind", KindOf(err),
			"error", err)
		return nil, err
	}

	c.logger.Debug("completion request succeeded",
		"provider", provider.Name(),
		"model", c.endpoint.Model,
		"tokens", resp.TokensUsed,
		"duration", time.Since(started))

	return resp, nil
}

// doRequest executes a single HTTP request against the endpoint.
func (c *Client) doRequest(ctx context.Context, req Request) (*Response, error) {
	provider := c.endpoint.Provider

	url := provider.BuildURL(c.endpoint.BaseURL)

	body, err := provider.BuildRequestBody(c.endpoint.Model, req.Messages, req.Temperature, req.JSONObject)
	if err != nil {
		return nil, &APIError{Kind: KindUnknown, Provider: provider.Name(), err: fmt.Errorf("build request body: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Kind: KindUnknown, Provider: provider.Name(), err: fmt.Errorf("create HTTP request: %w", err)}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	provider.SetHeaders(httpReq)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &APIError{Kind: KindUpstreamError, Provider: provider.Name(), err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, &APIError{Kind: KindUpstreamError, Provider: provider.Name(), err: fmt.Errorf("read response body: %w", err)}
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, newHTTPError(provider.Name(), httpResp.StatusCode, respBody)
	}

	resp, err := provider.ParseResponse(respBody)
	if err != nil {
		return nil, &APIError{Kind: KindUnknown, Provider: provider.Name(), err: err}
	}
	return resp, nil
}

// newHTTPError classifies an HTTP error response into the error taxonomy.
func newHTTPError(provider string, statusCode int, body []byte) error {
	bodyStr := string(body)
	if len(bodyStr) > 200 {
		bodyStr = bodyStr[:200] + "..."
	}

	return &APIError{
		Kind:       ClassifyStatus(statusCode),
		Provider:   provider,
		StatusCode: statusCode,
		Body:       bodyStr,
	}
}
