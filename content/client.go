// Package content accesses the hosted data service backing the catalog
// pages: destinations, guides, community posts, team, site features, and
// per-user profile records. It is a thin wrapper over the service's REST
// table-query API; no query logic lives on our side beyond building filter
// parameters.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxBodySize limits data service response bodies.
const maxBodySize = 8 * 1024 * 1024 // 8MB

// RequestError represents a failed data service request.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("data service error (status %d): %s", e.StatusCode, e.Body)
}

// Filter is one column condition, e.g. {Column: "recommended", Op: "eq", Value: "true"}.
type Filter struct {
	Column string
	Op     string
	Value  string
}

// Order describes result ordering.
type Order struct {
	Column    string
	Ascending bool
}

// Query holds the options for a table read.
type Query struct {
	Filters []Filter
	// Or is a raw or-group, e.g. `(name.ilike.*tokyo*,location.ilike.*tokyo*)`.
	Or    string
	Order *Order
	Limit int
}

// OrSubstring builds an or-group matching the query substring against the
// given columns, case-insensitively.
func OrSubstring(query string, columns ...string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s.ilike.*%s*", col, query)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Client talks to the hosted data service.
type Client struct {
	baseURL    string
	apiKey     string
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

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient creates a data service client.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// tableURL builds the request URL for a table with query parameters.
func (c *Client) tableURL(table string, q Query) string {
	params := url.Values{}
	params.Set("select", "*")
	for _, f := range q.Filters {
		params.Set(f.Column, f.Op+"."+f.Value)
	}
	if q.Or != "" {
		params.Set("or", q.Or)
	}
	if q.Order != nil {
		dir := "desc"
		if q.Order.Ascending {
			dir = "asc"
		}
		params.Set("order", q.Order.Column+"."+dir)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return c.baseURL + "/rest/v1/" + table + "?" + params.Encode()
}

// Select reads rows from a table into dest, which must be a pointer to a
// slice of row structs.
func (c *Client) Select(ctx context.Context, table string, q Query, dest any) error {
	return c.do(ctx, http.MethodGet, c.tableURL(table, q), nil, dest, nil)
}

// SelectSingle reads exactly one row into dest, failing when zero or more
// than one row matches.
func (c *Client) SelectSingle(ctx context.Context, table string, q Query, dest any) error {
	headers := map[string]string{"Accept": "application/vnd.pgrst.object+json"}
	return c.do(ctx, http.MethodGet, c.tableURL(table, q), nil, dest, headers)
}

// Insert writes a new row and decodes the stored representation into dest
// when dest is non-nil.
func (c *Client) Insert(ctx context.Context, table string, row any, dest any) error {
	headers := map[string]string{"Prefer": "return=representation"}
	if dest != nil {
		headers["Accept"] = "application/vnd.pgrst.object+json"
	}
	return c.do(ctx, http.MethodPost, c.tableURL(table, Query{}), row, dest, headers)
}

// Update patches rows matching the query filters and decodes the updated
// representation into dest when dest is non-nil.
func (c *Client) Update(ctx context.Context, table string, q Query, patch any, dest any) error {
	headers := map[string]string{"Prefer": "return=representation"}
	if dest != nil {
		headers["Accept"] = "application/vnd.pgrst.object+json"
	}
	return c.do(ctx, http.MethodPatch, c.tableURL(table, q), patch, dest, headers)
}

// Delete removes rows matching the query filters.
func (c *Client) Delete(ctx context.Context, table string, q Query) error {
	return c.do(ctx, http.MethodDelete, c.tableURL(table, q), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body, dest any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("data service request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyStr := string(respBody)
		if len(bodyStr) > 200 {
			bodyStr = bodyStr[:200] + "..."
		}
		c.logger.Warn("data service request failed", "method", method, "status", resp.StatusCode)
		return &RequestError{StatusCode: resp.StatusCode, Body: bodyStr}
	}

	if dest == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
