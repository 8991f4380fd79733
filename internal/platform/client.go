// Package platform is the HTTP client for the Warden admin API.
//
// Every response is decoded at the boundary into a typed result: the API
// usually wraps payloads in a {succeeded, data, errors} envelope, but some
// endpoints return the payload bare. decodeResponse accepts both shapes so
// callers never inspect response bodies ad hoc.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Client is the Warden platform API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tenant     string

	mu         sync.Mutex
	token      string
	nextSub    int
	expirySubs map[int]func()
}

// NewClient creates a platform client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		expirySubs: make(map[int]func()),
	}
}

// SetToken sets the bearer token used for authenticated requests.
// An empty token clears authentication.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// OnTokenExpired subscribes to the out-of-band token-expired signal, raised
// whenever an authenticated request is rejected for auth reasons. The returned
// function cancels the subscription.
func (c *Client) OnTokenExpired(fn func()) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.expirySubs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.expirySubs, id)
	}
}

func (c *Client) notifyTokenExpired() {
	c.mu.Lock()
	subs := make([]func(), 0, len(c.expirySubs))
	for _, fn := range c.expirySubs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// doRequest performs an HTTP request with authentication and tenant scoping.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.Tenant != "" {
		req.Header.Set("X-Tenant", c.Tenant)
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}

	// An authenticated request rejected for auth reasons means the token is
	// no longer good. Raise the signal before the caller sees the error.
	if token != "" && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		c.notifyTokenExpired()
	}

	return resp, nil
}

// APIError is a non-success response from the platform.
type APIError struct {
	StatusCode int
	Messages   []string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsUnauthorized reports whether the error is a credential rejection.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

// envelope is the API's standard result wrapper. Succeeded is a pointer so an
// absent field can be told apart from an explicit false.
type envelope struct {
	Succeeded *bool           `json:"succeeded"`
	Data      json.RawMessage `json:"data"`
	Errors    []string        `json:"errors"`
	Messages  []string        `json:"messages"`
}

// decodeResponse decodes a response body into target, unwrapping the result
// envelope when present and accepting a bare payload when it is not.
func decodeResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	var env envelope
	enveloped := json.Unmarshal(body, &env) == nil && (env.Succeeded != nil || env.Data != nil)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if enveloped {
			apiErr.Messages = append(env.Errors, env.Messages...)
		}
		if len(apiErr.Messages) == 0 && len(body) > 0 {
			apiErr.Messages = []string{string(body)}
		}
		return apiErr
	}

	if enveloped && env.Succeeded != nil && !*env.Succeeded {
		return &APIError{
			StatusCode: resp.StatusCode,
			Messages:   append(env.Errors, env.Messages...),
		}
	}

	if target == nil {
		return nil
	}

	payload := body
	if enveloped && env.Data != nil {
		payload = env.Data
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
