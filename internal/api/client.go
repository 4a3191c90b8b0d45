package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Session carries the connection details for one authenticated operator
// session. Token is empty for unauthenticated calls (login, register).
type Session struct {
	BaseURL string
	Token   string
}

// Client handles communication with the CredFlow backend API.
type Client struct {
	session    Session
	httpClient *http.Client
	retryCount int

	// onUnauthorized is invoked once when the backend rejects the session
	// token, so callers can evict cached credentials.
	onUnauthorized func()
}

// NewClient creates a backend client for the given session.
func NewClient(session Session) *Client {
	return &Client{
		session:    session,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retryCount: 2,
	}
}

// SetRetryCount sets the number of retry attempts for failed requests.
func (c *Client) SetRetryCount(count int) {
	c.retryCount = count
}

// OnUnauthorized registers a callback fired when a request comes back 401.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// APIError is a non-2xx response from the backend. Message prefers the
// backend's own error body over the raw HTTP status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is an expired or invalid session.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// Page is the backend's pagination envelope for log and history listings.
type Page[T any] struct {
	Content    []T  `json:"content"`
	TotalPages int  `json:"totalPages"`
	Number     int  `json:"number"`
	TotalItems int  `json:"totalElements"`
	Last       bool `json:"last"`
}

// do executes one API call, decoding the response into out when out is
// non-nil. The request is rebuilt from the marshaled payload on every retry
// attempt so the body can be resent.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	endpoint := strings.TrimSuffix(c.session.BaseURL, "/") + path

	var lastErr error
	for attempt := 0; attempt <= c.retryCount; attempt++ {
		if attempt > 0 {
			waitTime := time.Duration(attempt) * time.Second
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return fmt.Errorf("request creation failed: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.session.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.session.Token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.retryCount {
				continue
			}
			return lastErr
		}

		if resp.StatusCode == 502 || resp.StatusCode == 503 || resp.StatusCode == 504 {
			resp.Body.Close()
			lastErr = &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
			if attempt < c.retryCount {
				continue
			}
			return lastErr
		}

		return c.decodeResponse(resp, out)
	}
	return lastErr
}

func (c *Client) decodeResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp, respBody)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func errorMessage(resp *http.Response, body []byte) string {
	var errorResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &errorResp) == nil {
		if errorResp.Message != "" {
			return errorResp.Message
		}
		if errorResp.Error != "" {
			return errorResp.Error
		}
	}
	if len(body) > 0 {
		return string(body)
	}
	return resp.Status
}

// get is a convenience wrapper for query-string endpoints.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// MessageResponse is the backend's {"message": ...} acknowledgement shape.
type MessageResponse struct {
	Message string `json:"message"`
}
