package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vijaysanthoshp/fintrack/internal/session"
)

// DefaultTimeout allows for the backend host's cold starts.
const DefaultTimeout = 30 * time.Second

// Client talks to the Finance Tracker REST backend. All methods return a
// *Error on failure; a 2xx response whose payload has an unexpected shape is
// not a failure and normalizes to empty data instead.
type Client struct {
	httpClient *http.Client
	session    *session.Session
	baseURL    string
}

// NewClient creates a client rooted at baseURL (the versioned REST root,
// e.g. "https://host/api/v1"). The session supplies the bearer token; an
// anonymous session is valid for the auth endpoints.
func NewClient(baseURL string, timeout time.Duration, sess *session.Session) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    sess,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Session returns the session this client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

// do issues a request and decodes the JSON response body. A nil body sends
// no payload. The decoded value is returned even for responses with no
// recognizable envelope; callers run it through the shape extractor.
func (c *Client) do(ctx context.Context, method, path string, body any) (any, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	return c.send(req)
}

// authorize attaches the bearer token when the session has one. Anonymous
// requests go out without an Authorization header.
func (c *Client) authorize(req *http.Request) {
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// send executes the request and maps failures to the error taxonomy. A 401
// invalidates the session; observers decide what the user sees next.
func (c *Client) send(req *http.Request) (any, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("Request failed before a response arrived",
			"method", req.Method,
			"url", req.URL.Path,
			"error", err)
		return nil, networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	decoded := decodeBody(resp.Body)

	slog.Debug("API response",
		"method", req.Method,
		"url", req.URL.Path,
		"status", resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decoded, nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Invalidate()
	}
	return nil, statusError(resp.StatusCode, serverMessage(decoded), fieldErrors(decoded))
}

func (c *Client) get(ctx context.Context, path string) (any, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) put(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

// decodeBody decodes the response JSON, tolerating empty and non-JSON
// bodies. There is no error path: an undecodable body is simply no data.
func decodeBody(r io.Reader) any {
	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil
	}
	return v
}

// serverMessage pulls the backend's human-readable message field out of an
// error response body.
func serverMessage(decoded any) string {
	obj, ok := decoded.(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := obj["message"].(string)
	return msg
}

// fieldErrors pulls 422 field-level validation messages. The backend sends
// either a list of messages or a single message per field.
func fieldErrors(decoded any) map[string][]string {
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := obj["errors"].(map[string]any)
	if !ok {
		return nil
	}
	fields := make(map[string][]string, len(raw))
	for name, v := range raw {
		switch msg := v.(type) {
		case string:
			fields[name] = []string{msg}
		case []any:
			for _, item := range msg {
				if s, ok := item.(string); ok {
					fields[name] = append(fields[name], s)
				}
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
