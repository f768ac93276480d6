// Package remote implements the adapter for the advertising platform's
// Graph-style HTTP API. The client is stateless: every call receives the
// access token explicitly and translates between local shapes and the
// platform's form-encoded wire format.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"adbridge/internal/config/configs"
	"adbridge/internal/errs"
)

// Client talks to the remote marketing API. Calls never retry; latency is
// bounded only by the configured HTTP client timeout.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

// New builds a client from configuration. The base URL already includes the
// API version segment.
func New(cfg configs.Remote, logger *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL.String(), "/") + "/" + cfg.Version,
		logger:  logger,
	}
}

// errEnvelope is the platform's error body: {"error":{"message":...,"code":...}}.
type errEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// wrapError converts a non-2xx response into a RemoteError, preserving the
// platform's own message when the body carries one.
func wrapError(status int, body []byte) error {
	var env errEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return &errs.RemoteError{Message: env.Error.Message, Code: env.Error.Code}
	}
	return &errs.RemoteError{Message: "request failed with status " + http.StatusText(status), Code: status}
}

// postForm sends a form-encoded POST and returns the raw response body.
func (c *Client) postForm(ctx context.Context, path string, token string, p params) ([]byte, error) {
	v := p.values()
	v.Set("access_token", token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(v.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// get sends a GET with the provided query parameters.
func (c *Client) get(ctx context.Context, path string, token string, q url.Values) ([]byte, error) {
	if q == nil {
		q = url.Values{}
	}
	q.Set("access_token", token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// delete sends a DELETE to the object path.
func (c *Client) delete(ctx context.Context, path string, token string) error {
	q := url.Values{}
	q.Set("access_token", token)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errs.RemoteError{Message: "marketing API unreachable", Cause: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.RemoteError{Message: "reading marketing API response", Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("marketing API error",
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode))
		return nil, wrapError(resp.StatusCode, body)
	}
	return body, nil
}

// decode unmarshals a response body, wrapping parse failures uniformly.
func decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &errs.RemoteError{Message: "malformed marketing API response", Cause: err}
	}
	return nil
}

// accountPath builds the per-account collection path, e.g. /act_123/campaigns.
func accountPath(accountID, collection string) string {
	return fmt.Sprintf("/act_%s/%s", accountID, collection)
}
