package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// CredentialStore is the gateway's only view of the session layer: it yields
// the bearer credential for a request context and drops the session when the
// API rejects it. The session manager implements it; keeping it an interface
// here keeps the transport free of any dependency on the page layer.
type CredentialStore interface {
	Credential(ctx context.Context) (string, bool)
	Clear(ctx context.Context)
}

// Client is the single chokepoint for outbound calls to the blog REST API.
// It attaches the bearer credential to every request and applies the global
// 401 policy; everything else passes through to the caller untouched.
type Client struct {
	baseURL    string
	store      CredentialStore
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL string, store CredentialStore, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger.With().Str("component", "api").Logger(),
	}
}

// BaseURL returns the configured API base address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.store.Credential(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Global policy: the credential is dead. Clear the session before
		// the caller sees anything; no retry, no refresh flow.
		c.store.Clear(ctx)
		c.logger.Debug().Str("method", method).Str("path", path).Msg("credential rejected, session cleared")
		return ErrUnauthenticated
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			return fmt.Errorf("api: %s %s: %s", method, path, resp.Status)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
