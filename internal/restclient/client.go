package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rental-admin-backend/config"
	"rental-admin-backend/internal/metrics"
)

// Client sends requests to the rental backend and normalizes its responses.
type Client struct {
	baseURL string
	creds   CredentialProvider
	client  *http.Client
}

// New creates a client for the configured backend. creds may be nil.
func New(cfg config.BackendConfig, creds CredentialProvider) *Client {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Backend client will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return NewWithHTTPClient(cfg.BaseURL, creds, &http.Client{Transport: transport, Timeout: timeout})
}

// NewWithHTTPClient creates a client on top of an existing *http.Client.
func NewWithHTTPClient(baseURL string, creds CredentialProvider, hc *http.Client) *Client {
	if creds == nil {
		creds = StaticToken("")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		client:  hc,
	}
}

// Get issues a GET for path with the non-empty query parameters.
func (c *Client) Get(ctx context.Context, path string, q Query) (Envelope, error) {
	return c.Do(ctx, http.MethodGet, q.WithPath(path), nil)
}

// Post issues a POST carrying body as JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (Envelope, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT carrying body as JSON.
func (c *Client) Put(ctx context.Context, path string, body any) (Envelope, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Patch issues a PATCH carrying body as JSON.
func (c *Client) Patch(ctx context.Context, path string, body any) (Envelope, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do performs one request. Non-2xx responses and transport failures are
// returned as *Error; there is no retry.
func (c *Client) Do(ctx context.Context, method, path string, body any) (Envelope, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("failed to marshal request payload: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.creds.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(method, "0").Inc()
		return Envelope{}, &Error{cause: err}
	}
	defer resp.Body.Close()
	metrics.BackendRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, &Error{Status: resp.StatusCode, cause: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Envelope{}, newResponseError(resp.StatusCode, respBody)
	}

	return Normalize(respBody), nil
}
