package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"room-booking-console/config"
)

// Client issues JSON requests against the booking backend.
type Client struct {
	baseURL string
	headers map[string]string
	http    *http.Client
}

// New creates a client for the configured backend. An invalid proxy URL is
// logged and ignored.
func New(cfg config.BackendConfig) *Client {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Warn().Err(err).Str("proxy", cfg.HTTPProxy).Msg("invalid backend proxy URL, not using a proxy")
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return NewWithHTTPClient(cfg.BaseURL, cfg.Headers, &http.Client{
		Transport: transport,
		Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
}

// NewWithHTTPClient creates a client using the given http.Client.
func NewWithHTTPClient(baseURL string, headers map[string]string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: headers,
		http:    hc,
	}
}

// Get issues a GET request; query is an already encoded query string.
func (c *Client) Get(ctx context.Context, path, query string) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, path, "", body)
}

// Put sends body as JSON.
func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPut, path, "", body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, "", nil)
}

// Do performs the request and decodes the response envelope. Every failure is
// returned as an *Error.
func (c *Client) Do(ctx context.Context, method, path, query string, body any) (*Envelope, error) {
	target := c.baseURL + path
	if query != "" {
		target += "?" + query
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, dispatchError(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, dispatchError(err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("url", target).Msg("backend call failed")
		return nil, noResponseError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, noResponseError(errors.Wrap(err, "read response body"))
	}

	log.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var fields map[string]any
		_ = json.Unmarshal(raw, &fields)
		return nil, responseError(resp.StatusCode, fields, nil)
	}

	var env Envelope
	if len(bytes.TrimSpace(raw)) == 0 {
		return &env, nil
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, responseError(resp.StatusCode, nil, errors.Wrap(err, "decode response envelope"))
	}
	return &env, nil
}
