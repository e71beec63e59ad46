// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apiclient is the single configured request sender for the CampusShare
REST API.

Responsibilities:

  - Base URL: every path is resolved against the configured API root.
  - Identity: attaches "Authorization: Bearer <token>" while a token exists.
  - Tracing: forwards the context request ID (or a fresh UUID v7) as X-Request-ID.
  - Throttling: waits on an outbound token bucket before each call.
  - Classification: converts every failure into an [apperr.AppError], keeping
    "no response" (TRANSPORT_ERROR) apart from application errors.

Domain service modules sit on top of [Client]; they never touch net/http.
*/
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/taibuivan/campusshare/internal/platform/apperr"
	"github.com/taibuivan/campusshare/internal/platform/constants"
	"github.com/taibuivan/campusshare/internal/platform/ctxutil"
)

// maxErrorBody caps how much of an error response is read for decoding.
const maxErrorBody = 64 << 10

// TokenSource supplies the bearer token for outgoing requests.
//
// An empty token means the request is sent anonymously.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a plain function to [TokenSource].
type TokenFunc func(ctx context.Context) (string, error)

// Token implements [TokenSource].
func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Options configures a [Client].
type Options struct {
	// BaseURL is the API root, e.g. "http://localhost:8080/api/v1".
	BaseURL string

	// Timeout bounds a single call. Zero uses [constants.DefaultRequestTimeout].
	Timeout time.Duration

	// RateLimit and Burst shape outbound traffic. Zero RateLimit disables throttling.
	RateLimit float64
	Burst     int

	// HTTPClient overrides the transport (tests use httptest clients).
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client sends requests to the CampusShare API.
//
// # Concurrency
//
// Client is safe for concurrent use. The token source and the unauthorized
// hook may be swapped at any time; in-flight requests keep the values they
// started with.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	mu             sync.RWMutex
	tokens         TokenSource
	onUnauthorized func(ctx context.Context, token string)
}

// New validates options and builds a [Client].
func New(opts Options) (*Client, error) {
	parsed, err := url.Parse(opts.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("apiclient: invalid base URL %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = constants.DefaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger,
	}, nil
}

// SetTokenSource installs the provider of bearer tokens.
func (c *Client) SetTokenSource(source TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = source
}

// OnUnauthorized registers a hook invoked when a request that carried a token
// is rejected with 401. The hook receives the rejected token so that a late
// rejection of a replaced token can be told apart from the current one.
func (c *Client) OnUnauthorized(hook func(ctx context.Context, token string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = hook
}

// # Verbs

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// Post issues a POST request with a JSON body. A nil body sends no payload.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	reader, contentType, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, reader, contentType, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	reader, contentType, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, reader, contentType, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", out)
}

// # Core

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}

	requestID := ctxutil.RequestID(ctx)
	if requestID == "" {
		requestID = newRequestID()
	}
	req.Header.Set(constants.HeaderXRequestID, requestID)
	req.Header.Set(constants.HeaderUserAgent, constants.UserAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set(constants.HeaderContentType, contentType)
	}

	tokens, hook := c.snapshot()
	var token string
	if tokens != nil {
		if token, err = tokens.Token(ctx); err != nil {
			return fmt.Errorf("apiclient: read token: %w", err)
		}
		if token != "" {
			req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
		}
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A caller that gave up is not an outage.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.DebugContext(ctx, "api_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return apperr.Transport(err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "api_request_finished",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
		slog.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized && token != "" && hook != nil {
			hook(ctx, token)
		}
		return appErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Internal(fmt.Errorf("apiclient: decode %s %s: %w", method, path, err))
	}

	return nil
}

func (c *Client) snapshot() (TokenSource, func(ctx context.Context, token string)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens, c.onUnauthorized
}

// errorBody accepts both the legacy {"error": msg} shape and the structured one.
type errorBody struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details"`
}

func decodeError(resp *http.Response) *apperr.AppError {
	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(raw, &body)

	message := body.Error
	if message == "" {
		message = body.Message
	}
	return apperr.FromResponse(resp.StatusCode, body.Code, message, body.Details)
}

func encodeJSON(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("apiclient: encode body: %w", err)
	}
	return bytes.NewReader(data), constants.ContentTypeJSON, nil
}

func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.New().String()
}
