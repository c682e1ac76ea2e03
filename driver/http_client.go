// ABOUTME: This file implements the resilient authenticated HTTP client
// ABOUTME: Handles bearer auth, read caching, bounded retry and 401 recovery

package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"medinsight-client/cache"
	"medinsight-client/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetries    = 1
	defaultRetryDelay = 250 * time.Millisecond
	refreshEndpoint   = "/auth/refresh"
)

// ClientConfig configures a Client. BaseURL and Tokens are required.
type ClientConfig struct {
	BaseURL string
	Tokens  *repository.TokenStore

	Timeout        time.Duration
	CacheTTL       time.Duration
	DefaultRetries int
	RetryBaseDelay time.Duration

	// RequestsPerSecond enables a client-side throttle when positive.
	RequestsPerSecond float64
	Burst             int

	Navigator Navigator
	Logger    *slog.Logger
}

// Client is the single entry point for all backend requests. It composes the
// token store and response cache and implements the retry and 401-recovery
// policy. Construct one per process and pass it to every caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *repository.TokenStore
	cache      *cache.ResponseCache
	navigator  Navigator
	logger     *slog.Logger
	limiter    *rate.Limiter

	retries    int
	retryDelay time.Duration

	// Single-flight group prevents concurrent refresh calls; callers that
	// observe a 401 while a refresh is in flight attach to it.
	refreshGroup singleflight.Group

	metrics metrics
}

// New creates a Client. The underlying http.Client carries a cookie jar so
// the refresh cookie set by the backend travels with every request.
func New(cfg ClientConfig) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.DefaultRetries
	if retries < 0 {
		retries = defaultRetries
	}
	retryDelay := cfg.RetryBaseDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	navigator := cfg.Navigator
	if navigator == nil {
		navigator = NoOpNavigator{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		tokens:     cfg.Tokens,
		cache:      cache.NewResponseCache(cfg.CacheTTL),
		navigator:  navigator,
		logger:     logger,
		limiter:    limiter,
		retries:    retries,
		retryDelay: retryDelay,
	}, nil
}

// Tokens exposes the token store the client writes to.
func (c *Client) Tokens() *repository.TokenStore { return c.tokens }

// Metrics returns a snapshot of client activity counters.
func (c *Client) Metrics() ClientMetrics { return c.metrics.snapshot() }

// InvalidateCache drops cached reads whose endpoint starts with prefix.
func (c *Client) InvalidateCache(prefix string) { c.cache.Invalidate(prefix) }

// ClearCache drops every cached read.
func (c *Client) ClearCache() { c.cache.Clear() }

// Do issues a request against endpoint and decodes the JSON body into T.
func Do[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) Response[T] {
	out := c.execute(ctx, endpoint, opts)
	if out.errMsg != "" {
		return Response[T]{Err: out.errMsg, Status: out.status}
	}

	var data T
	if len(out.body) > 0 {
		if err := json.Unmarshal(out.body, &data); err != nil {
			c.logger.Error("Failed to decode response body", "endpoint", endpoint, "error", err)
			return Response[T]{Err: "malformed response body", Status: out.status}
		}
	}
	return Response[T]{Data: &data, Status: out.status}
}

// Get is shorthand for an authenticated cached read.
func Get[T any](ctx context.Context, c *Client, endpoint string) Response[T] {
	return Do[T](ctx, c, endpoint, RequestOptions{})
}

// Post is shorthand for a JSON POST.
func Post[T any](ctx context.Context, c *Client, endpoint string, payload any) Response[T] {
	return Do[T](ctx, c, endpoint, RequestOptions{Method: http.MethodPost, JSON: payload})
}

// Patch is shorthand for a JSON PATCH.
func Patch[T any](ctx context.Context, c *Client, endpoint string, payload any) Response[T] {
	return Do[T](ctx, c, endpoint, RequestOptions{Method: http.MethodPatch, JSON: payload})
}

// Put is shorthand for a JSON PUT.
func Put[T any](ctx context.Context, c *Client, endpoint string, payload any) Response[T] {
	return Do[T](ctx, c, endpoint, RequestOptions{Method: http.MethodPut, JSON: payload})
}

// outcome is the transport-level result before JSON decoding.
type outcome struct {
	status int
	body   []byte
	errMsg string
}

func (c *Client) execute(ctx context.Context, endpoint string, opts RequestOptions) outcome {
	method := opts.method()
	path := opts.pathWithQuery(endpoint)

	body, contentType, err := opts.encodeBody()
	if err != nil {
		return outcome{errMsg: err.Error()}
	}

	cacheable := method == http.MethodGet && !opts.NoCache
	key := cache.Key(path, method, body)
	if cacheable {
		if payload, ok := c.cache.Get(key); ok {
			c.metrics.add(func(m *ClientMetrics) { m.CacheHits++ })
			return outcome{status: http.StatusOK, body: payload}
		}
		c.metrics.add(func(m *ClientMetrics) { m.CacheMisses++ })
	}

	retries := c.retries
	if opts.Retries != nil {
		retries = *opts.Retries
	}
	if retries < 0 {
		retries = 0
	}

	hadToken := !opts.SkipAuth && c.tokens.Token() != ""

	resp, err := c.send(ctx, method, path, body, contentType, opts, retries)
	if err != nil {
		return outcome{status: 0, errMsg: err.Error()}
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return outcome{status: 0, errMsg: readErr.Error()}
	}

	if resp.StatusCode == http.StatusUnauthorized && !opts.SkipRefresh && hadToken {
		if c.refreshShared(ctx) {
			retryOpts := opts
			retryOpts.SkipRefresh = true
			return c.execute(ctx, endpoint, retryOpts)
		}

		c.tokens.Clear(ctx)
		if current := c.navigator.CurrentPath(); !IsPublicPath(current) {
			c.logger.Warn("Authentication irrecoverable, redirecting to login", "from", current)
			c.navigator.NavigateTo(LoginPath)
		}
		return outcome{status: http.StatusUnauthorized, errMsg: "Authentication failed"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errorDetail(respBody)
		c.logger.Warn("Request failed",
			"method", method,
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"detail", msg)
		return outcome{status: resp.StatusCode, errMsg: msg}
	}

	if cacheable && len(respBody) > 0 {
		c.cache.Set(key, respBody)
	}
	return outcome{status: resp.StatusCode, body: respBody}
}

// send issues the network call with a bounded retry loop. Only transport
// failures are retried; any obtained HTTP response is returned as-is.
func (c *Client) send(ctx context.Context, method, path string, body []byte, contentType string, opts RequestOptions, retries int) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			backoff := c.retryDelay << (attempt - 1)
			c.logger.Info("Retrying request after backoff",
				"method", method,
				"endpoint", path,
				"attempt", attempt+1,
				"backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			c.metrics.add(func(m *ClientMetrics) { m.NetworkRetries++ })
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := c.newRequest(ctx, method, path, body, contentType, opts)
		if err != nil {
			return nil, err
		}

		c.metrics.add(func(m *ClientMetrics) { m.RequestsSent++ })
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Warn("Network request failed",
				"method", method,
				"endpoint", path,
				"attempt", attempt+1,
				"error", err)
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte, contentType string, opts RequestOptions) (*http.Request, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if !opts.SkipAuth {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// refreshShared runs refresh under the single-flight group so that N
// concurrent 401s produce exactly one refresh call; every waiter observes
// the same result and retries only after it resolves.
func (c *Client) refreshShared(ctx context.Context) bool {
	v, _, shared := c.refreshGroup.Do("token_refresh", func() (interface{}, error) {
		return c.refresh(ctx), nil
	})
	if shared {
		c.metrics.add(func(m *ClientMetrics) { m.SharedRefreshWaits++ })
	}
	ok, _ := v.(bool)
	return ok
}

// refresh exchanges the out-of-band refresh cookie for a new access token.
// No bearer header is sent; authority comes entirely from the cookie jar.
func (c *Client) refresh(ctx context.Context) bool {
	c.metrics.add(func(m *ClientMetrics) { m.RefreshAttempts++ })

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshEndpoint, nil)
	if err != nil {
		c.metrics.add(func(m *ClientMetrics) { m.RefreshFailures++ })
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Token refresh request failed", "error", err)
		c.metrics.add(func(m *ClientMetrics) { m.RefreshFailures++ })
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Token refresh rejected", "status", resp.StatusCode)
		c.metrics.add(func(m *ClientMetrics) { m.RefreshFailures++ })
		return false
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.AccessToken == "" {
		c.logger.Warn("Token refresh returned unusable body", "error", err)
		c.metrics.add(func(m *ClientMetrics) { m.RefreshFailures++ })
		return false
	}

	c.tokens.Set(ctx, payload.AccessToken)
	c.metrics.add(func(m *ClientMetrics) { m.RefreshSuccesses++ })
	c.logger.Info("Access token refreshed")
	return true
}

// errorDetail extracts the backend's detail message from an error body.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return "Request failed"
}
