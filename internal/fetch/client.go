// Package fetch issues upstream HTTP requests with bounded retry and
// exponential backoff. Only 429, 5xx and network failures are retried.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/tripwise/internal/metrics"
)

const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = 800 * time.Millisecond
	DefaultTimeout      = 10 * time.Second // per attempt
)

// StatusError describes a non-2xx upstream response
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s -> %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Client wraps an http.Client with the retry policy
type Client struct {
	http         *http.Client
	maxRetries   int
	initialDelay time.Duration
	timeout      time.Duration
	log          zerolog.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

func WithInitialDelay(d time.Duration) Option {
	return func(c *Client) { c.initialDelay = d }
}

// WithTimeout bounds each individual attempt, including reading the body
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithSleep replaces the backoff wait; tests use it to record delays
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// New creates a Client with the default policy (3 retries, 800ms base delay, 10s per attempt)
func New(opts ...Option) *Client {
	c := &Client{
		http:         http.DefaultClient,
		maxRetries:   DefaultMaxRetries,
		initialDelay: DefaultInitialDelay,
		timeout:      DefaultTimeout,
		log:          zerolog.Nop(),
		sleep:        sleepCtx,
	}
	for _, o := range opts {
		o(c)
	}
	hc := *c.http
	hc.Timeout = c.timeout
	c.http = &hc
	return c
}

// Do sends req, retrying transient failures. Total attempts are maxRetries+1.
// A retryable status on the final attempt is returned as the response; a
// network failure on the final attempt is returned as an error.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	delay := c.initialDelay

	for attempt := 0; ; attempt++ {
		last := attempt == c.maxRetries

		attemptReq, err := cloneRequest(req)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(attemptReq)
		if err == nil {
			if !retryableStatus(resp.StatusCode) || last {
				return resp, nil
			}
			c.log.Debug().
				Str("url", redact(req)).
				Int("status", resp.StatusCode).
				Int("attempt", attempt+1).
				Dur("backoff", delay).
				Msg("retrying upstream")
			drain(resp)
		} else {
			var ue *url.Error
			if errors.As(err, &ue) {
				ue.URL = redact(req)
			}
			if last || ctx.Err() != nil {
				return nil, fmt.Errorf("upstream unreachable: %w", err)
			}
			c.log.Debug().
				Err(err).
				Str("url", redact(req)).
				Int("attempt", attempt+1).
				Dur("backoff", delay).
				Msg("retrying upstream after network error")
		}

		metrics.UpstreamRetries.Inc()
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
	}
}

// RoundTrip lets the Client act as an http.RoundTripper so libraries that take
// an *http.Client (oauth2) inherit the retry policy.
func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := c.Do(req)
	if req.Body != nil {
		_ = req.Body.Close()
	}
	return resp, err
}

// HTTPClient returns an *http.Client whose transport is this Client
func (c *Client) HTTPClient() *http.Client {
	return &http.Client{Transport: c}
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// cloneRequest gives every attempt a fresh body
func cloneRequest(req *http.Request) (*http.Request, error) {
	r := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return r, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("request body cannot be replayed: GetBody is nil")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("replay request body: %w", err)
	}
	r.Body = body
	return r, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

// redact drops the query string, which carries API keys for several upstreams
func redact(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	return u.String()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
