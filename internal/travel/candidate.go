package travel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/briangreenhill/tripwise/internal/auth"
	"github.com/briangreenhill/tripwise/internal/fetch"
	"github.com/briangreenhill/tripwise/internal/metrics"
)

const maxBodyBytes = 8 << 20

type requestFunc func(ctx context.Context) (*http.Request, error)

// candidate is one backend in a lookup's fallback list
type candidate[T any] struct {
	name      string
	request   requestFunc
	normalize func(body []byte) (T, error)

	// unauthorized runs when the backend answers 401, e.g. to drop a stale token
	unauthorized func()
}

// lookup describes one cached call: its cache key, TTL and the value
// returned when every candidate fails.
type lookup[T any] struct {
	domain string
	key    string
	ttl    time.Duration
	empty  T
}

// firstSuccess returns the cached value for l.key, or the normalized body of
// the first candidate that answers 2xx. Candidate failures of any kind move on
// to the next candidate; only the empty value escapes when all fail.
func firstSuccess[T any](ctx context.Context, s *Service, l lookup[T], candidates []candidate[T]) T {
	if v, ok := s.cache.Get(l.key); ok {
		if cached, ok := v.(T); ok {
			metrics.ObserveCache(l.domain, true)
			return cached
		}
	}
	metrics.ObserveCache(l.domain, false)

	for _, c := range candidates {
		result, err := tryCandidate(ctx, s, c)
		if err != nil {
			outcome := outcomeOf(err)
			metrics.ObserveCandidate(l.domain, c.name, outcome)
			if outcome != "skipped" {
				s.log.Warn().
					Err(err).
					Str("domain", l.domain).
					Str("candidate", c.name).
					Str("outcome", outcome).
					Msg("candidate failed")
			}
			continue
		}
		metrics.ObserveCandidate(l.domain, c.name, "ok")
		s.cache.Put(l.key, result, l.ttl)
		return result
	}

	s.log.Info().Str("domain", l.domain).Str("key", l.key).Msg("all candidates failed")
	return l.empty
}

// tryCandidate performs one candidate call: build, send, check status, normalize
func tryCandidate[T any](ctx context.Context, s *Service, c candidate[T]) (T, error) {
	var zero T

	req, err := c.request(ctx)
	if err != nil {
		return zero, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return zero, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && c.unauthorized != nil {
			c.unauthorized()
		}
		u := *req.URL
		u.RawQuery = ""
		return zero, &fetch.StatusError{Method: req.Method, URL: u.String(), StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	out, err := c.normalize(body)
	if err != nil {
		return zero, &decodeError{err: err}
	}
	return out, nil
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return "decode: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// outcomeOf labels a candidate failure for metrics and logs
func outcomeOf(err error) string {
	var (
		se *fetch.StatusError
		ae *auth.AuthError
		de *decodeError
	)
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "skipped"
	case errors.As(err, &ae):
		return "auth"
	case errors.As(err, &se):
		return "status"
	case errors.As(err, &de):
		return "decode"
	default:
		return "transport"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
