package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"github.com/briangreenhill/tripwise/internal/metrics"
)

// DefaultSafetyMargin is how long before expiry a cached token stops being reused
const DefaultSafetyMargin = 30 * time.Second

var ErrMissingCredentials = errors.New("client id and secret required")

// AuthError is returned when the token endpoint rejects the exchange
type AuthError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("token exchange failed: %v", e.Err)
	}
	return fmt.Sprintf("token exchange failed (%d): %s", e.StatusCode, e.Body)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TokenStore caches one client-credentials bearer token for a provider.
// Concurrent callers that find no usable token share a single exchange; a
// caller that gives up does not cancel it for the others.
type TokenStore struct {
	conf   clientcredentials.Config
	http   *http.Client
	margin time.Duration
	now    func() time.Time
	flight singleflight.Group

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

type TokenOption func(*TokenStore)

// WithTokenHTTPClient sets the client used for the exchange request
func WithTokenHTTPClient(h *http.Client) TokenOption {
	return func(s *TokenStore) { s.http = h }
}

func WithSafetyMargin(d time.Duration) TokenOption {
	return func(s *TokenStore) { s.margin = d }
}

func WithTokenClock(now func() time.Time) TokenOption {
	return func(s *TokenStore) { s.now = now }
}

// NewTokenStore creates a store that exchanges clientID/clientSecret at tokenURL
func NewTokenStore(clientID, clientSecret, tokenURL string, opts ...TokenOption) (*TokenStore, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}
	s := &TokenStore{
		conf: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		http:   http.DefaultClient,
		margin: DefaultSafetyMargin,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Token returns the cached access token while now < expiresAt - margin,
// otherwise performs a client_credentials exchange.
func (s *TokenStore) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	tok, exp := s.token, s.expiresAt
	s.mu.Unlock()

	if tok != "" && s.now().Before(exp.Add(-s.margin)) {
		return tok, nil
	}

	// the shared exchange outlives any single caller's cancellation
	exchangeCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan("token", func() (any, error) {
		fresh, expiresAt, err := s.exchange(exchangeCtx)
		if err != nil {
			metrics.TokenExchanges.WithLabelValues("error").Inc()
			return "", err
		}
		metrics.TokenExchanges.WithLabelValues("ok").Inc()

		s.mu.Lock()
		s.token, s.expiresAt = fresh, expiresAt
		s.mu.Unlock()
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Invalidate drops the cached token so the next call exchanges again
func (s *TokenStore) Invalidate() {
	s.mu.Lock()
	s.token, s.expiresAt = "", time.Time{}
	s.mu.Unlock()
}

func (s *TokenStore) exchange(ctx context.Context) (string, time.Time, error) {
	issuedAt := s.now()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.http)

	t, err := s.conf.Token(ctx)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return "", time.Time{}, &AuthError{StatusCode: re.Response.StatusCode, Body: string(re.Body), Err: err}
		}
		return "", time.Time{}, &AuthError{Err: err}
	}

	return t.AccessToken, expiry(t, issuedAt), nil
}

// expiry measures expires_in from our own clock so tests can simulate time
func expiry(t *oauth2.Token, issuedAt time.Time) time.Time {
	switch v := t.Extra("expires_in").(type) {
	case float64:
		return issuedAt.Add(time.Duration(v) * time.Second)
	case string:
		if d, err := time.ParseDuration(v + "s"); err == nil {
			return issuedAt.Add(d)
		}
	}
	return t.Expiry
}
