// Package travel aggregates flights, hotels, events, nearby places and
// weather from several upstreams. Every lookup walks an ordered list of
// candidate backends, normalizes the first successful response into a
// canonical record and caches it. Lookups never fail: when every candidate
// fails the caller gets an empty result.
package travel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/tripwise/cache"
	"github.com/briangreenhill/tripwise/internal/fetch"
	"github.com/briangreenhill/tripwise/pkg/amadeus"
	"github.com/briangreenhill/tripwise/pkg/booking"
	"github.com/briangreenhill/tripwise/pkg/openweather"
	"github.com/briangreenhill/tripwise/pkg/places"
	"github.com/briangreenhill/tripwise/pkg/predicthq"
	"github.com/briangreenhill/tripwise/pkg/ticketmaster"
)

const (
	DefaultTTL        = 5 * time.Minute
	DefaultWeatherTTL = 10 * time.Minute
)

// ErrNotConfigured marks a candidate whose credentials or endpoint are absent.
// Such candidates are skipped without a network call.
var ErrNotConfigured = errors.New("candidate not configured")

// Doer sends one logical request; fetch.Client adds retries behind it
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource yields a bearer token for providers using client credentials.
// Invalidate is called after the provider rejects the current token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// Providers holds the configured upstream clients; a nil field means the
// provider is not configured.
type Providers struct {
	Amadeus       *amadeus.Client
	AmadeusTokens TokenSource
	PredictHQ     *predicthq.Client
	Ticketmaster  *ticketmaster.Client
	OpenWeather   *openweather.Client
	Places        *places.Client
	Booking       *booking.Client
}

// Options configures a Service. Zero values select defaults.
type Options struct {
	Providers

	HTTP         Doer
	Cache        cache.Cache
	Resolver     Resolver
	Logger       zerolog.Logger
	ProxyBaseURL string // empty disables proxy candidates
	TTL          time.Duration
	WeatherTTL   time.Duration
}

type Service struct {
	providers  Providers
	http       Doer
	cache      cache.Cache
	resolver   Resolver
	log        zerolog.Logger
	proxy      *url.URL
	ttl        time.Duration
	weatherTTL time.Duration
}

// New creates a Service
func New(opts Options) (*Service, error) {
	s := &Service{
		providers:  opts.Providers,
		http:       opts.HTTP,
		cache:      opts.Cache,
		resolver:   opts.Resolver,
		log:        opts.Logger,
		ttl:        opts.TTL,
		weatherTTL: opts.WeatherTTL,
	}
	if s.http == nil {
		s.http = fetch.New()
	}
	if s.cache == nil {
		s.cache = cache.NewStore()
	}
	if s.resolver == nil {
		s.resolver = NewStaticResolver()
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTTL
	}
	if s.weatherTTL <= 0 {
		s.weatherTTL = DefaultWeatherTTL
	}
	if opts.ProxyBaseURL != "" {
		u, err := url.Parse(opts.ProxyBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy base URL: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy base URL %q: scheme and host required", opts.ProxyBaseURL)
		}
		s.proxy = u
	}
	return s, nil
}

// proxyRequest builds a GET against the proxy server, or ErrNotConfigured
func (s *Service) proxyRequest(p string, q url.Values) requestFunc {
	return func(ctx context.Context) (*http.Request, error) {
		if s.proxy == nil {
			return nil, ErrNotConfigured
		}
		u := *s.proxy
		u.Path = path.Join(u.Path, p)
		u.RawQuery = q.Encode()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}
}

// amadeusToken fetches a bearer token or reports the provider as unconfigured
func (s *Service) amadeusToken(ctx context.Context) (string, error) {
	if s.providers.Amadeus == nil || s.providers.AmadeusTokens == nil {
		return "", ErrNotConfigured
	}
	return s.providers.AmadeusTokens.Token(ctx)
}

// dropAmadeusToken forgets a token Amadeus has rejected
func (s *Service) dropAmadeusToken() {
	if s.providers.AmadeusTokens != nil {
		s.providers.AmadeusTokens.Invalidate()
	}
}
