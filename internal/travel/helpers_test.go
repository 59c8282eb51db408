package travel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/tripwise/cache"
	"github.com/briangreenhill/tripwise/internal/auth"
	"github.com/briangreenhill/tripwise/internal/fetch"
	"github.com/briangreenhill/tripwise/pkg/amadeus"
	"github.com/briangreenhill/tripwise/pkg/booking"
	"github.com/briangreenhill/tripwise/pkg/openweather"
	"github.com/briangreenhill/tripwise/pkg/places"
	"github.com/briangreenhill/tripwise/pkg/predicthq"
	"github.com/briangreenhill/tripwise/pkg/ticketmaster"
)

// upstream is a fake for every provider and the proxy, routed by path
type upstream struct {
	*httptest.Server
	mux *http.ServeMux

	mu   sync.Mutex
	hits map[string]int
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{mux: http.NewServeMux(), hits: map[string]int{}}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.hits[r.URL.Path]++
		u.mu.Unlock()
		u.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

func (u *upstream) handle(path string, status int, body string) {
	u.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func (u *upstream) hitCount(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits[path]
}

const tokenBody = `{"access_token":"tok","token_type":"Bearer","expires_in":1799}`

func noSleep(context.Context, time.Duration) error { return nil }

// testEnv wires a Service whose every provider and proxy point at one upstream
type testEnv struct {
	svc   *Service
	up    *upstream
	cache *cache.Store
	clock *testClock
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type envOption func(*Options)

func withoutProxy() envOption {
	return func(o *Options) { o.ProxyBaseURL = "" }
}

func withProviders(fn func(*Providers)) envOption {
	return func(o *Options) { fn(&o.Providers) }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	up := newUpstream(t)
	clock := &testClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := cache.NewStore(cache.WithClock(clock.Now))
	hc := fetch.New(fetch.WithSleep(noSleep))

	am, err := amadeus.New(up.URL)
	require.NoError(t, err)
	tokens, err := auth.NewTokenStore("id", "secret", am.TokenURL(), auth.WithTokenHTTPClient(hc.HTTPClient()))
	require.NoError(t, err)
	phq, err := predicthq.New("phq", predicthq.WithBaseURL(up.URL))
	require.NoError(t, err)
	tm, err := ticketmaster.New("tm", ticketmaster.WithBaseURL(up.URL))
	require.NoError(t, err)
	ow, err := openweather.New("ow", openweather.WithBaseURL(up.URL))
	require.NoError(t, err)
	gp, err := places.New("gp", places.WithBaseURL(up.URL))
	require.NoError(t, err)
	bk, err := booking.New("rapid", "booking.example", booking.WithBaseURL(up.URL))
	require.NoError(t, err)

	o := Options{
		Providers: Providers{
			Amadeus:       am,
			AmadeusTokens: tokens,
			PredictHQ:     phq,
			Ticketmaster:  tm,
			OpenWeather:   ow,
			Places:        gp,
			Booking:       bk,
		},
		HTTP:         hc,
		Cache:        store,
		ProxyBaseURL: up.URL,
	}
	for _, fn := range opts {
		fn(&o)
	}

	svc, err := New(o)
	require.NoError(t, err)
	return &testEnv{svc: svc, up: up, cache: store, clock: clock}
}
