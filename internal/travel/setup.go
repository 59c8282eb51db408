package travel

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/tripwise/cache"
	"github.com/briangreenhill/tripwise/internal/auth"
	"github.com/briangreenhill/tripwise/internal/config"
	"github.com/briangreenhill/tripwise/internal/fetch"
	"github.com/briangreenhill/tripwise/pkg/amadeus"
	"github.com/briangreenhill/tripwise/pkg/booking"
	"github.com/briangreenhill/tripwise/pkg/openweather"
	"github.com/briangreenhill/tripwise/pkg/places"
	"github.com/briangreenhill/tripwise/pkg/predicthq"
	"github.com/briangreenhill/tripwise/pkg/ticketmaster"
)

// NewHTTPClient builds the retrying upstream client from configuration
func NewHTTPClient(cfg *config.Config, log zerolog.Logger) *fetch.Client {
	return fetch.New(
		fetch.WithMaxRetries(cfg.HTTP.MaxRetries),
		fetch.WithInitialDelay(cfg.HTTP.InitialDelay),
		fetch.WithTimeout(cfg.HTTP.Timeout),
		fetch.WithLogger(log),
	)
}

// ProvidersFromConfig creates a client for every provider with credentials.
// tokenHTTP carries the Amadeus token exchange.
func ProvidersFromConfig(cfg *config.Config, tokenHTTP *http.Client) (Providers, error) {
	var p Providers

	if cfg.HasAmadeus() {
		am, err := amadeus.New(cfg.AmadeusBaseURL())
		if err != nil {
			return p, fmt.Errorf("amadeus: %w", err)
		}
		tokens, err := auth.NewTokenStore(cfg.Amadeus.ClientID, cfg.Amadeus.ClientSecret, am.TokenURL(),
			auth.WithTokenHTTPClient(tokenHTTP))
		if err != nil {
			return p, fmt.Errorf("amadeus tokens: %w", err)
		}
		p.Amadeus, p.AmadeusTokens = am, tokens
	}

	if key := cfg.PredictHQ.Key; key != "" {
		c, err := predicthq.New(key)
		if err != nil {
			return p, fmt.Errorf("predicthq: %w", err)
		}
		p.PredictHQ = c
	}
	if key := cfg.Ticketmaster.Key; key != "" {
		c, err := ticketmaster.New(key)
		if err != nil {
			return p, fmt.Errorf("ticketmaster: %w", err)
		}
		p.Ticketmaster = c
	}
	if key := cfg.OpenWeather.Key; key != "" {
		c, err := openweather.New(key)
		if err != nil {
			return p, fmt.Errorf("openweather: %w", err)
		}
		p.OpenWeather = c
	}
	if key := cfg.GooglePlaces.Key; key != "" {
		c, err := places.New(key)
		if err != nil {
			return p, fmt.Errorf("places: %w", err)
		}
		p.Places = c
	}
	if cfg.HasRapidAPI() {
		c, err := booking.New(cfg.RapidAPI.Key, cfg.RapidAPI.Host, booking.WithDestID(cfg.RapidAPI.BookingDestID))
		if err != nil {
			return p, fmt.Errorf("booking: %w", err)
		}
		p.Booking = c
	}

	return p, nil
}

// NewFromConfig wires a Service with its own HTTP client, cache and providers
func NewFromConfig(cfg *config.Config, log zerolog.Logger) (*Service, error) {
	hc := NewHTTPClient(cfg, log)
	providers, err := ProvidersFromConfig(cfg, hc.HTTPClient())
	if err != nil {
		return nil, err
	}
	return New(Options{
		Providers:    providers,
		HTTP:         hc,
		Cache:        cache.NewStore(cache.WithMaxEntries(cfg.Cache.MaxEntries)),
		Logger:       log,
		ProxyBaseURL: cfg.ProxyBaseURL,
		TTL:          cfg.Cache.TTL,
		WeatherTTL:   cfg.Cache.WeatherTTL,
	})
}
