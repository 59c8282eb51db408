// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/briangreenhill/tripwise/pkg/amadeus"
)

// Config holds all application configuration
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	ProxyBaseURL string `env:"PROXY_BASE_URL"`

	HTTP         HTTPConfig     `envPrefix:"HTTP_"`
	Cache        CacheConfig    `envPrefix:"CACHE_"`
	Amadeus      AmadeusConfig  `envPrefix:"AMADEUS_"`
	PredictHQ    KeyConfig      `envPrefix:"PREDICTHQ_"`
	Ticketmaster KeyConfig      `envPrefix:"TICKETMASTER_"`
	OpenWeather  KeyConfig      `envPrefix:"OPENWEATHER_"`
	GooglePlaces KeyConfig      `envPrefix:"GOOGLE_PLACES_"`
	RapidAPI     RapidAPIConfig `envPrefix:"RAPIDAPI_"`
}

// HTTPConfig controls the retrying upstream client
type HTTPConfig struct {
	MaxRetries   int           `env:"MAX_RETRIES" envDefault:"3"`
	InitialDelay time.Duration `env:"INITIAL_DELAY" envDefault:"800ms"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"10s"` // per attempt
}

// CacheConfig controls the in-process result cache
type CacheConfig struct {
	TTL        time.Duration `env:"TTL" envDefault:"5m"`
	WeatherTTL time.Duration `env:"WEATHER_TTL" envDefault:"10m"`
	MaxEntries int           `env:"MAX_ENTRIES" envDefault:"1000"`
}

// AmadeusConfig holds the flight/hotel provider credentials
type AmadeusConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	Env          string `env:"ENV" envDefault:"test"`
	BaseURL      string `env:"BASE_URL"` // overrides Env when set
}

// KeyConfig is a provider authenticated by a single API key
type KeyConfig struct {
	Key string `env:"KEY"`
}

// RapidAPIConfig holds the hotel fallback credentials
type RapidAPIConfig struct {
	Key           string `env:"KEY"`
	Host          string `env:"HOST"`
	BookingDestID string `env:"BOOKING_DEST_ID" envDefault:"-1456928"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from the given variables instead of the process environment
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HTTP.MaxRetries < 0 {
		return nil, fmt.Errorf("HTTP_MAX_RETRIES must be >= 0, got %d", cfg.HTTP.MaxRetries)
	}
	if cfg.Cache.MaxEntries < 0 {
		return nil, fmt.Errorf("CACHE_MAX_ENTRIES must be >= 0, got %d", cfg.Cache.MaxEntries)
	}
	if cfg.Amadeus.Env != "test" && cfg.Amadeus.Env != "production" {
		return nil, fmt.Errorf("AMADEUS_ENV must be test or production, got %q", cfg.Amadeus.Env)
	}
	return cfg, nil
}

// AmadeusBaseURL returns the API host selected by AMADEUS_ENV
func (c *Config) AmadeusBaseURL() string {
	if c.Amadeus.BaseURL != "" {
		return c.Amadeus.BaseURL
	}
	return amadeus.BaseURLFor(c.Amadeus.Env)
}

// HasAmadeus returns true if Amadeus credentials are complete
func (c *Config) HasAmadeus() bool {
	return c.Amadeus.ClientID != "" && c.Amadeus.ClientSecret != ""
}

// HasRapidAPI returns true if the hotel fallback is configured
func (c *Config) HasRapidAPI() bool {
	return c.RapidAPI.Key != "" && c.RapidAPI.Host != ""
}

// Validate ensures at least one upstream or a proxy is reachable
func (c *Config) Validate() error {
	if c.ProxyBaseURL != "" || c.HasAmadeus() || c.HasRapidAPI() {
		return nil
	}
	if c.PredictHQ.Key != "" || c.Ticketmaster.Key != "" || c.OpenWeather.Key != "" || c.GooglePlaces.Key != "" {
		return nil
	}
	return fmt.Errorf("no providers configured - set PROXY_BASE_URL or at least one provider key")
}
