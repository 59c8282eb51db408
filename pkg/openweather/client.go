// Package openweather builds requests for the OpenWeather 5 day / 3 hour forecast.
package openweather

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
)

const DefaultBaseURL = "https://api.openweathermap.org"

type Client struct {
	baseURL *url.URL
	apiKey  string
}

type Option func(*Client)

func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("apiKey required")
	}
	u, _ := url.Parse(DefaultBaseURL)
	c := &Client{baseURL: u, apiKey: apiKey}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ForecastRequest asks for metric 3-hour samples at lat,lon
func (c *Client) ForecastRequest(ctx context.Context, lat, lon string) (*http.Request, error) {
	u := *c.baseURL
	u.Path = path.Join(u.Path, "/data/2.5/forecast")
	q := url.Values{}
	q.Set("lat", lat)
	q.Set("lon", lon)
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
