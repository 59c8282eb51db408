// Package places builds requests for the Google Places nearby search.
package places

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com"
	DefaultType    = "tourist_attraction"
)

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

// NearbyRequest searches places of placeType within 5km of lat,lon
func (c *Client) NearbyRequest(ctx context.Context, lat, lon, placeType string) (*http.Request, error) {
	if placeType == "" {
		placeType = DefaultType
	}
	u := *c.baseURL
	u.Path = path.Join(u.Path, "/maps/api/place/nearbysearch/json")
	q := url.Values{}
	q.Set("location", lat+","+lon)
	q.Set("radius", "5000")
	q.Set("type", placeType)
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
