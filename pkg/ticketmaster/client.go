// Package ticketmaster builds requests for the Ticketmaster Discovery API.
package ticketmaster

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
)

const DefaultBaseURL = "https://app.ticketmaster.com"

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

// EventsRequest searches events within 25 miles of lat,lon
func (c *Client) EventsRequest(ctx context.Context, lat, lon string) (*http.Request, error) {
	u := *c.baseURL
	u.Path = path.Join(u.Path, "/discovery/v2/events.json")
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("latlong", lat+","+lon)
	q.Set("radius", "25")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
