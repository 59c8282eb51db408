// Package predicthq builds requests for the PredictHQ events API.
package predicthq

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
)

const DefaultBaseURL = "https://api.predicthq.com"

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

// EventsRequest searches up to 10 events active between start and end
// within 20km of lat,lon.
func (c *Client) EventsRequest(ctx context.Context, lat, lon, start, end string) (*http.Request, error) {
	u := *c.baseURL
	// trailing slash is significant for this API
	u.Path = path.Join(u.Path, "/v1/events") + "/"
	q := url.Values{}
	q.Set("active", "gte:"+start+",lte:"+end)
	q.Set("within", "20km@"+lat+","+lon)
	q.Set("limit", "10")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
