// Package booking builds requests for the Booking.com hotel search exposed
// through RapidAPI.
package booking

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
	"strconv"
)

// DefaultDestID is the destination searched when none is configured
const DefaultDestID = "-1456928"

type Client struct {
	baseURL *url.URL
	apiKey  string
	host    string
	destID  string
}

type Option func(*Client)

// WithBaseURL overrides https://<host>
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

func WithDestID(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.destID = id
		}
	}
}

// New creates a Client for the RapidAPI host (e.g. booking-com.p.rapidapi.com)
func New(apiKey, host string, opts ...Option) (*Client, error) {
	if apiKey == "" || host == "" {
		return nil, errors.New("apiKey and host required")
	}
	u, err := url.Parse("https://" + host)
	if err != nil {
		return nil, err
	}
	c := &Client{baseURL: u, apiKey: apiKey, host: host, destID: DefaultDestID}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// SearchRequest lists hotels by popularity for the configured destination
func (c *Client) SearchRequest(ctx context.Context, checkIn, checkOut string, adults int) (*http.Request, error) {
	u := *c.baseURL
	u.Path = path.Join(u.Path, "/v1/hotels/search")
	q := url.Values{}
	q.Set("dest_id", c.destID)
	q.Set("order_by", "popularity")
	q.Set("adults_number", strconv.Itoa(adults))
	q.Set("checkin_date", checkIn)
	q.Set("checkout_date", checkOut)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
