// Package amadeus builds requests for the Amadeus self-service flight and
// hotel APIs. Authentication is a client-credentials bearer token obtained
// from TokenURL.
package amadeus

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
	"strconv"
)

const (
	TestBaseURL       = "https://test.api.amadeus.com"
	ProductionBaseURL = "https://api.amadeus.com"

	tokenPath        = "/v1/security/oauth2/token"
	flightOffersPath = "/v2/shopping/flight-offers"
	hotelOffersPath  = "/v2/shopping/hotel-offers"
)

// BaseURLFor maps AMADEUS_ENV to an API host
func BaseURLFor(env string) string {
	if env == "production" {
		return ProductionBaseURL
	}
	return TestBaseURL
}

type Client struct {
	baseURL *url.URL
}

// New creates a Client for the given base URL (TestBaseURL or ProductionBaseURL)
func New(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{baseURL: u}, nil
}

// TokenURL is the client-credentials endpoint
func (c *Client) TokenURL() string {
	u := *c.baseURL
	u.Path = path.Join(u.Path, tokenPath)
	return u.String()
}

// FlightQuery is a round-trip offer search
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
}

// HotelQuery is a city hotel-offer search
type HotelQuery struct {
	CityCode string
	CheckIn  string
	CheckOut string
	Adults   int
}

// FlightOffersRequest asks for at most 3 offers priced in USD
func (c *Client) FlightOffersRequest(ctx context.Context, token string, q FlightQuery) (*http.Request, error) {
	v := url.Values{}
	v.Set("originLocationCode", q.Origin)
	v.Set("destinationLocationCode", q.Destination)
	v.Set("departureDate", q.DepartureDate)
	if q.ReturnDate != "" {
		v.Set("returnDate", q.ReturnDate)
	}
	v.Set("adults", strconv.Itoa(q.Adults))
	v.Set("currencyCode", "USD")
	v.Set("max", "3")
	return c.newReq(ctx, flightOffersPath, token, v)
}

func (c *Client) HotelOffersRequest(ctx context.Context, token string, q HotelQuery) (*http.Request, error) {
	v := url.Values{}
	v.Set("cityCode", q.CityCode)
	v.Set("checkInDate", q.CheckIn)
	v.Set("checkOutDate", q.CheckOut)
	v.Set("adults", strconv.Itoa(q.Adults))
	v.Set("roomQuantity", "1")
	v.Set("currency", "USD")
	return c.newReq(ctx, hotelOffersPath, token, v)
}

func (c *Client) newReq(ctx context.Context, p, token string, q url.Values) (*http.Request, error) {
	u := *c.baseURL
	u.Path = path.Join(u.Path, p)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
