package travel

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/briangreenhill/tripwise/cache"
	"github.com/briangreenhill/tripwise/pkg/amadeus"
)

// FlightSearch is a round trip from Origin (IATA) to a named destination
type FlightSearch struct {
	Origin          string
	DestinationName string
	DepartureDate   string
	ReturnDate      string
	Adults          int // defaults to 1
}

// SearchFlights returns up to 3 offers: proxy first, then Amadeus directly
func (s *Service) SearchFlights(ctx context.Context, q FlightSearch) []FlightOffer {
	if q.Adults <= 0 {
		q.Adults = 1
	}
	adults := strconv.Itoa(q.Adults)

	// resolved at most once, and only on a cache miss
	destination := sync.OnceValues(func() (string, error) {
		return s.resolver.ResolveCode(ctx, q.DestinationName)
	})

	proxy := func(ctx context.Context) (*http.Request, error) {
		dest, err := destination()
		if err != nil {
			return nil, err
		}
		return s.proxyRequest("/api/flights/search", url.Values{
			"origin":        {q.Origin},
			"destination":   {dest},
			"departureDate": {q.DepartureDate},
			"returnDate":    {q.ReturnDate},
			"adults":        {adults},
		})(ctx)
	}

	direct := func(ctx context.Context) (*http.Request, error) {
		token, err := s.amadeusToken(ctx)
		if err != nil {
			return nil, err
		}
		dest, err := destination()
		if err != nil {
			return nil, err
		}
		return s.providers.Amadeus.FlightOffersRequest(ctx, token, amadeus.FlightQuery{
			Origin:        q.Origin,
			Destination:   dest,
			DepartureDate: q.DepartureDate,
			ReturnDate:    q.ReturnDate,
			Adults:        q.Adults,
		})
	}

	return firstSuccess(ctx, s, lookup[[]FlightOffer]{
		domain: "flights",
		key:    cache.Key("flights", q.Origin, q.DestinationName, q.DepartureDate, q.ReturnDate, adults),
		ttl:    s.ttl,
		empty:  []FlightOffer{},
	}, []candidate[[]FlightOffer]{
		{name: "proxy", request: proxy, normalize: NormalizeFlights},
		{name: "amadeus", request: direct, normalize: NormalizeFlights, unauthorized: s.dropAmadeusToken},
	})
}
