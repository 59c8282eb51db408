package travel

import (
	"context"
	"net/http"
	"net/url"

	"github.com/briangreenhill/tripwise/cache"
)

type EventSearch struct {
	Location  LatLon
	StartDate string
	EndDate   string
}

// Events returns up to 10 events near the location. PredictHQ is tried
// before Ticketmaster; each is reached through the proxy when one is
// configured, then directly.
func (s *Service) Events(ctx context.Context, q EventSearch) []Event {
	lat, lon := formatCoord(q.Location.Lat), formatCoord(q.Location.Lon)

	predictHQ := func(ctx context.Context) (*http.Request, error) {
		if s.providers.PredictHQ == nil {
			return nil, ErrNotConfigured
		}
		return s.providers.PredictHQ.EventsRequest(ctx, lat, lon, q.StartDate, q.EndDate)
	}
	ticketmaster := func(ctx context.Context) (*http.Request, error) {
		if s.providers.Ticketmaster == nil {
			return nil, ErrNotConfigured
		}
		return s.providers.Ticketmaster.EventsRequest(ctx, lat, lon)
	}

	return firstSuccess(ctx, s, lookup[[]Event]{
		domain: "events",
		key:    cache.Key("events", lat, lon, q.StartDate, q.EndDate),
		ttl:    s.ttl,
		empty:  []Event{},
	}, []candidate[[]Event]{
		{
			name:      "proxy-predicthq",
			request:   s.proxyRequest("/api/events", url.Values{"lat": {lat}, "lon": {lon}, "start": {q.StartDate}, "end": {q.EndDate}}),
			normalize: NormalizePredictHQEvents,
		},
		{name: "predicthq", request: predictHQ, normalize: NormalizePredictHQEvents},
		{
			name:      "proxy-ticketmaster",
			request:   s.proxyRequest("/api/events/ticketmaster", url.Values{"lat": {lat}, "lon": {lon}}),
			normalize: NormalizeTicketmasterEvents,
		},
		{name: "ticketmaster", request: ticketmaster, normalize: NormalizeTicketmasterEvents},
	})
}
