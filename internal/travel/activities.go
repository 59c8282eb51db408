package travel

import (
	"context"
	"net/http"
	"net/url"

	"github.com/briangreenhill/tripwise/cache"
	"github.com/briangreenhill/tripwise/pkg/places"
)

// ActivitiesNearby returns up to 10 places of placeType (default
// tourist_attraction) within 5km.
func (s *Service) ActivitiesNearby(ctx context.Context, loc LatLon, placeType string) []Activity {
	if placeType == "" {
		placeType = places.DefaultType
	}
	lat, lon := formatCoord(loc.Lat), formatCoord(loc.Lon)

	direct := func(ctx context.Context) (*http.Request, error) {
		if s.providers.Places == nil {
			return nil, ErrNotConfigured
		}
		return s.providers.Places.NearbyRequest(ctx, lat, lon, placeType)
	}

	return firstSuccess(ctx, s, lookup[[]Activity]{
		domain: "activities",
		key:    cache.Key("places", lat, lon, placeType),
		ttl:    s.ttl,
		empty:  []Activity{},
	}, []candidate[[]Activity]{
		{
			name:      "proxy",
			request:   s.proxyRequest("/api/places/nearby", url.Values{"lat": {lat}, "lon": {lon}, "type": {placeType}}),
			normalize: NormalizePlaces,
		},
		{name: "places", request: direct, normalize: NormalizePlaces},
	})
}

// Restaurants is ActivitiesNearby restricted to restaurants
func (s *Service) Restaurants(ctx context.Context, loc LatLon) []Activity {
	return s.ActivitiesNearby(ctx, loc, "restaurant")
}
