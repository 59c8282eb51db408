package travel

import (
	"context"
	"net/http"
	"net/url"

	"github.com/briangreenhill/tripwise/cache"
)

// Forecast returns up to 5 daily summaries, cached for the weather TTL
func (s *Service) Forecast(ctx context.Context, loc LatLon) []ForecastDay {
	lat, lon := formatCoord(loc.Lat), formatCoord(loc.Lon)

	direct := func(ctx context.Context) (*http.Request, error) {
		if s.providers.OpenWeather == nil {
			return nil, ErrNotConfigured
		}
		return s.providers.OpenWeather.ForecastRequest(ctx, lat, lon)
	}

	return firstSuccess(ctx, s, lookup[[]ForecastDay]{
		domain: "weather",
		key:    cache.Key("wx", lat, lon),
		ttl:    s.weatherTTL,
		empty:  []ForecastDay{},
	}, []candidate[[]ForecastDay]{
		{name: "proxy", request: s.proxyRequest("/api/weather", url.Values{"lat": {lat}, "lon": {lon}}), normalize: NormalizeForecast},
		{name: "openweather", request: direct, normalize: NormalizeForecast},
	})
}
