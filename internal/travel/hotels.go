package travel

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/briangreenhill/tripwise/cache"
	"github.com/briangreenhill/tripwise/pkg/amadeus"
)

type HotelSearch struct {
	CityCode string // defaults to NYC
	CheckIn  string
	CheckOut string
	Adults   int // defaults to 2
}

// SearchHotels returns up to 3 offers: proxy, then Amadeus, then Booking via RapidAPI
func (s *Service) SearchHotels(ctx context.Context, q HotelSearch) []HotelOffer {
	if q.CityCode == "" {
		q.CityCode = DefaultCityCode
	}
	if q.Adults <= 0 {
		q.Adults = 2
	}
	adults := strconv.Itoa(q.Adults)

	direct := func(ctx context.Context) (*http.Request, error) {
		token, err := s.amadeusToken(ctx)
		if err != nil {
			return nil, err
		}
		return s.providers.Amadeus.HotelOffersRequest(ctx, token, amadeus.HotelQuery{
			CityCode: q.CityCode,
			CheckIn:  q.CheckIn,
			CheckOut: q.CheckOut,
			Adults:   q.Adults,
		})
	}

	rapid := func(ctx context.Context) (*http.Request, error) {
		if s.providers.Booking == nil {
			return nil, ErrNotConfigured
		}
		return s.providers.Booking.SearchRequest(ctx, q.CheckIn, q.CheckOut, q.Adults)
	}

	return firstSuccess(ctx, s, lookup[[]HotelOffer]{
		domain: "hotels",
		key:    cache.Key("hotels", q.CityCode, q.CheckIn, q.CheckOut, adults),
		ttl:    s.ttl,
		empty:  []HotelOffer{},
	}, []candidate[[]HotelOffer]{
		{
			name: "proxy",
			request: s.proxyRequest("/api/hotels/search", url.Values{
				"cityCode": {q.CityCode},
				"checkIn":  {q.CheckIn},
				"checkOut": {q.CheckOut},
				"adults":   {adults},
			}),
			normalize: NormalizeAmadeusHotels,
		},
		{name: "amadeus", request: direct, normalize: NormalizeAmadeusHotels, unauthorized: s.dropAmadeusToken},
		{name: "booking", request: rapid, normalize: NormalizeBookingHotels},
	})
}
