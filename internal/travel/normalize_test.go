package travel

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flightOffersBody = `{
  "data": [
    {
      "price": {"currency": "EUR", "total": "410.20", "grandTotal": "432.10"},
      "itineraries": [
        {"duration": "PT9H5M", "segments": [
          {"carrierCode": "AZ", "number": "609",
           "departure": {"iataCode": "JFK", "at": "2025-07-01T17:05:00"},
           "arrival": {"iataCode": "FCO", "at": "2025-07-02T07:10:00"}}
        ]},
        {"duration": "PT10H", "segments": []}
      ]
    },
    {"price": {"total": "500.00"}},
    {"price": {"total": "510.00"}},
    {"price": {"total": "520.00"}}
  ],
  "dictionaries": {"currencies": {"EUR": "EURO"}}
}`

func TestNormalizeFlights(t *testing.T) {
	offers, err := NormalizeFlights([]byte(flightOffersBody))
	require.NoError(t, err)
	require.Len(t, offers, 3)

	first := offers[0]
	assert.Equal(t, "432.10", first.Price, "grandTotal wins over total")
	assert.Equal(t, "EUR", first.Currency)
	require.Len(t, first.Itineraries, 2)
	assert.Equal(t, "PT9H5M", first.Itineraries[0].Duration)
	assert.Equal(t, Segment{
		CarrierCode:     "AZ",
		FlightNumber:    "609",
		OriginIATA:      "JFK",
		DestinationIATA: "FCO",
		DepartureTime:   "2025-07-01T17:05:00",
		ArrivalTime:     "2025-07-02T07:10:00",
	}, first.Itineraries[0].Segments[0])

	assert.Equal(t, "500.00", offers[1].Price)
	assert.Empty(t, offers[1].Itineraries)
}

func TestNormalizeFlightsDefaultsCurrency(t *testing.T) {
	offers, err := NormalizeFlights([]byte(`{"data":[{"price":{"total":"99.00"}}]}`))
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "USD", offers[0].Currency)

	offers, err = NormalizeFlights([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestNormalizersRejectNonJSON(t *testing.T) {
	body := []byte(`<html>bad gateway</html>`)

	_, err := NormalizeFlights(body)
	assert.Error(t, err)
	_, err = NormalizeAmadeusHotels(body)
	assert.Error(t, err)
	_, err = NormalizeBookingHotels(body)
	assert.Error(t, err)
	_, err = NormalizePredictHQEvents(body)
	assert.Error(t, err)
	_, err = NormalizeTicketmasterEvents(body)
	assert.Error(t, err)
	_, err = NormalizePlaces(body)
	assert.Error(t, err)
	_, err = NormalizeForecast(body)
	assert.Error(t, err)
}

func TestNormalizeAmadeusHotels(t *testing.T) {
	body := `{"data":[
	  {"hotel":{"name":"Hotel Artemide","rating":"4","media":[{"uri":"https://img/1.jpg"}],
	            "address":{"lines":["Via Nazionale 22","Roma"]}},
	   "offers":[{"price":{"currency":"EUR","total":"612.00"}}]},
	  {"hotel":{"name":"Bare Inn","rating":3}},
	  {"hotel":{"name":"Third"}},
	  {"hotel":{"name":"Fourth"}}
	]}`

	hotels, err := NormalizeAmadeusHotels([]byte(body))
	require.NoError(t, err)
	require.Len(t, hotels, 3)

	h := hotels[0]
	assert.Equal(t, "Hotel Artemide", h.Name)
	assert.Equal(t, "612.00", h.PricePerNight)
	assert.Equal(t, "EUR", h.Currency)
	require.NotNil(t, h.Rating)
	assert.Equal(t, 4.0, *h.Rating)
	assert.Equal(t, "https://img/1.jpg", h.ImageURL)
	assert.Equal(t, "Via Nazionale 22, Roma", h.Address)

	bare := hotels[1]
	assert.Equal(t, "USD", bare.Currency)
	assert.Empty(t, bare.PricePerNight)
	require.NotNil(t, bare.Rating)
	assert.Equal(t, 3.0, *bare.Rating)

	assert.Nil(t, hotels[2].Rating)
}

func TestNormalizeBookingHotels(t *testing.T) {
	body := `{"result":[
	  {"hotel_name":"Riad Yasmine","min_total_price":182.5,"review_score":9.1,
	   "max_1440_photo_url":"https://img/riad.jpg","address":"Derb Lalla Azzouna",
	   "composite_price_breakdown":{"gross_amount":{"value":190,"currency":"MAD"}}},
	  {"hotel_name":"Gross Only","composite_price_breakdown":{"gross_amount":{"value":"75.00"}}}
	]}`

	hotels, err := NormalizeBookingHotels([]byte(body))
	require.NoError(t, err)
	require.Len(t, hotels, 2)

	assert.Equal(t, HotelOffer{
		Name:          "Riad Yasmine",
		PricePerNight: "182.5",
		Currency:      "MAD",
		Rating:        hotels[0].Rating,
		ImageURL:      "https://img/riad.jpg",
		Address:       "Derb Lalla Azzouna",
	}, hotels[0])
	require.NotNil(t, hotels[0].Rating)
	assert.Equal(t, 9.1, *hotels[0].Rating)

	assert.Equal(t, "75.00", hotels[1].PricePerNight)
	assert.Equal(t, "USD", hotels[1].Currency)
	assert.Nil(t, hotels[1].Rating)
}

func TestNormalizePredictHQEvents(t *testing.T) {
	var results []map[string]any
	for i := 0; i < 12; i++ {
		results = append(results, map[string]any{"title": fmt.Sprintf("Event %d", i), "start": "2025-07-02T19:00:00Z"})
	}
	results[0]["category"] = "concerts"
	results[0]["url"] = "https://phq/e/0"
	results[0]["entities"] = []map[string]string{{"name": "Promoter", "type": "organization"}, {"name": "Auditorium", "type": "venue"}}
	results[1]["labels"] = []string{"music", "outdoor"}

	body, err := json.Marshal(map[string]any{"results": results})
	require.NoError(t, err)

	events, err := NormalizePredictHQEvents(body)
	require.NoError(t, err)
	require.Len(t, events, 10)

	assert.Equal(t, Event{
		Title:     "Event 0",
		StartTime: "2025-07-02T19:00:00Z",
		Category:  "concerts",
		SourceURL: "https://phq/e/0",
		Venue:     "Auditorium",
	}, events[0])
	assert.Equal(t, "music", events[1].Category)
	assert.Empty(t, events[2].Category)
}

func TestNormalizeTicketmasterEvents(t *testing.T) {
	body := `{"_embedded":{"events":[
	  {"name":"Opera Night","url":"https://tm/1",
	   "dates":{"start":{"localDate":"2025-07-03","dateTime":"2025-07-03T18:30:00Z"}},
	   "classifications":[{"segment":{"name":"Arts & Theatre"}}],
	   "_embedded":{"venues":[{"name":"Teatro dell'Opera"}]}},
	  {"name":"Date Only","dates":{"start":{"localDate":"2025-07-04"}}}
	]}}`

	events, err := NormalizeTicketmasterEvents([]byte(body))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, Event{
		Title:     "Opera Night",
		StartTime: "2025-07-03T18:30:00Z",
		Category:  "Arts & Theatre",
		SourceURL: "https://tm/1",
		Venue:     "Teatro dell'Opera",
	}, events[0])
	assert.Equal(t, "2025-07-04", events[1].StartTime)

	events, err = NormalizeTicketmasterEvents([]byte(`{"page":{"totalElements":0}}`))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestNormalizePlaces(t *testing.T) {
	body := `{"status":"OK","results":[
	  {"name":"Colosseum","rating":4.7,"vicinity":"Piazza del Colosseo","place_id":"abc",
	   "geometry":{"location":{"lat":41.8902,"lng":12.4922}}},
	  {"name":"Unrated"}
	]}`

	acts, err := NormalizePlaces([]byte(body))
	require.NoError(t, err)
	require.Len(t, acts, 2)

	assert.Equal(t, "Colosseum", acts[0].Name)
	require.NotNil(t, acts[0].Rating)
	assert.Equal(t, 4.7, *acts[0].Rating)
	assert.Equal(t, "Piazza del Colosseo", acts[0].Address)
	assert.Equal(t, "abc", acts[0].PlaceID)
	assert.Equal(t, &LatLon{Lat: 41.8902, Lon: 12.4922}, acts[0].Location)

	assert.Nil(t, acts[1].Rating)
	assert.Nil(t, acts[1].Location)
}

func TestNormalizePlacesRejectsDeniedStatus(t *testing.T) {
	_, err := NormalizePlaces([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","results":[]}`))
	var se *ErrPlacesStatus
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "REQUEST_DENIED", se.Status)

	acts, err := NormalizePlaces([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	require.NoError(t, err)
	assert.Empty(t, acts)
}

// forecastBody builds 8 three-hour samples per day
func forecastBody(t *testing.T, days []string, temps map[string][]float64, conditions map[string]string) []byte {
	t.Helper()
	var list []map[string]any
	for _, day := range days {
		for slot := 0; slot < 8; slot++ {
			temp := 18.0
			if ts, ok := temps[day]; ok {
				temp = ts[slot]
			}
			cond := "Clouds"
			if c, ok := conditions[day]; ok && slot == 0 {
				cond = c
			}
			list = append(list, map[string]any{
				"dt_txt":  fmt.Sprintf("%s %02d:00:00", day, slot*3),
				"main":    map[string]any{"temp": temp},
				"weather": []map[string]string{{"main": cond}},
			})
		}
	}
	b, err := json.Marshal(map[string]any{"list": list})
	require.NoError(t, err)
	return b
}

func TestNormalizeForecast(t *testing.T) {
	days := []string{"2025-07-01", "2025-07-02", "2025-07-03", "2025-07-04", "2025-07-05"}
	body := forecastBody(t, days,
		map[string][]float64{"2025-07-01": {10, 12.4, 15, 18, 25, 22, 17, 11}},
		map[string]string{"2025-07-01": "Rain", "2025-07-02": "Mist"},
	)

	out, err := NormalizeForecast(body)
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.Equal(t, ForecastDay{Date: "2025-07-01", Low: 10, High: 25, Icon: "🌧️"}, out[0])
	assert.Equal(t, "🌤️", out[1].Icon, "unmapped condition uses the default glyph")
	assert.Equal(t, "☁️", out[2].Icon)
	for i, d := range days {
		assert.Equal(t, d, out[i].Date)
	}
}

func TestNormalizeForecastCapsAtFiveDays(t *testing.T) {
	days := []string{"2025-07-01", "2025-07-02", "2025-07-03", "2025-07-04", "2025-07-05", "2025-07-06"}
	out, err := NormalizeForecast(forecastBody(t, days, nil, nil))
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.Equal(t, "2025-07-05", out[4].Date)
}

func TestNormalizeForecastFirstIconWins(t *testing.T) {
	body := `{"list":[
	  {"dt_txt":"2025-01-10 00:00:00","main":{"temp":-2.5},"weather":[{"main":"Snow"}]},
	  {"dt_txt":"2025-01-10 03:00:00","main":{"temp":-0.4},"weather":[{"main":"Clear"}]},
	  {"dt_txt":"2025-01-10 06:00:00","main":{},"weather":[]},
	  {"dt_txt":"2025-01-11 00:00:00","main":{"temp":1.5},"weather":[]}
	]}`

	out, err := NormalizeForecast([]byte(body))
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, ForecastDay{Date: "2025-01-10", Low: -2, High: 0, Icon: "❄️"}, out[0])
	assert.Equal(t, ForecastDay{Date: "2025-01-11", Low: 2, High: 2, Icon: "🌤️"}, out[1])
}

func TestNormalizeForecastSkipsDaysWithoutTemperature(t *testing.T) {
	body := `{"list":[
	  {"dt_txt":"2025-01-10 00:00:00","main":{},"weather":[{"main":"Snow"}]},
	  {"dt_txt":"2025-01-10 03:00:00","weather":[{"main":"Snow"}]},
	  {"dt_txt":"2025-01-11 00:00:00","main":{"temp":4.2},"weather":[{"main":"Rain"}]}
	]}`

	out, err := NormalizeForecast([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, []ForecastDay{{Date: "2025-01-11", Low: 4, High: 4, Icon: "🌧️"}}, out)
}

func TestNormalizersTolerateWronglyTypedFields(t *testing.T) {
	t.Run("flights", func(t *testing.T) {
		offers, err := NormalizeFlights([]byte(`{"data":[
		  {"price":{"total":432.1},"itineraries":[{"duration":"PT2H","segments":"none"}]},
		  {"price":{"grandTotal":"99.00"},"itineraries":[{"duration":7}]}
		]}`))
		require.NoError(t, err)
		require.Len(t, offers, 2)
		assert.Equal(t, "432.1", offers[0].Price)
		require.Len(t, offers[0].Itineraries, 1)
		assert.Equal(t, "PT2H", offers[0].Itineraries[0].Duration)
		assert.Empty(t, offers[0].Itineraries[0].Segments)
		assert.Equal(t, "99.00", offers[1].Price)
	})

	t.Run("amadeus hotels", func(t *testing.T) {
		hotels, err := NormalizeAmadeusHotels([]byte(`{"data":[
		  {"hotel":{"name":"Hotel Artemide","address":{"lines":"Via Nazionale 22"}},
		   "offers":[{"price":{"currency":"EUR","total":612}}]}
		]}`))
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "Hotel Artemide", hotels[0].Name)
		assert.Empty(t, hotels[0].Address)
		assert.Equal(t, "612", hotels[0].PricePerNight)
		assert.Equal(t, "EUR", hotels[0].Currency)
	})

	t.Run("booking hotels", func(t *testing.T) {
		hotels, err := NormalizeBookingHotels([]byte(`{"result":[
		  {"hotel_name":"Riad Yasmine","address":{"street":"Derb"},"min_total_price":"182.50"}
		]}`))
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "Riad Yasmine", hotels[0].Name)
		assert.Empty(t, hotels[0].Address)
		assert.Equal(t, "182.50", hotels[0].PricePerNight)
	})

	t.Run("predicthq", func(t *testing.T) {
		events, err := NormalizePredictHQEvents([]byte(`{"results":[
		  {"title":"Estate Romana","labels":"music"},
		  {"title":"Second","entities":[{"name":"Auditorium","type":"venue"}]}
		]}`))
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "Estate Romana", events[0].Title)
		assert.Empty(t, events[0].Category)
		assert.Equal(t, "Auditorium", events[1].Venue)
	})

	t.Run("ticketmaster", func(t *testing.T) {
		events, err := NormalizeTicketmasterEvents([]byte(`{"_embedded":{"events":[
		  {"name":"Opera Night","classifications":{"segment":"Arts"},"dates":{"start":{"localDate":"2025-07-03"}}}
		]}}`))
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Opera Night", events[0].Title)
		assert.Empty(t, events[0].Category)
		assert.Equal(t, "2025-07-03", events[0].StartTime)
	})

	t.Run("places", func(t *testing.T) {
		acts, err := NormalizePlaces([]byte(`{"status":"OK","results":[
		  {"name":"Colosseum","rating":"4.7","geometry":{"location":{"lat":"north","lng":12.49}}},
		  {"name":"Forum","rating":{"value":4}}
		]}`))
		require.NoError(t, err)
		require.Len(t, acts, 2)
		require.NotNil(t, acts[0].Rating)
		assert.Equal(t, 4.7, *acts[0].Rating)
		require.NotNil(t, acts[0].Location)
		assert.Equal(t, 12.49, acts[0].Location.Lon)
		assert.Nil(t, acts[1].Rating)
	})

	t.Run("forecast", func(t *testing.T) {
		out, err := NormalizeForecast([]byte(`{"list":[
		  {"dt_txt":"2025-07-01 00:00:00","main":{"temp":"hot"},"weather":[{"main":"Clear"}]},
		  {"dt_txt":"2025-07-01 03:00:00","main":{"temp":21.4},"weather":"clear"},
		  {"dt_txt":"2025-07-01 06:00:00","main":{"temp":"25.6"}}
		]}`))
		require.NoError(t, err)
		assert.Equal(t, []ForecastDay{{Date: "2025-07-01", Low: 21, High: 26, Icon: "☀️"}}, out)
	})
}

func TestNormalizersRejectWrongDocumentShape(t *testing.T) {
	body := []byte(`["not","an","object"]`)

	_, err := NormalizeFlights(body)
	assert.Error(t, err)
	_, err = NormalizePlaces(body)
	assert.Error(t, err)
	_, err = NormalizeForecast(body)
	assert.Error(t, err)
}
