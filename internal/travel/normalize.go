package travel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/briangreenhill/tripwise/pkg/amadeus"
	"github.com/briangreenhill/tripwise/pkg/booking"
	"github.com/briangreenhill/tripwise/pkg/openweather"
	"github.com/briangreenhill/tripwise/pkg/places"
	"github.com/briangreenhill/tripwise/pkg/predicthq"
	"github.com/briangreenhill/tripwise/pkg/ticketmaster"
)

const (
	maxFlights      = 3
	maxHotels       = 3
	maxEvents       = 10
	maxActivities   = 10
	maxForecastDays = 5

	defaultCurrency = "USD"
	defaultIcon     = "🌤️"
)

var conditionIcons = map[string]string{
	"Thunderstorm": "⛈️",
	"Drizzle":      "🌦️",
	"Rain":         "🌧️",
	"Snow":         "❄️",
	"Clear":        "☀️",
	"Clouds":       "☁️",
}

// Normalizers decode a provider body into canonical records. Missing or
// wrongly typed fields become zero values; only a body that is not the
// expected JSON document is an error.

// decode unmarshals body into v, tolerating fields whose JSON type does not
// match. encoding/json skips such fields and keeps decoding the rest, so the
// only type error that matters is one at the top level.
func decode(body []byte, v any) error {
	err := json.Unmarshal(body, v)
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return nil
	}
	return err
}

func NormalizeFlights(body []byte) ([]FlightOffer, error) {
	var r amadeus.FlightOffersResponse
	if err := decode(body, &r); err != nil {
		return nil, err
	}

	currency := defaultCurrency
	if len(r.Dictionaries.Currencies) > 0 {
		codes := make([]string, 0, len(r.Dictionaries.Currencies))
		for code := range r.Dictionaries.Currencies {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		currency = codes[0]
	}

	out := make([]FlightOffer, 0, min(len(r.Data), maxFlights))
	for _, o := range head(r.Data, maxFlights) {
		price := flexString(o.Price.GrandTotal)
		if price == "" {
			price = flexString(o.Price.Total)
		}
		offer := FlightOffer{Price: price, Currency: currency, Itineraries: make([]FlightItinerary, 0, len(o.Itineraries))}
		for _, it := range o.Itineraries {
			segs := make([]Segment, 0, len(it.Segments))
			for _, sg := range it.Segments {
				segs = append(segs, Segment{
					CarrierCode:     sg.CarrierCode,
					FlightNumber:    sg.Number,
					OriginIATA:      sg.Departure.IATACode,
					DestinationIATA: sg.Arrival.IATACode,
					DepartureTime:   sg.Departure.At,
					ArrivalTime:     sg.Arrival.At,
				})
			}
			offer.Itineraries = append(offer.Itineraries, FlightItinerary{Duration: it.Duration, Segments: segs})
		}
		out = append(out, offer)
	}
	return out, nil
}

func NormalizeAmadeusHotels(body []byte) ([]HotelOffer, error) {
	var r amadeus.HotelOffersResponse
	if err := decode(body, &r); err != nil {
		return nil, err
	}

	out := make([]HotelOffer, 0, min(len(r.Data), maxHotels))
	for _, e := range head(r.Data, maxHotels) {
		h := HotelOffer{
			Name:     e.Hotel.Name,
			Currency: defaultCurrency,
			Rating:   flexFloat(e.Hotel.Rating),
			Address:  strings.Join(e.Hotel.Address.Lines, ", "),
		}
		if len(e.Offers) > 0 {
			h.PricePerNight = flexString(e.Offers[0].Price.Total)
			if c := e.Offers[0].Price.Currency; c != "" {
				h.Currency = c
			}
		}
		if len(e.Hotel.Media) > 0 {
			h.ImageURL = e.Hotel.Media[0].URI
		}
		out = append(out, h)
	}
	return out, nil
}

func NormalizeBookingHotels(body []byte) ([]HotelOffer, error) {
	var r booking.SearchResponse
	if err := decode(body, &r); err != nil {
		return nil, err
	}

	out := make([]HotelOffer, 0, min(len(r.Result), maxHotels))
	for _, h := range head(r.Result, maxHotels) {
		gross := h.CompositePriceBreakdown.GrossAmount
		price := flexString(h.MinTotalPrice)
		if price == "" {
			price = flexString(gross.Value)
		}
		currency := gross.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		out = append(out, HotelOffer{
			Name:          h.HotelName,
			PricePerNight: price,
			Currency:      currency,
			Rating:        flexFloat(h.ReviewScore),
			ImageURL:      h.Max1440PhotoURL,
			Address:       h.Address,
		})
	}
	return out, nil
}

func NormalizePredictHQEvents(body []byte) ([]Event, error) {
	var r predicthq.EventsResponse
	if err := decode(body, &r); err != nil {
		return nil, err
	}

	out := make([]Event, 0, min(len(r.Results), maxEvents))
	for _, e := range head(r.Results, maxEvents) {
		category := e.Category
		if category == "" {
			category = e.Label
		}
		if category == "" && len(e.Labels) > 0 {
			category = e.Labels[0]
		}
		venue := e.Venue
		if venue == "" {
			for _, ent := range e.Entities {
				if ent.Type == "venue" {
					venue = ent.Name
					break
				}
			}
		}
		out = append(out, Event{Title: e.Title, StartTime: e.Start, Category: category, SourceURL: e.URL, Venue: venue})
	}
	return out, nil
}

func NormalizeTicketmasterEvents(body []byte) ([]Event, error) {
	var r ticketmaster.EventsResponse
	if err := decode(body, &r); err != nil {
		return nil, err
	}

	events := r.Embedded.Events
	out := make([]Event, 0, min(len(events), maxEvents))
	for _, e := range head(events, maxEvents) {
		ev := Event{Title: e.Name, StartTime: e.Dates.Start.DateTime, SourceURL: e.URL}
		if ev.StartTime == "" {
			ev.StartTime = e.Dates.Start.LocalDate
		}
		if len(e.Classifications) > 0 {
			ev.Category = e.Classifications[0].Segment.Name
		}
		if len(e.Embedded.Venues) > 0 {
			ev.Venue = e.Embedded.Venues[0].Name
		}
		out = append(out, ev)
	}
	return out, nil
}

// ErrPlacesStatus is returned for a places body whose status reports an error
type ErrPlacesStatus struct {
	Status  string
	Message string
}

func (e *ErrPlacesStatus) Error() string {
	return fmt.Sprintf("places status %s: %s", e.Status, e.Message)
}

// NormalizePlaces maps nearby-search results. A body whose status is set to
// anything but OK or ZERO_RESULTS is rejected so the next candidate runs.
func NormalizePlaces(body []byte) ([]Activity, error) {
	var r places.NearbyResponse
	if err := decode(body, &r); err != nil {
		return nil, err
	}
	switch r.Status {
	case "", "OK", "ZERO_RESULTS":
	default:
		return nil, &ErrPlacesStatus{Status: r.Status, Message: r.ErrorMessage}
	}

	out := make([]Activity, 0, min(len(r.Results), maxActivities))
	for _, p := range head(r.Results, maxActivities) {
		a := Activity{Name: p.Name, Rating: flexFloat(p.Rating), Address: p.Vicinity, PlaceID: p.PlaceID}
		if p.Geometry != nil {
			a.Location = &LatLon{Lat: p.Geometry.Location.Lat, Lon: p.Geometry.Location.Lng}
		}
		out = append(out, a)
	}
	return out, nil
}

// NormalizeForecast groups 3-hour samples by calendar day in order of first
// appearance and keeps at most 5 days. Each day carries the icon of its first
// sample. A day with no usable temperature is left out.
func NormalizeForecast(body []byte) ([]ForecastDay, error) {
	var r openweather.ForecastResponse
	if err := decode(body, &r); err != nil {
		return nil, err
	}

	type bucket struct {
		day      ForecastDay
		min, max float64
		hasTemp  bool
	}
	var order []string
	byDay := make(map[string]*bucket)

	for _, s := range r.List {
		date, _, _ := strings.Cut(s.DtTxt, " ")
		if date == "" {
			continue
		}
		b, ok := byDay[date]
		if !ok {
			icon := defaultIcon
			if len(s.Weather) > 0 {
				if g, ok := conditionIcons[s.Weather[0].Main]; ok {
					icon = g
				}
			}
			b = &bucket{day: ForecastDay{Date: date, Icon: icon}}
			byDay[date] = b
			order = append(order, date)
		}
		temp := flexFloat(s.Main.Temp)
		if temp == nil {
			continue
		}
		t := *temp
		if !b.hasTemp || t < b.min {
			b.min = t
		}
		if !b.hasTemp || t > b.max {
			b.max = t
		}
		b.hasTemp = true
	}

	out := make([]ForecastDay, 0, min(len(order), maxForecastDays))
	for _, date := range order {
		b := byDay[date]
		if !b.hasTemp {
			continue
		}
		b.day.Low, b.day.High = roundHalfUp(b.min), roundHalfUp(b.max)
		out = append(out, b.day)
		if len(out) == maxForecastDays {
			break
		}
	}
	return out, nil
}

// roundHalfUp rounds .5 toward +Inf (-2.5 -> -2)
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// flexString renders a JSON string or number as text; anything else is ""
func flexString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// flexFloat parses a JSON string or number; nil when absent or not numeric
func flexFloat(raw json.RawMessage) *float64 {
	s := flexString(raw)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
