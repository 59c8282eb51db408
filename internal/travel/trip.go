package travel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Trip describes a planned stay. Coords may be nil when the destination has
// not been geocoded.
type Trip struct {
	Destination string  `json:"destination"`
	Coords      *LatLon `json:"coords,omitempty"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Persona     string  `json:"persona"`
}

// TripIntel is everything gathered for a trip in one pass
type TripIntel struct {
	Events      []Event       `json:"events"`
	Activities  []Activity    `json:"activities"`
	Forecast    []ForecastDay `json:"forecast"`
	Suggestions []Suggestion  `json:"suggestions"`
}

// InitializeTrip fetches events, activities and the forecast concurrently and
// derives suggestions from them. Without coordinates all lists are empty.
func (s *Service) InitializeTrip(ctx context.Context, t Trip) TripIntel {
	intel := TripIntel{
		Events:     []Event{},
		Activities: []Activity{},
		Forecast:   []ForecastDay{},
	}

	if t.Coords != nil {
		loc := *t.Coords
		var g errgroup.Group
		g.Go(func() error {
			intel.Events = s.Events(ctx, EventSearch{Location: loc, StartDate: t.StartDate, EndDate: t.EndDate})
			return nil
		})
		g.Go(func() error {
			intel.Activities = s.ActivitiesNearby(ctx, loc, "")
			return nil
		})
		g.Go(func() error {
			intel.Forecast = s.Forecast(ctx, loc)
			return nil
		})
		_ = g.Wait() // adapters degrade to empty results instead of failing
	}

	intel.Suggestions = Suggest(intel.Events, intel.Activities, t.Persona)
	return intel
}

// Destination is a candidate trip target enriched with live offers
type Destination struct {
	Name    string        `json:"name"`
	Flights []FlightOffer `json:"flights"`
	Hotels  []HotelOffer  `json:"hotels"`
}

type EnhanceOptions struct {
	Origin    string // defaults to NYC
	StartDate string
	EndDate   string
	Travelers int // defaults to 1
}

const enhanceConcurrency = 4

// EnhanceDestinations attaches flight and hotel offers to each destination.
// Destinations are processed concurrently; results keep the input order.
func (s *Service) EnhanceDestinations(ctx context.Context, names []string, opts EnhanceOptions) []Destination {
	if opts.Origin == "" {
		opts.Origin = DefaultCityCode
	}
	if opts.Travelers <= 0 {
		opts.Travelers = 1
	}

	out := make([]Destination, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enhanceConcurrency)

	for i, name := range names {
		g.Go(func() error {
			d := Destination{Name: name}

			var inner errgroup.Group
			inner.Go(func() error {
				d.Flights = s.SearchFlights(ctx, FlightSearch{
					Origin:          opts.Origin,
					DestinationName: name,
					DepartureDate:   opts.StartDate,
					ReturnDate:      opts.EndDate,
					Adults:          opts.Travelers,
				})
				return nil
			})
			inner.Go(func() error {
				d.Hotels = s.hotelsFor(ctx, name, opts)
				return nil
			})
			_ = inner.Wait()

			out[i] = d
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *Service) hotelsFor(ctx context.Context, name string, opts EnhanceOptions) []HotelOffer {
	code, err := s.resolver.ResolveCode(ctx, name)
	if err != nil {
		s.log.Warn().Err(err).Str("destination", name).Msg("resolve city code")
		return []HotelOffer{}
	}
	return s.SearchHotels(ctx, HotelSearch{
		CityCode: code,
		CheckIn:  opts.StartDate,
		CheckOut: opts.EndDate,
		Adults:   opts.Travelers,
	})
}
