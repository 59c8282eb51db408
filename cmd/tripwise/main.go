package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/tripwise/internal/config"
	"github.com/briangreenhill/tripwise/internal/travel"
)

const version = "v0.1.0"

var errUsage = errors.New("see `tripwise help` for usage")

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}

	newService := func() (*travel.Service, error) { return travel.NewFromConfig(cfg, logger) }
	if err := runCLI(context.Background(), os.Args[1:], newService, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tripwise <command> [args]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  flights <origin> <destination> <depart> <return> [adults]")
	fmt.Fprintln(w, "  hotels <cityCode> <checkIn> <checkOut> [adults]")
	fmt.Fprintln(w, "  events <lat> <lon> <start> <end>")
	fmt.Fprintln(w, "  activities <lat> <lon> [type]")
	fmt.Fprintln(w, "  restaurants <lat> <lon>")
	fmt.Fprintln(w, "  weather <lat> <lon>")
	fmt.Fprintln(w, "  trip <lat> <lon> <start> <end> <persona>")
	fmt.Fprintln(w, "  enhance <origin> <start> <end> <destination>...")
	fmt.Fprintln(w, "  help, version")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PROXY_BASE_URL      Proxy server tried before direct providers")
	fmt.Fprintln(w, "  AMADEUS_CLIENT_ID   Amadeus client credentials (with AMADEUS_CLIENT_SECRET)")
	fmt.Fprintln(w, "  PREDICTHQ_KEY, TICKETMASTER_KEY, OPENWEATHER_KEY, GOOGLE_PLACES_KEY, RAPIDAPI_KEY")
}

// runCLI dispatches one command and prints its result as indented JSON
func runCLI(ctx context.Context, args []string, newService func() (*travel.Service, error), out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return errUsage
	}

	switch args[0] {
	case "help", "--help", "-h":
		usage(out)
		return nil
	case "version", "--version", "-v":
		fmt.Fprintf(out, "tripwise %s\n", version)
		return nil
	}

	cmd, rest := args[0], args[1:]
	run, ok := commands[cmd]
	if !ok {
		return fmt.Errorf("unknown command: %s", cmd)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	result, err := run(ctx, svc, rest)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

type command func(ctx context.Context, svc *travel.Service, args []string) (any, error)

var commands = map[string]command{
	"flights": func(ctx context.Context, svc *travel.Service, args []string) (any, error) {
		if len(args) < 4 {
			return nil, errUsage
		}
		adults, err := optionalInt(args, 4)
		if err != nil {
			return nil, err
		}
		return svc.SearchFlights(ctx, travel.FlightSearch{
			Origin:          args[0],
			DestinationName: args[1],
			DepartureDate:   args[2],
			ReturnDate:      args[3],
			Adults:          adults,
		}), nil
	},
	"hotels": func(ctx context.Context, svc *travel.Service, args []string) (any, error) {
		if len(args) < 3 {
			return nil, errUsage
		}
		adults, err := optionalInt(args, 3)
		if err != nil {
			return nil, err
		}
		return svc.SearchHotels(ctx, travel.HotelSearch{CityCode: args[0], CheckIn: args[1], CheckOut: args[2], Adults: adults}), nil
	},
	"events": func(ctx context.Context, svc *travel.Service, args []string) (any, error) {
		if len(args) < 4 {
			return nil, errUsage
		}
		loc, err := parseLatLon(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return svc.Events(ctx, travel.EventSearch{Location: loc, StartDate: args[2], EndDate: args[3]}), nil
	},
	"activities": func(ctx context.Context, svc *travel.Service, args []string) (any, error) {
		if len(args) < 2 {
			return nil, errUsage
		}
		loc, err := parseLatLon(args[0], args[1])
		if err != nil {
			return nil, err
		}
		placeType := ""
		if len(args) > 2 {
			placeType = args[2]
		}
		return svc.ActivitiesNearby(ctx, loc, placeType), nil
	},
	"restaurants": func(ctx context.Context, svc *travel.Service, args []string) (any, error) {
		if len(args) < 2 {
			return nil, errUsage
		}
		loc, err := parseLatLon(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return svc.Restaurants(ctx, loc), nil
	},
	"weather": func(ctx context.Context, svc *travel.Service, args []string) (any, error) {
		if len(args) < 2 {
			return nil, errUsage
		}
		loc, err := parseLatLon(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return svc.Forecast(ctx, loc), nil
	},
	"trip": func(ctx context.Context, svc *travel.Service, args []string) (any, error) {
		if len(args) < 5 {
			return nil, errUsage
		}
		loc, err := parseLatLon(args[0], args[1])
		if err != nil {
			return nil, err
		}
		trip := travel.Trip{Coords: &loc, StartDate: args[2], EndDate: args[3], Persona: args[4]}
		intel := svc.InitializeTrip(ctx, trip)

		itinerary, err := travel.NewItinerary(trip.StartDate, trip.EndDate, intel.Forecast)
		if err != nil {
			return nil, err
		}
		return struct {
			travel.TripIntel
			Itinerary *travel.Itinerary `json:"itinerary"`
		}{intel, itinerary}, nil
	},
	"enhance": func(ctx context.Context, svc *travel.Service, args []string) (any, error) {
		if len(args) < 4 {
			return nil, errUsage
		}
		return svc.EnhanceDestinations(ctx, args[3:], travel.EnhanceOptions{
			Origin:    args[0],
			StartDate: args[1],
			EndDate:   args[2],
		}), nil
	},
}

func parseLatLon(lat, lon string) (travel.LatLon, error) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return travel.LatLon{}, fmt.Errorf("invalid latitude %q", lat)
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return travel.LatLon{}, fmt.Errorf("invalid longitude %q", lon)
	}
	return travel.LatLon{Lat: la, Lon: lo}, nil
}

// optionalInt reads args[i] when present; 0 lets the service apply its default
func optionalInt(args []string, i int) (int, error) {
	if len(args) <= i {
		return 0, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[i])
	}
	return n, nil
}
