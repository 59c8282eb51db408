package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	appmw "github.com/briangreenhill/tripwise/internal/http/middleware"
	"github.com/briangreenhill/tripwise/internal/travel"
	"github.com/briangreenhill/tripwise/pkg/amadeus"
	"github.com/briangreenhill/tripwise/pkg/places"
)

// Server is the credential-holding proxy. Clients call it without keys; it
// forwards to the providers and relays their status and body unchanged.
type Server struct {
	Router    *chi.Mux
	Providers travel.Providers
	HTTP      travel.Doer
	Travel    *travel.Service
}

type ServerOptions struct {
	Providers travel.Providers
	HTTP      travel.Doer
	Travel    *travel.Service // answers /api/trip
	Logger    zerolog.Logger
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	}))
	r.Use(appmw.Instrument)

	s := &Server{Router: r, Providers: opts.Providers, HTTP: opts.HTTP, Travel: opts.Travel}
	if s.HTTP == nil {
		s.HTTP = http.DefaultClient
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("write health check response")
		}
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/flights/search", s.handleFlights)
		ar.Get("/hotels/search", s.handleHotels)
		ar.Get("/events", s.handlePredictHQ)
		ar.Get("/events/ticketmaster", s.handleTicketmaster)
		ar.Get("/weather", s.handleWeather)
		ar.Get("/places/nearby", s.handlePlaces)
		ar.Get("/trip", s.handleTrip)
	})

	return s
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, domain string, err error) {
	hlog.FromRequest(r).Warn().Err(err).Str("domain", domain).Msg("proxy request failed")
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: domain + "_failed", Message: err.Error()})
}

// relay builds the upstream request, sends it and copies status and body back
func (s *Server) relay(w http.ResponseWriter, r *http.Request, domain string, build func(ctx context.Context) (*http.Request, error)) {
	req, err := build(r.Context())
	if err != nil {
		s.fail(w, r, domain, err)
		return
	}

	resp, err := s.HTTP.Do(req)
	if err != nil {
		s.fail(w, r, domain, err)
		return
	}
	defer resp.Body.Close() //nolint:errcheck

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/json"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("domain", domain).Msg("relay body")
	}
}

func notConfigured(provider string) error {
	return fmt.Errorf("%s %w", provider, travel.ErrNotConfigured)
}

func intParam(r *http.Request, name string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func (s *Server) amadeusToken(ctx context.Context) (string, error) {
	if s.Providers.Amadeus == nil || s.Providers.AmadeusTokens == nil {
		return "", notConfigured("amadeus")
	}
	return s.Providers.AmadeusTokens.Token(ctx)
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.relay(w, r, "flights", func(ctx context.Context) (*http.Request, error) {
		token, err := s.amadeusToken(ctx)
		if err != nil {
			return nil, err
		}
		return s.Providers.Amadeus.FlightOffersRequest(ctx, token, amadeus.FlightQuery{
			Origin:        q.Get("origin"),
			Destination:   q.Get("destination"),
			DepartureDate: q.Get("departureDate"),
			ReturnDate:    q.Get("returnDate"),
			Adults:        intParam(r, "adults", 1),
		})
	})
}

func (s *Server) handleHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.relay(w, r, "hotels", func(ctx context.Context) (*http.Request, error) {
		token, err := s.amadeusToken(ctx)
		if err != nil {
			return nil, err
		}
		return s.Providers.Amadeus.HotelOffersRequest(ctx, token, amadeus.HotelQuery{
			CityCode: q.Get("cityCode"),
			CheckIn:  q.Get("checkIn"),
			CheckOut: q.Get("checkOut"),
			Adults:   intParam(r, "adults", 2),
		})
	})
}

func (s *Server) handlePredictHQ(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.relay(w, r, "events", func(ctx context.Context) (*http.Request, error) {
		if s.Providers.PredictHQ == nil {
			return nil, notConfigured("predicthq")
		}
		return s.Providers.PredictHQ.EventsRequest(ctx, q.Get("lat"), q.Get("lon"), q.Get("start"), q.Get("end"))
	})
}

func (s *Server) handleTicketmaster(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.relay(w, r, "ticketmaster", func(ctx context.Context) (*http.Request, error) {
		if s.Providers.Ticketmaster == nil {
			return nil, notConfigured("ticketmaster")
		}
		return s.Providers.Ticketmaster.EventsRequest(ctx, q.Get("lat"), q.Get("lon"))
	})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.relay(w, r, "weather", func(ctx context.Context) (*http.Request, error) {
		if s.Providers.OpenWeather == nil {
			return nil, notConfigured("openweather")
		}
		return s.Providers.OpenWeather.ForecastRequest(ctx, q.Get("lat"), q.Get("lon"))
	})
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	placeType := q.Get("type")
	if placeType == "" {
		placeType = places.DefaultType
	}
	s.relay(w, r, "places", func(ctx context.Context) (*http.Request, error) {
		if s.Providers.Places == nil {
			return nil, notConfigured("places")
		}
		return s.Providers.Places.NearbyRequest(ctx, q.Get("lat"), q.Get("lon"), placeType)
	})
}

var errBadCoords = errors.New("lat and lon must both be numbers")

// handleTrip answers with the trip intel the server itself gathers. Missing
// coordinates are allowed and yield empty lists.
func (s *Server) handleTrip(w http.ResponseWriter, r *http.Request) {
	if s.Travel == nil {
		s.fail(w, r, "trip", notConfigured("trip service"))
		return
	}

	q := r.URL.Query()
	trip := travel.Trip{
		Destination: q.Get("destination"),
		StartDate:   q.Get("start"),
		EndDate:     q.Get("end"),
		Persona:     q.Get("persona"),
	}

	if lat, lon := q.Get("lat"), q.Get("lon"); lat != "" || lon != "" {
		la, errLat := strconv.ParseFloat(lat, 64)
		lo, errLon := strconv.ParseFloat(lon, 64)
		if errLat != nil || errLon != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: errBadCoords.Error()})
			return
		}
		trip.Coords = &travel.LatLon{Lat: la, Lon: lo}
	}

	writeJSON(w, http.StatusOK, s.Travel.InitializeTrip(r.Context(), trip))
}
