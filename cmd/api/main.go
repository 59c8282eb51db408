// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/tripwise/cache"
	"github.com/briangreenhill/tripwise/internal/config"
	"github.com/briangreenhill/tripwise/internal/http/routes"
	"github.com/briangreenhill/tripwise/internal/travel"
)

func main() {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "tripwise-api").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn().Err(err).Msg("every lookup will come back empty")
	}

	srv, err := newServer(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("build server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting api")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}

// newServer wires providers, the trip service and the router. The server
// holds every credential; its own adapters go direct, never through a proxy.
func newServer(cfg *config.Config, logger zerolog.Logger) (*http.Server, error) {
	hc := travel.NewHTTPClient(cfg, logger)
	providers, err := travel.ProvidersFromConfig(cfg, hc.HTTPClient())
	if err != nil {
		return nil, fmt.Errorf("providers: %w", err)
	}

	svc, err := travel.New(travel.Options{
		Providers:  providers,
		HTTP:       hc,
		Cache:      cache.NewStore(cache.WithMaxEntries(cfg.Cache.MaxEntries)),
		Logger:     logger,
		TTL:        cfg.Cache.TTL,
		WeatherTTL: cfg.Cache.WeatherTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("travel service: %w", err)
	}

	s := routes.New(routes.ServerOptions{
		Providers: providers,
		HTTP:      hc,
		Travel:    svc,
		Logger:    logger,
	})

	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}
