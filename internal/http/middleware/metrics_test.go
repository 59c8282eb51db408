package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/briangreenhill/tripwise/internal/metrics"
)

func TestInstrumentLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Instrument)
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/quiet", func(w http.ResponseWriter, r *http.Request) {})

	ok := metrics.HTTPRequests.WithLabelValues("/things/{id}", "418")
	quiet := metrics.HTTPRequests.WithLabelValues("/quiet", "200")
	missing := metrics.HTTPRequests.WithLabelValues("other", "404")
	beforeOK, beforeQuiet, beforeMissing := testutil.ToFloat64(ok), testutil.ToFloat64(quiet), testutil.ToFloat64(missing)

	for _, p := range []string{"/things/1", "/things/2", "/quiet", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, beforeOK+2, testutil.ToFloat64(ok))
	assert.Equal(t, beforeQuiet+1, testutil.ToFloat64(quiet))
	assert.Equal(t, beforeMissing+1, testutil.ToFloat64(missing))
}
