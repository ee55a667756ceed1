package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climdex/internal/config"
	"climdex/internal/indices"
)

func testServerConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:         8080,
			MaxBodyBytes: 1 << 20,
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Compute:   testComputeConfig(),
	}
}

func newTestServer(t *testing.T, cfg *config.Config, registry *prometheus.Registry) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	calc := indices.NewCalculator(nil, nil, logger)
	return NewServer(cfg, calc, registry, logger)
}

func TestServerHealth(t *testing.T) {
	srv := newTestServer(t, testServerConfig(), nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestServerMetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()
	srv := newTestServer(t, testServerConfig(), registry)

	// Drive a computation so the counters exist, then scrape.
	w := post(t, srv.router, "/api/v1/indices/spi", SPIRequest{
		Values:       wireSeries(testPrecip(10)),
		Scale:        3,
		Distribution: "gamma",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	scrape := httptest.NewRecorder()
	srv.Router().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), "climdex_computations_total")
}

func TestServerNoMetricsWithoutRegistry(t *testing.T) {
	srv := newTestServer(t, testServerConfig(), nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServerRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, testServerConfig(), nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestServerRateLimit(t *testing.T) {
	cfg := testServerConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.01, Burst: 1}
	srv := newTestServer(t, cfg, nil)

	first := httptest.NewRecorder()
	srv.Router().ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	srv.Router().ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestServerUnknownRoute(t *testing.T) {
	srv := newTestServer(t, testServerConfig(), nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/indices/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
