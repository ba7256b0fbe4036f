// Package feeapi exposes the fee-simulation core over HTTP: submit a
// transcript for processing, fetch a persisted run, inspect an
// address's stake or summary within one persisted run, and subscribe to
// a run's published events.
package feeapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/genlayerlabs/fee-simulator/gateway/middleware"
	obsmetrics "github.com/genlayerlabs/fee-simulator/observability/metrics"
	"github.com/genlayerlabs/fee-simulator/storage"
	"github.com/genlayerlabs/fee-simulator/stream"
)

// Server wires the fee-simulation core to chi, behind the ambient
// gateway middleware stack.
type Server struct {
	store       *storage.Store
	nonces      *storage.NonceCache
	broadcaster *stream.Broadcaster
	metrics     *obsmetrics.Metrics
	logger      *slog.Logger
	auth        *middleware.Authenticator
	rateLimit   *middleware.RateLimiter
	observe     *middleware.Observability
}

// NewServer constructs a Server; registry backs both the ambient HTTP
// metrics (gateway/middleware) and the domain metrics
// (observability/metrics) so /metrics exposes both under one handler.
func NewServer(
	store *storage.Store,
	nonces *storage.NonceCache,
	broadcaster *stream.Broadcaster,
	registry *prometheus.Registry,
	logger *slog.Logger,
	authCfg middleware.AuthConfig,
	rateLimits map[string]middleware.RateLimit,
) *Server {
	stdLogger := slog.NewLogLogger(logger.Handler(), slog.LevelInfo)
	return &Server{
		store:       store,
		nonces:      nonces,
		broadcaster: broadcaster,
		metrics:     obsmetrics.New(registry),
		logger:      logger,
		auth:        middleware.NewAuthenticator(authCfg, stdLogger),
		rateLimit:   middleware.NewRateLimiter(rateLimits, stdLogger),
		observe: middleware.NewObservability(middleware.ObservabilityConfig{
			ServiceName:   "feesimd",
			MetricsPrefix: "feeapi",
			LogRequests:   true,
			Enabled:       true,
		}, stdLogger),
	}
}

// Router assembles the full chi router: CORS, per-route observability
// and rate limiting, bearer-token auth on the write path, and the
// domain handlers.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORS(middleware.CORSConfig{}))

	r.Get("/metrics", s.observe.MetricsHandler().ServeHTTP)

	r.Route("/v1", func(r chi.Router) {
		r.With(
			s.observe.Middleware("submit_transaction"),
			s.rateLimit.Middleware("submit_transaction"),
			s.auth.Middleware("transactions:write"),
			replayGuard(s.nonces),
		).Post("/transactions", s.handleSubmitTransaction)

		r.With(
			s.observe.Middleware("get_run"),
			s.rateLimit.Middleware("get_run"),
		).Get("/runs/{run_id}", s.handleGetRun)

		r.With(
			s.observe.Middleware("get_run_stream"),
		).Get("/runs/{run_id}/stream", s.handleStreamRun)

		r.With(
			s.observe.Middleware("get_address_stake"),
			s.rateLimit.Middleware("get_address"),
		).Get("/addresses/{addr}/stake", s.handleAddressStake)

		r.With(
			s.observe.Middleware("get_address_summary"),
			s.rateLimit.Middleware("get_address"),
		).Get("/addresses/{addr}/summary", s.handleAddressSummary)
	})

	return r
}
