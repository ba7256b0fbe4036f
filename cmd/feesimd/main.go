// Command feesimd serves the fee-simulation HTTP API.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/glebarez/sqlite"

	"github.com/genlayerlabs/fee-simulator/config"
	"github.com/genlayerlabs/fee-simulator/gateway/middleware"
	"github.com/genlayerlabs/fee-simulator/observability/logging"
	feeotel "github.com/genlayerlabs/fee-simulator/observability/otel"
	"github.com/genlayerlabs/fee-simulator/services/feeapi"
	"github.com/genlayerlabs/fee-simulator/storage"
	"github.com/genlayerlabs/fee-simulator/stream"
)

func main() {
	configPath := flag.String("config", "./feesimd.toml", "path to the feesimd TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.SetupWithFile("feesimd", cfg.Environment, cfg.Observability.LogFilePath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := feeotel.Init(ctx, feeotel.Config{
		ServiceName: "feesimd",
		Environment: cfg.Environment,
		Endpoint:    cfg.Observability.OTLPEndpoint,
		Insecure:    true,
		Metrics:     cfg.Observability.OTLPEndpoint != "",
		Traces:      cfg.Observability.OTLPEndpoint != "",
	})
	if err != nil {
		logger.Error("failed to initialise telemetry", "error", err)
		os.Exit(1)
	}
	defer shutdownTelemetry(context.Background())

	if cfg.Database.Driver != "postgres" {
		if err := storage.CheckSQLiteIntegrity(cfg.Database.DSN); err != nil {
			logger.Error("sqlite integrity check failed", "error", err)
			os.Exit(1)
		}
	}

	db, err := openDatabase(cfg.Database)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	store, err := storage.NewStore(db)
	if err != nil {
		logger.Error("failed to initialise run storage", "error", err)
		os.Exit(1)
	}

	nonceDB, err := storage.NewLevelDB(cfg.DataDir + "/nonces")
	if err != nil {
		logger.Error("failed to open nonce cache", "error", err)
		os.Exit(1)
	}
	defer nonceDB.Close()
	nonces := storage.NewNonceCache(nonceDB)

	broadcaster := stream.NewBroadcaster()
	registry := prometheus.NewRegistry()

	server := feeapi.NewServer(
		store,
		nonces,
		broadcaster,
		registry,
		logger,
		middleware.AuthConfig{
			Enabled:    cfg.Auth.Enabled,
			HMACSecret: cfg.Auth.HMACSecret,
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
		},
		map[string]middleware.RateLimit{
			"submit_transaction": {RatePerSecond: cfg.RateLimit.RequestsPerSecond, Burst: cfg.RateLimit.Burst},
			"get_run":            {RatePerSecond: cfg.RateLimit.RequestsPerSecond * 2, Burst: cfg.RateLimit.Burst * 2},
			"get_address":        {RatePerSecond: cfg.RateLimit.RequestsPerSecond * 2, Burst: cfg.RateLimit.Burst * 2},
		},
	)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("feesimd listening", "address", cfg.ListenAddress)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
}

func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	}
}
