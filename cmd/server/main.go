package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mintgate/internal/audit"
	"mintgate/internal/blobstore"
	"mintgate/internal/compliance"
	compliancehandler "mintgate/internal/compliance/handler"
	compliancemetrics "mintgate/internal/compliance/metrics"
	"mintgate/internal/consent"
	consenthandler "mintgate/internal/consent/handler"
	"mintgate/internal/platform/config"
	"mintgate/internal/platform/httpserver"
	"mintgate/internal/platform/jwt"
	"mintgate/internal/platform/logger"
	"mintgate/internal/platform/middleware"
	redisplatform "mintgate/internal/platform/redis"
)

// main wires the compliance engine, the consent ledger, and the HTTP surface
// together. Business logic lives in the internal packages; everything here is
// construction and lifecycle.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, storeHealth, cleanup, err := newBlobStore(ctx, cfg, log)
	if err != nil {
		log.Error("blob store init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	auditStore := audit.NewInMemoryStore()
	auditPublisher, auditWorker := audit.NewPipeline(auditStore, 256)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	ledger, err := consent.NewLedger(ctx, store,
		consent.WithLogger(log),
		consent.WithTTL(cfg.ConsentTTL),
		consent.WithAuditPublisher(auditPublisher),
	)
	if err != nil {
		log.Error("consent ledger init failed", "error", err)
		os.Exit(1)
	}

	engine, err := compliance.New(ledger,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliancemetrics.New()),
		compliance.WithAuditPublisher(auditPublisher),
		compliance.WithTimeout(cfg.EvaluateTimeout),
	)
	if err != nil {
		log.Error("compliance engine init failed", "error", err)
		os.Exit(1)
	}

	validator := jwt.NewValidator(cfg.JWTSigningKey)
	router := newRouter(log, validator, engine, ledger, storeHealth)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting mintgate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// newBlobStore picks the consent persistence backend: postgres when a DSN is
// configured, then redis, falling back to process memory for development.
// The returned health func is nil for the in-memory backend.
func newBlobStore(ctx context.Context, cfg config.Server, log *slog.Logger) (blobstore.Store, func(context.Context) error, func(), error) {
	if cfg.PostgresDSN != "" {
		store, err := blobstore.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("consent ledger persistence", "backend", "postgres")
		return store, store.Health, func() { _ = store.Close() }, nil
	}

	if cfg.RedisURL != "" {
		client, err := redisplatform.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("consent ledger persistence", "backend", "redis")
		return blobstore.NewRedisStore(client.Client), client.Health, func() { _ = client.Close() }, nil
	}

	log.Warn("consent ledger persistence", "backend", "memory",
		"note", "records are lost on restart")
	return blobstore.NewInMemoryStore(), nil, func() {}, nil
}

func newRouter(log *slog.Logger, validator middleware.JWTValidator, engine *compliance.Engine, ledger *consent.Ledger, storeHealth func(context.Context) error) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if storeHealth != nil {
			if err := storeHealth(req.Context()); err != nil {
				log.WarnContext(req.Context(), "health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"degraded"}`))
				return
			}
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, log))
		compliancehandler.New(engine, log).Register(r)
		consenthandler.New(ledger, log).Register(r)
	})

	return r
}
