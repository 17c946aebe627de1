package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"quod/internal/audit"
	"quod/internal/platform/config"
	"quod/internal/platform/database"
	"quod/internal/platform/httpserver"
	"quod/internal/platform/logger"
	platformredis "quod/internal/platform/redis"
	"quod/internal/verification/fraud"
	"quod/internal/verification/handler"
	"quod/internal/verification/imaging"
	vmetrics "quod/internal/verification/metrics"
	"quod/internal/verification/notify"
	"quod/internal/verification/service"
	"quod/internal/verification/store"
	"quod/migrations"
	"quod/pkg/platform/middleware/device"
	"quod/pkg/platform/middleware/metadata"
	"quod/pkg/platform/middleware/requestid"
	"quod/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Result store: postgres when configured, in-memory otherwise.
	var results store.ResultStore
	var db *sql.DB
	if cfg.Database.URL != "" {
		var err error
		db, err = database.Open(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.Migrate(db, migrations.FS); err != nil {
			return err
		}
		results = store.NewPostgres(db)
		log.Info("using postgres result store")
	} else {
		results = store.NewInMemoryStore()
		log.Info("using in-memory result store")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		results = store.NewCachedStore(results, redisClient.Client, cfg.Redis.CacheTTL, log)
		log.Info("result store caching enabled", "ttl", cfg.Redis.CacheTTL)
	}

	auditOpts := []audit.PublisherOption{
		audit.WithAsyncBuffer(256),
		audit.WithLogger(log),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer sink.Close()
		auditOpts = append(auditOpts, audit.WithSink(sink))
		log.Info("audit kafka sink enabled", "topic", cfg.Kafka.Topic)
	}
	auditor := audit.NewPublisher(audit.NewInMemoryStore(), auditOpts...)
	defer auditor.Close()

	validator := imaging.NewValidator(imaging.Config{
		MaxFileSize:    cfg.Image.MaxFileSize,
		AllowedFormats: cfg.Image.AllowedFormats,
		MinResolution:  cfg.Image.MinResolution,
	}, nil)
	assessor := fraud.NewSimulatedAssessor(fraud.NewSeededSource(cfg.Pipeline.FraudSeed), log)
	dispatcher := notify.NewHTTPDispatcher(notify.Config{
		FraudURL:   cfg.Notify.FraudURL,
		SuccessURL: cfg.Notify.SuccessURL,
		Timeout:    cfg.Notify.Timeout,
	}, log)

	svc, err := service.New(validator, assessor, dispatcher, results,
		service.WithAuditPublisher(auditor),
		service.WithMetrics(vmetrics.New()),
		service.WithLogger(log),
		service.WithConfig(service.Config{
			AssessTimeout: cfg.Pipeline.AssessTimeout,
			NotifyTimeout: cfg.Pipeline.NotifyTimeout,
		}),
	)
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(requestid.Middleware)
	router.Use(requesttime.Middleware)
	router.Use(metadata.ClientMetadata)
	router.Use(device.Middleware)

	handler.New(svc, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", healthz(db, redisClient))

	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting quod verification service", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// healthz reports liveness of the configured backends. Optional backends that
// are absent do not fail the check.
func healthz(db *sql.DB, redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				http.Error(w, "cache unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
