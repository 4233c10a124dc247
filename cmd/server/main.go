package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"contacts/internal/audit"
	audithandler "contacts/internal/audit/handler"
	auditmetrics "contacts/internal/audit/metrics"
	auditmodels "contacts/internal/audit/models"
	auditstore "contacts/internal/audit/store"
	"contacts/internal/audit/stream"
	"contacts/internal/audit/timelinecache"
	contacthandler "contacts/internal/contact/handler"
	contactmodels "contacts/internal/contact/models"
	contactservice "contacts/internal/contact/service"
	contactstore "contacts/internal/contact/store"
	"contacts/internal/jwttoken"
	notificationhandler "contacts/internal/notification/handler"
	notificationmodels "contacts/internal/notification/models"
	notificationservice "contacts/internal/notification/service"
	notificationstore "contacts/internal/notification/store"
	"contacts/internal/persistence"
	"contacts/internal/persistence/memory"
	pgmapper "contacts/internal/persistence/postgres"
	"contacts/internal/persistence/schema"
	"contacts/internal/platform/config"
	"contacts/internal/platform/httpserver"
	"contacts/internal/platform/kafka"
	"contacts/internal/platform/logger"
	"contacts/internal/platform/metrics"
	"contacts/internal/platform/postgres"
	"contacts/internal/platform/redis"
	httptransport "contacts/internal/transport/http"
	userhandler "contacts/internal/user/handler"
	usermodels "contacts/internal/user/models"
	userservice "contacts/internal/user/service"
	userstore "contacts/internal/user/store"
	"contacts/pkg/platform/tx"
)

const shutdownTimeout = 10 * time.Second

// backend bundles the stores that share one storage engine.
type backend struct {
	mapper        persistence.Mapper
	txRunner      persistence.TxRunner
	contacts      contactservice.Store
	notifications notificationservice.Store
	entries       audit.EntryReader
	users         userservice.Store
	checks        map[string]httptransport.HealthCheck
	close         func() error
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := schema.NewRegistry()
	entities := append(contactmodels.Entities(), notificationmodels.Entities()...)
	entities = append(entities, &usermodels.User{}, &auditmodels.Entry{})
	if err := registry.Register(entities...); err != nil {
		return fmt.Errorf("register entities: %w", err)
	}

	be, err := openBackend(ctx, cfg, registry, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := be.close(); err != nil {
			log.Warn("failed to close storage", "error", err)
		}
	}()

	allocator, err := persistence.NewSnowflakeAllocator(cfg.SnowflakeNode)
	if err != nil {
		return fmt.Errorf("id allocator: %w", err)
	}
	uow := persistence.NewManager(registry, be.mapper, be.txRunner,
		persistence.WithAllocator(allocator),
		persistence.WithMetrics(persistence.NewMetrics()),
		persistence.WithTracer(otel.Tracer("contacts/persistence")),
	)

	auditMetrics := auditmetrics.New()
	httpMetrics := metrics.New()
	audit.NewInterceptor(registry, audit.WithLogger(log), audit.WithMetrics(auditMetrics)).Attach(uow)

	var timeline audit.TimelineProvider = audit.NewTimeline(contactstore.NewTimeline(be.contacts), be.entries, auditMetrics)

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache := timelinecache.New(timeline, redisClient.Client,
			timelinecache.WithTTL(cfg.TimelineCacheTTL),
			timelinecache.WithLogger(log),
			timelinecache.WithMetrics(auditMetrics),
		)
		cache.Attach(uow)
		timeline = cache
		be.checks["redis"] = redisClient.Health
		log.Info("timeline cache enabled", "ttl", cfg.TimelineCacheTTL)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		kc, err := kafka.NewClient(ctx, cfg.Kafka)
		if err != nil {
			return err
		}
		defer kc.Close()
		if err := kafka.EnsureTopic(ctx, kc, cfg.Kafka); err != nil {
			return err
		}
		stream.New(kc, cfg.Kafka.Topic,
			stream.WithLogger(log),
			stream.WithMetrics(auditMetrics),
		).Attach(uow)
		be.checks["kafka"] = kc.Ping
		log.Info("audit stream enabled", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "contacts", "contacts-api")
	jwtValidator := jwttoken.NewJWTServiceAdapter(jwtService)

	contacts := contactservice.New(be.contacts, uow, contactservice.WithLogger(log))
	notifications := notificationservice.New(be.notifications, uow, notificationservice.WithLogger(log))
	users := userservice.New(be.users, uow, jwtService,
		userservice.WithLogger(log),
		userservice.WithMetrics(httpMetrics),
		userservice.WithTokenTTL(cfg.JWTTTL),
	)
	audits := audit.NewService(be.entries, timeline)

	router := httptransport.NewRouter(log, httpMetrics, be.checks,
		userhandler.New(users, log, jwtValidator),
		contacthandler.New(contacts, log, jwtValidator),
		notificationhandler.New(notifications, log, jwtValidator),
		audithandler.New(audits, log, jwtValidator),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting contacts", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// openBackend uses Postgres when DATABASE_URL is set and the in-memory
// engine otherwise.
func openBackend(ctx context.Context, cfg config.Server, registry *schema.Registry, log *slog.Logger) (*backend, error) {
	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory storage")
		return memoryBackend(registry)
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info("connected to postgres")
	return postgresBackend(db), nil
}

func memoryBackend(registry *schema.Registry) (*backend, error) {
	db := memory.New()
	contacts, err := contactstore.NewInMemory(db, registry)
	if err != nil {
		return nil, err
	}
	notifications, err := notificationstore.NewInMemory(db, registry)
	if err != nil {
		return nil, err
	}
	entries, err := auditstore.NewInMemory(db, registry)
	if err != nil {
		return nil, err
	}
	users, err := userstore.NewInMemory(db, registry)
	if err != nil {
		return nil, err
	}
	return &backend{
		mapper:        db,
		txRunner:      db,
		contacts:      contacts,
		notifications: notifications,
		entries:       entries,
		users:         users,
		checks:        map[string]httptransport.HealthCheck{},
		close:         func() error { return nil },
	}, nil
}

func postgresBackend(db *sql.DB) *backend {
	return &backend{
		mapper:        pgmapper.NewMapper(db),
		txRunner:      tx.NewRunner(db),
		contacts:      contactstore.NewPostgres(db),
		notifications: notificationstore.NewPostgres(db),
		entries:       auditstore.NewPostgres(db),
		users:         userstore.NewPostgres(db),
		checks:        map[string]httptransport.HealthCheck{"database": db.PingContext},
		close:         db.Close,
	}
}
