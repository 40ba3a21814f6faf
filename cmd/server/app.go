package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dealModels "github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/models"
	dealStore "github.com/nraford7/matchmaker-gem-68-sub000/internal/deal/store"
	directoryModels "github.com/nraford7/matchmaker-gem-68-sub000/internal/directory/models"
	directoryStore "github.com/nraford7/matchmaker-gem-68-sub000/internal/directory/store"
	jwttoken "github.com/nraford7/matchmaker-gem-68-sub000/internal/jwt_token"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/platform/config"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/platform/kafka"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/platform/logger"
	platformMetrics "github.com/nraford7/matchmaker-gem-68-sub000/internal/platform/metrics"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/platform/postgres"
	platformRedis "github.com/nraford7/matchmaker-gem-68-sub000/internal/platform/redis"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/adapters"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/events"
	regHandler "github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/handler"
	regMetrics "github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/metrics"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/ports"
	regService "github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/service"
	regStore "github.com/nraford7/matchmaker-gem-68-sub000/internal/registration/store"
	"github.com/nraford7/matchmaker-gem-68-sub000/internal/visibility"
	visHandler "github.com/nraford7/matchmaker-gem-68-sub000/internal/visibility/handler"
	visMetrics "github.com/nraford7/matchmaker-gem-68-sub000/internal/visibility/metrics"
	id "github.com/nraford7/matchmaker-gem-68-sub000/pkg/domain"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/circuit"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/httputil"
	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/platform/middleware/requesttime"
)

// demoOwnerID uploads the seeded deals so local runs have a known owner.
var demoOwnerID = id.UserID(uuid.MustParse("00000000-0000-4000-8000-000000000001"))

type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

type app struct {
	log     *slog.Logger
	router  http.Handler
	checks  []healthCheck
	closers []func()

	// seeded holds the demo deals when running on in-memory stores.
	seeded []*dealModels.Deal
}

// Close releases resources in reverse acquisition order. Safe to call twice.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

type stores struct {
	deals         dealStore.Lookup
	registrations regService.Store
	directory     adapters.UserFinder
}

func buildApp(ctx context.Context, cfg config.Config, log *slog.Logger, reg *prometheus.Registry) (*app, error) {
	a := &app{log: log}
	st, err := a.buildStores(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	publisher, err := a.buildPublisher(ctx, cfg.Kafka, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	dealPort := adapters.NewDealAdapter(st.deals)
	serviceOpts := []regService.Option{
		regService.WithLogger(log),
		regService.WithMetrics(regMetrics.NewWith(reg)),
	}
	if publisher != nil {
		serviceOpts = append(serviceOpts, regService.WithPublisher(publisher))
	}
	registrations, err := regService.New(st.registrations, dealPort, adapters.NewDirectoryAdapter(st.directory), serviceOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}

	breaker := circuit.New("registration-lookup",
		circuit.WithFailureThreshold(cfg.Gate.BreakerFailures),
		circuit.WithSuccessThreshold(cfg.Gate.BreakerSuccesses),
		circuit.WithCooldown(cfg.Gate.BreakerCooldown),
	)
	gate, err := visibility.NewGate(dealPort, registrations,
		visibility.WithLogger(log),
		visibility.WithMetrics(visMetrics.NewWith(reg)),
		visibility.WithBreaker(breaker),
		visibility.WithBatchConcurrency(cfg.Gate.BatchConcurrency),
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	validator := jwttoken.NewJWTServiceAdapter(
		jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(requesttime.Middleware)
	r.Use(platformMetrics.NewWith(reg).Middleware)

	r.Get("/healthz", a.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	visHandler.New(gate, validator, log).Register(r)
	regHandler.New(registrations, validator, log).Register(r)

	a.router = r
	return a, nil
}

func (a *app) buildStores(ctx context.Context, cfg config.Config, log *slog.Logger) (*stores, error) {
	var st stores
	if cfg.Postgres.Enabled() {
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		a.checks = append(a.checks, healthCheck{name: "postgres", check: db.PingContext})
		if cfg.Postgres.Migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				return nil, err
			}
		}
		st = postgresStores(db)
		log.InfoContext(ctx, "using postgres stores")
	} else {
		st, a.seeded = memoryStores(ctx, cfg.Server.SeedDemoData, log)
	}

	redisClient, err := platformRedis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if redisClient != nil {
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		a.checks = append(a.checks, healthCheck{name: "redis", check: redisClient.Health})
		st.deals = dealStore.NewRedisCache(redisClient.Client, st.deals, cfg.Redis.DealCacheTTL, log)
		log.InfoContext(ctx, "deal cache enabled", "ttl", cfg.Redis.DealCacheTTL.String())
	}
	return &st, nil
}

func postgresStores(db *sql.DB) stores {
	return stores{
		deals:         dealStore.NewPostgres(db),
		registrations: regStore.NewPostgres(db),
		directory:     directoryStore.NewPostgres(db),
	}
}

func memoryStores(ctx context.Context, seed bool, log *slog.Logger) (stores, []*dealModels.Deal) {
	deals := dealStore.NewInMemory()
	directory := directoryStore.NewInMemory()
	var seeded []*dealModels.Deal
	if seed {
		seeded = dealStore.SeedDemoDeals(deals, demoOwnerID)
		_ = directory.Save(ctx, directoryModels.User{ID: demoOwnerID, Name: "Demo Owner", Email: "owner@example.com"})
		log.InfoContext(ctx, "seeded demo deals", "count", len(seeded), "owner_id", demoOwnerID.String())
	}
	return stores{
		deals:         deals,
		registrations: regStore.NewInMemory(),
		directory:     directory,
	}, seeded
}

func (a *app) buildPublisher(ctx context.Context, cfg config.Kafka, log *slog.Logger) (ports.EventPublisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	producer, err := kafka.NewProducer(cfg.Brokers, cfg.ClientID, log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, producer.Close)
	a.checks = append(a.checks, healthCheck{name: "kafka", check: producer.Ping})

	topicCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := kafka.EnsureTopics(topicCtx, producer.Client(), cfg.Partitions, cfg.ReplicationFactor, cfg.RegistrationTopic); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "registration events enabled", "topic", cfg.RegistrationTopic)
	return events.NewPublisher(producer, cfg.RegistrationTopic), nil
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Checks: map[string]string{}}
	var failed error
	for _, hc := range a.checks {
		if err := hc.check(ctx); err != nil {
			resp.Checks[hc.name] = err.Error()
			failed = errors.Join(failed, err)
			continue
		}
		resp.Checks[hc.name] = "ok"
	}
	if failed != nil {
		resp.Status = "degraded"
		a.log.WarnContext(ctx, "health check failed", logger.Err(failed))
		httputil.WriteJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
