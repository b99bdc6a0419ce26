package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/revolck-lab/api-advancemais-sub001/internal/auth"
	"github.com/revolck-lab/api-advancemais-sub001/internal/cache"
	"github.com/revolck-lab/api-advancemais-sub001/internal/config"
	"github.com/revolck-lab/api-advancemais-sub001/internal/event"
	"github.com/revolck-lab/api-advancemais-sub001/internal/handler"
	"github.com/revolck-lab/api-advancemais-sub001/internal/repository/postgres"
	"github.com/revolck-lab/api-advancemais-sub001/internal/service"
	"github.com/revolck-lab/api-advancemais-sub001/migrations"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/database"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/health"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/kafka"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/logger"
)

// App wires configuration, infrastructure and HTTP transport together.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	redis    *redis.Client
	producer *kafka.Producer
	server   *http.Server
}

// New builds the application: connects to PostgreSQL, applies migrations,
// connects to Redis and Kafka, and mounts the router.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New(cfg.ServiceName, cfg.LogLevel)

	pool, err := database.NewPostgresPool(ctx, cfg.PostgresPoolConfig(), log)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		pool.Close()
		return nil, err
	}
	database.RegisterPoolMetrics(pool, cfg.ServiceName)

	// Redis only backs the CMS cache; running without it is acceptable.
	redisClient, err := database.NewRedisClient(ctx, cfg.RedisClientConfig())
	if err != nil {
		log.Warn("redis unavailable, content cache disabled", slog.String("error", err.Error()))
		redisClient = nil
	}

	var producer *kafka.Producer
	publisher := event.NewPublisher(nil, log)
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.KafkaProducerConfig(), log)
		publisher = event.NewPublisher(producer, log)
	}

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	bannerRepo := postgres.NewBannerRepository(pool)

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	codec := auth.NewCodec(cfg.JWT.Secret, cfg.JWT.TTL)

	authSvc := service.NewAuthService(userRepo, companyRepo, roleRepo, addressRepo,
		hasher, codec, publisher, log)
	jobSvc := service.NewJobService(jobRepo, subRepo, log)
	subSvc := service.NewSubscriptionService(subRepo, planRepo, jobRepo, publisher, log)
	contentSvc := service.NewContentService(bannerRepo, cache.New(redisClient), log)

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if redisClient != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	if producer != nil {
		healthHandler.Register("kafka", producer.Ping)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Logger:         log,
		ServiceName:    cfg.ServiceName,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Auth:           handler.NewAuthHandler(authSvc, log),
		Jobs:           handler.NewJobHandler(jobSvc, log),
		Subscriptions:  handler.NewSubscriptionHandler(subSvc, log),
		Content:        handler.NewContentHandler(contentSvc, log),
		AuthService:    authSvc,
		Health:         healthHandler,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:      cfg,
		logger:   log,
		pool:     pool,
		redis:    redisClient,
		producer: producer,
		server:   server,
	}, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening",
			slog.String("addr", a.server.Addr),
			slog.String("environment", a.cfg.Environment),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.close()
	return err
}

func (a *App) close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("closing kafka producer", slog.String("error", err.Error()))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("closing redis client", slog.String("error", err.Error()))
		}
	}
	a.pool.Close()
}
