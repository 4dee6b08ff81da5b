package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"student-manager-api/config"
	"student-manager-api/internal/application/ports"
	"student-manager-api/internal/application/services"
	domainUser "student-manager-api/internal/domain/user"
	"student-manager-api/internal/infrastructure/db/postgres"
	"student-manager-api/internal/infrastructure/db/postgres/student"
	"student-manager-api/internal/infrastructure/db/postgres/user"
	"student-manager-api/internal/infrastructure/jwt"
	"student-manager-api/internal/infrastructure/metrics"
	"student-manager-api/internal/infrastructure/mq"
	"student-manager-api/internal/infrastructure/password"
	"student-manager-api/internal/infrastructure/ratelimit"
	"student-manager-api/internal/interface/api/rest"
	"student-manager-api/internal/interface/api/rest/middleware"
	"student-manager-api/internal/interface/api/rest/validator"
	"student-manager-api/pkg/rmqconsumer"
)

const rateLimitPrefix = "ratelimit:auth:"

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	redis      *redis.Client
	limiter    ratelimit.Limiter
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	events     ports.EventPublisher
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func newLogger(env string) (*zap.Logger, error) {
	switch env {
	case gin.ReleaseMode, "prod", "production":
		return zap.NewProduction()
	default:
		return zap.NewDevelopment()
	}
}

func NewApp(ctx context.Context) (*App, error) {
	// config
	envErr := godotenv.Load(".env")
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// logger
	logger, err := newLogger(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize zap logger: %w", err)
	}
	if envErr != nil {
		logger.Warn("no .env file loaded, using process environment", zap.Error(envErr))
	}

	// metrics
	mCounter := metrics.NewCounter(prometheus.DefaultRegisterer)

	// router
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case cfg.App.Env == gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))
	r.NoRoute(rest.NoRoute)

	// httpServer
	httpSrv := &http.Server{
		Addr:    cfg.App.Host + ":" + cfg.App.Port,
		Handler: r,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		return nil, fmt.Errorf("DB config error: %w", err)
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn, cfg.DB.MaxConns)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err = postgres.Migrate(ctx, logger, dbPool); err != nil {
			dbPool.Close()
			return nil, err
		}
	}

	// rate limiter
	var (
		rdb     *redis.Client
		limiter ratelimit.Limiter
	)
	if cfg.Redis.Enabled {
		rdb = ratelimit.NewRedisClient(ctx, logger, cfg.Redis)
	}
	if rdb != nil {
		limiter = ratelimit.NewRedis(rdb, rateLimitPrefix, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	} else {
		limiter = ratelimit.NewMemory(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	a := &App{
		logger:   logger,
		cfg:      cfg,
		db:       dbPool,
		redis:    rdb,
		limiter:  limiter,
		httpSrv:  httpSrv,
		router:   r,
		mCounter: mCounter,
		events:   mq.Discard{},
	}

	if !cfg.MQ.Enabled {
		logger.Info("rabbitMQ disabled, student events are discarded")
		return a, nil
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("RabbitMQ config error: %w", err)
	}
	rbMQ := mq.New(cfg.MQ, logger, mCounter)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	a.mq, a.events = rbMQ, rbMQ
	if err = rbMQ.Init(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed init rabbitMQ: %w", err)
	}

	// rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	if err = rmqConsumer.Init(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}
	a.mqConsumer = rmqConsumer

	return a, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.mq != nil {
		a.mq.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run serves HTTP and drives the event workers under one context until a
// signal arrives or one of them fails.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.events.PublisherWorker(ctx)
		return nil
	})

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.App.ShutdownTimeout)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	userRepo := user.NewRepository(a.db)
	studentRepo := student.NewRepository(a.db)

	// security
	tokens := jwt.New(a.cfg.App.JWTSecret)
	hasher := password.New()
	policy := domainUser.NewPolicy(a.cfg.Auth.RolesEnabled)
	if !policy.RolesEnabled() {
		a.logger.Warn("role checks disabled, user administration is limited to self-scoped operations")
	}

	// services
	dbTimeout := a.cfg.DB.QueryTimeout
	authService := services.NewAuthService(userRepo, hasher, tokens, a.mCounter, dbTimeout)
	userService := services.NewUserService(userRepo, hasher, policy, a.mCounter, dbTimeout)
	studentService := services.NewStudentService(studentRepo, policy, a.events, a.mCounter, dbTimeout)

	// middleware
	authMW := middleware.AuthMiddleware(tokens)
	rateLimitMW := middleware.RateLimit(a.limiter, a.logger, a.mCounter)
	v := validator.New()

	// controllers
	rest.NewAuthController(a.router, a.logger, authService, v, authMW, rateLimitMW)
	rest.NewStudentController(a.router, a.logger, studentService, v, authMW)
	rest.NewUserController(a.router, a.logger, userService, v, authMW)
	rest.NewHealthController(a.router, a.logger, a.db, promhttp.Handler())
}

func (a *App) Logger() *zap.Logger { return a.logger }
