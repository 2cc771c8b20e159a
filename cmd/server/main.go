package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/solvely-pub/internal/config"
	"github.com/iliyamo/solvely-pub/internal/database"
	"github.com/iliyamo/solvely-pub/internal/handler"
	"github.com/iliyamo/solvely-pub/internal/logging"
	"github.com/iliyamo/solvely-pub/internal/middleware"
	"github.com/iliyamo/solvely-pub/internal/queue"
	"github.com/iliyamo/solvely-pub/internal/repository"
	"github.com/iliyamo/solvely-pub/internal/router"
	"github.com/iliyamo/solvely-pub/internal/service"
	"github.com/iliyamo/solvely-pub/internal/utils"
	"github.com/iliyamo/solvely-pub/internal/version"
)

func main() {
	_ = godotenv.Load() // .env is optional

	cfg := config.Load()
	ver := version.Resolve(cfg.Version)

	log, closeLogs := logging.New(logging.Config{
		Service:     "solvely-pub",
		Version:     ver,
		Level:       cfg.LogLevel,
		Dir:         cfg.LogDir,
		Development: cfg.IsDevelopment(),
	})
	defer closeLogs()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := database.Open(ctx, database.Options{
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer db.Close()
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("migrations")
		}
	}
	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("connected to database")

	// Redis (optional)
	rdb := connectRedis(ctx, log)
	if rdb != nil {
		defer rdb.Close()
	}

	// Audit events (optional)
	var events service.EventPublisher = service.NopPublisher{}
	if cfg.AuditEnabled {
		pub := queue.NewPublisher(cfg.RabbitURL, log)
		defer pub.Close()
		events = pub
		log.Info().Str("queue", queue.LoginQueueName).Msg("login audit enabled")
	}

	// Services
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	cipher := utils.AESCipher{}
	auth := service.NewAuthService(repository.NewUserRepo(db), cipher, tokens, events)

	// HTTP
	e := router.New(log)
	router.RegisterRoutes(e,
		handler.NewToolsHandler(cipher),
		handler.NewSystemHandler(service.NewHealthProber(cfg.HealthcheckURL), ver),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)
	router.RegisterUser(e,
		handler.NewUserHandler(auth),
		tokens,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Str("version", ver).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Dur("grace", cfg.ShutdownGrace).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("shutdown")
	}
}

func connectRedis(ctx context.Context, log zerolog.Logger) *redis.Client {
	rcfg := config.LoadRedisConfig()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rdb, err := config.NewRedisClient(ctx, rcfg)
	if err != nil {
		log.Warn().Err(err).Str("addr", rcfg.Addr).Msg("redis unavailable; using in-process rate limit, no cache")
		return nil
	}
	if rdb != nil {
		log.Info().Str("addr", rcfg.Addr).Msg("connected to redis")
	}
	return rdb
}
