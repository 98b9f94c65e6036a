package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/gamevault/license-server/internal/api"
	"github.com/gamevault/license-server/internal/core/ports"
	"github.com/gamevault/license-server/internal/core/service"
	mongodb "github.com/gamevault/license-server/internal/infrastructure/db/mongo"
	redisdb "github.com/gamevault/license-server/internal/infrastructure/db/redis"
	"github.com/gamevault/license-server/internal/infrastructure/retention"
	"github.com/gamevault/license-server/internal/pkg/config"
	"github.com/gamevault/license-server/internal/pkg/ratelimit"
	"github.com/gamevault/license-server/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}
	auditRepo := mongodb.NewAuditRepository(db)
	blockRepo := mongodb.NewIPBlockRepository(db)

	var rdb *goredis.Client
	var limiter ports.LoginLimiter = ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow)
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()
		limiter = redisdb.NewSlidingWindowLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	signer := service.NewLicenseSigner(cfg.LicenseSigningSecret)
	authService := service.NewAuthService(userRepo, auditRepo, signer, cfg.JWTSecret, cfg.SessionTTL, log)
	userService := service.NewUserService(userRepo, auditRepo, log)
	auditService := service.NewAuditService(auditRepo, userRepo, cfg.AuditRetention, log)

	// Retention sweep: once now, then on the configured interval, until shutdown.
	retention.NewSweeper(auditService, cfg.SweepInterval, log).Start(ctx)

	e := api.NewRouter(cfg, api.Deps{
		Auth:     authService,
		Users:    userService,
		Audit:    auditService,
		UserRepo: userRepo,
		Blocks:   blockRepo,
		Limiter:  limiter,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("license server listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
