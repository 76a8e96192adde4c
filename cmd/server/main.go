package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Saai-Jaswant/God-Pill-Project-X/docs"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/auth"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/config"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/db"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/handler"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/kv"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/logger"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/mailer"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/metrics"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/repository"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/router"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/service"
)

const shutdownTimeout = 15 * time.Second

// @title God Pill API
// @version 1.0
// @description Product catalog with ingredients, health claims, ratings and a newsletter.
// @host localhost:3001
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	usedDevSecret, err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if usedDevSecret {
		log.Warn("JWT_SECRET not set, using the development signing key")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DB, log)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}()

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return err
	}

	kvClient := kv.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = kvClient.Close() }()
	if kvClient.Enabled() {
		if err := kvClient.Ping(ctx); err != nil {
			log.Warn("redis unreachable, token revocation checks will pass", zap.Error(err))
		}
	} else {
		log.Info("REDIS_ADDR not set, logout will not revoke tokens")
	}

	m := metrics.New()
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("underlying sql.DB: %w", err)
	}
	if err := m.RegisterDB(sqlDB, "godpill"); err != nil {
		return fmt.Errorf("register pool metrics: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)
	subscriberRepo := repository.NewSubscriberRepository(gormDB)

	// Initialize auth components
	tokenStore := auth.NewTokenStore(kvClient)
	jwtService := auth.NewJWTService(cfg.JWTSecret, tokenStore)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, ratingRepo)
	ratingService := service.NewRatingService(ratingRepo, productRepo, log)
	newsletterService := service.NewNewsletterService(subscriberRepo, mailer.New(cfg.Mail, log), log)

	e := echo.New()
	router.Register(
		e,
		cfg,
		log,
		m,
		jwtService,
		handler.NewProductHandler(productService),
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewRatingHandler(ratingService),
		handler.NewNewsletterHandler(newsletterService),
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	log.Info("swagger documentation available", zap.String("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("server start: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
