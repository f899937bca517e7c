package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AnthoniusHendriyanto/account-service/config"
	"github.com/AnthoniusHendriyanto/account-service/db"
	"github.com/AnthoniusHendriyanto/account-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/account-service/internal/auth/handler"
	pgrepo "github.com/AnthoniusHendriyanto/account-service/internal/auth/repository/postgres"
	sqliterepo "github.com/AnthoniusHendriyanto/account-service/internal/auth/repository/sqlite"
	"github.com/AnthoniusHendriyanto/account-service/internal/auth/service"
	"github.com/AnthoniusHendriyanto/account-service/internal/geo"
	"github.com/AnthoniusHendriyanto/account-service/internal/logger"
	"github.com/AnthoniusHendriyanto/account-service/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	l, err := logger.New(!cfg.IsProduction())
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo, closeStore, err := openStore(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer closeStore()

	hasher, err := service.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		return err
	}

	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenLifetime(), l)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	l.Info("token service ready", zap.String("hasher", cfg.PasswordHasher), zap.Duration("lifetime", tokenService.Lifetime()))

	var locator service.Geolocator = geo.NewClient(cfg.GeoPublicIPURL, cfg.GeoCountryURL, cfg.GeoTimeout(), l)
	if cfg.RedisURL != "" {
		rdb, err := geo.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		locator = geo.NewCachedLocator(locator, rdb, cfg.GeoCacheTTL(), l)
		l.Info("geo cache enabled", zap.Duration("ttl", cfg.GeoCacheTTL()))
	}

	accountService := service.NewAccountService(userRepo, hasher, tokenService, service.NewAccessGate(userRepo), locator, l)

	created, err := accountService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrapping admin: %w", err)
	}
	if created {
		l.Info("bootstrap admin account created")
	}

	m := metrics.New()
	accountHandler := handler.NewAccountHandler(accountService, tokenService, m, l)

	app := fiber.New(fiber.Config{DisableStartupMessage: cfg.IsProduction()})
	handler.Use(app, l, m)
	handler.RegisterRoutes(app, accountHandler, m)

	errCh := make(chan error, 1)
	go func() {
		l.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	l.Info("shutting down")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout()); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, l *zap.Logger) (domain.UserRepository, func(), error) {
	switch strings.ToLower(cfg.DBDriver) {
	case db.DriverPostgres:
		pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		l.Info("using postgres store")
		return pgrepo.NewPostgresRepository(pool), pool.Close, nil

	case db.DriverSQLite, "sqlite3":
		sdb, err := db.OpenSQLite(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, err
		}
		l.Info("using sqlite store", zap.String("dsn", cfg.DBURL))
		return sqliterepo.NewSQLiteRepository(sdb), func() { _ = sdb.Close() }, nil

	default:
		return nil, nil, errors.New("unsupported DB_DRIVER " + cfg.DBDriver)
	}
}
