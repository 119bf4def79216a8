// Package main is the entry point for the API server.
// It loads configuration, connects to PostgreSQL and Redis,
// wires repositories, services and handlers, and serves HTTP
// until SIGINT or SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"emiverify/internal/config"
	"emiverify/internal/handlers"
	"emiverify/internal/logger"
	"emiverify/internal/middleware"
	"emiverify/internal/repositories"
	"emiverify/internal/repositories/cache"
	"emiverify/internal/routes"
	"emiverify/internal/services/analytics"
	"emiverify/internal/services/auth"
	"emiverify/internal/services/export"
	"emiverify/internal/services/importer"
	"emiverify/internal/services/insurance"
	"emiverify/internal/services/notification"
	"emiverify/internal/services/user"
	"emiverify/internal/services/verification"
	"emiverify/internal/utils"
	"emiverify/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repositories.NewPostgres(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.Name)

	if err := repositories.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	store := openCache(ctx, cfg.Redis)

	app := fiber.New(fiber.Config{
		AppName:      "EMI Verify API",
		ErrorHandler: middleware.ErrorHandler(cfg.IsProduction()),
		BodyLimit:    cfg.Server.BodyLimit,
	})

	authMiddleware, h := wire(cfg, db, store)
	routes.SetupRoutes(app, cfg.Server, h, authMiddleware)

	go func() {
		slog.Info("server listening", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("shutting down")
	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		slog.Error("shutdown failed", "error", err)
	}

	if err := repositories.Close(db); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
	if err := store.Close(); err != nil {
		slog.Warn("failed to close cache", "error", err)
	}
}

// openCache falls back to a no-op store when Redis is disabled or unreachable.
func openCache(ctx context.Context, cfg config.RedisConfig) cache.Store {
	if !cfg.Enabled {
		slog.Info("redis disabled, caching off")
		return cache.NoopStore{}
	}

	client, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Warn("redis unavailable, caching off", "error", err)
		return cache.NoopStore{}
	}
	slog.Info("connected to redis", "host", cfg.Host)
	return cache.NewCacheService(client, cfg.ReportTTL)
}

func wire(cfg *config.Config, db *gorm.DB, store cache.Store) (*middleware.AuthMiddleware, routes.Handlers) {
	schema := validation.NewSchema()

	userRepo := repositories.NewUserRepository(db, store, cfg.Redis.UserTTL)
	tokenRepo := repositories.NewAuthTokenRepository(db, store)
	caseRepo := repositories.NewInsuranceCaseRepository(db)
	docRepo := repositories.NewDocumentVerificationRepository(db)

	authService := auth.NewService(
		userRepo,
		tokenRepo,
		utils.NewTokenManager(cfg.JWT),
		notification.NewService(cfg.Mail),
		schema,
		auth.Options{FrontendURL: cfg.Mail.FrontendURL},
	)
	userService := user.NewService(userRepo, schema)
	insuranceService := insurance.NewService(caseRepo, store, schema)
	verificationService := verification.NewService(docRepo, store, schema)
	analyticsService := analytics.NewService(caseRepo, docRepo, store, cfg.Redis.ReportTTL)
	exportService := export.NewService(caseRepo, docRepo, cfg.Export.TempDir)

	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService, userService, cfg.JWT.RefreshTTL, cfg.IsProduction()),
		Insurance:    handlers.NewInsuranceHandler(insuranceService),
		Verification: handlers.NewVerificationHandler(verificationService),
		Analytics:    handlers.NewAnalyticsHandler(analyticsService),
		Export:       handlers.NewExportHandler(exportService),
		Import:       handlers.NewImportHandler(importer.New(insuranceService, verificationService)),
		Health: handlers.NewHealthHandler(func(ctx context.Context) error {
			return repositories.Ping(ctx, db)
		}, store, cfg.Server.Env),
	}
	return middleware.NewAuthMiddleware(authService), h
}
