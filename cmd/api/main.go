package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/license-service/internal/api/http"
	"github.com/spec-kit/license-service/internal/api/http/handlers"
	"github.com/spec-kit/license-service/internal/auth"
	"github.com/spec-kit/license-service/internal/config"
	"github.com/spec-kit/license-service/internal/keygen"
	"github.com/spec-kit/license-service/internal/observability"
	"github.com/spec-kit/license-service/internal/persistence"
	"github.com/spec-kit/license-service/internal/repository"
	"github.com/spec-kit/license-service/internal/service"
	"github.com/spec-kit/license-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	adminRepo := repository.NewAdminRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)
	purchaserRepo := repository.NewPurchaserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	licenseRepo := repository.NewLicenseRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AdminRepo:     adminRepo,
		AccountRepo:   accountRepo,
		PurchaserRepo: purchaserRepo,
	}, logger)

	// Single-writer bootstrap before request serving begins.
	if err := authService.EnsureDefaultAdmin(ctx); err != nil {
		logger.Fatal("failed to ensure default administrator", zap.Error(err))
	}

	keyClient := keygen.NewClient(cfg.KeyGen.BaseURL, cfg.KeyGen.Timeout(), logger)

	licenseService := service.NewLicenseService(service.LicenseDependencies{
		LicenseRepo:   licenseRepo,
		PurchaserRepo: purchaserRepo,
		ProductRepo:   productRepo,
		AccountRepo:   accountRepo,
		Keys:          keyClient,
		Auth:          authService,
	}, logger)
	purchaserService := service.NewPurchaserService(purchaserRepo, authService, logger)
	productService := service.NewProductService(productRepo, authService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), authService)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Licenses:       handlers.NewLicensesHandler(licenseService),
		Purchasers:     handlers.NewPurchasersHandler(purchaserService),
		Products:       handlers.NewProductsHandler(productService),
		AuthMiddleware: authMiddleware,
	})

	reaper := worker.NewExpiryReaper(licenseRepo, logger)
	go reaper.Run(ctx)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
