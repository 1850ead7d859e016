package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/application/service"
	"github.com/chalkboard-id/chalkboard-api/internal/config"
	"github.com/chalkboard-id/chalkboard-api/internal/infrastructure/database"
	"github.com/chalkboard-id/chalkboard-api/internal/infrastructure/repository"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/handler"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/middleware"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/routes"
	"github.com/chalkboard-id/chalkboard-api/pkg/logger"
	"github.com/chalkboard-id/chalkboard-api/pkg/printer"
	"github.com/chalkboard-id/chalkboard-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	if err := database.SeedDefaultData(db, cfg.Admin); err != nil {
		logger.WithError(err).Warn("Failed to seed default data")
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	transactor := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	tableRepo := repository.NewTableRepository(db)
	packageRepo := repository.NewPricingPackageRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	categoryRepo := repository.NewFnbCategoryRepository(db)
	itemRepo := repository.NewFnbItemRepository(db)
	orderRepo := repository.NewFnbOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	taxRepo := repository.NewTaxSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	pricingService := service.NewPricingService(transactor, packageRepo, tableRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	tableService := service.NewTableService(tableRepo, packageRepo, sessionRepo)
	staffService := service.NewStaffService(staffRepo)
	sessionService := service.NewSessionService(transactor, sessionRepo, tableRepo, orderRepo, staffRepo, pricingService)
	billingService := service.NewBillingService(transactor, sessionRepo, tableRepo, orderRepo, paymentRepo, staffRepo, taxRepo, pricingService)
	orderService := service.NewFnbOrderService(transactor, orderRepo, itemRepo, sessionRepo, paymentRepo, staffRepo, taxRepo)
	menuService := service.NewMenuService(categoryRepo, itemRepo)
	settingsService := service.NewSettingsService(settingRepo, taxRepo)
	idempotencyService := service.NewIdempotencyService(idempotencyRepo)

	receiptPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize receipt printer, printing disabled")
		receiptPrinter, _ = printer.New(printer.Config{})
	}
	receiptService := service.NewReceiptService(billingService, receiptPrinter, cfg.Printer.Header, cfg.Printer.Width)

	scheduler, err := idempotencyService.StartPurgeScheduler(cfg.Idempotency.PurgeSchedule)
	if err != nil {
		logger.WithError(err).Fatal("Invalid idempotency purge schedule")
	}

	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Session:  handler.NewSessionHandler(sessionService, billingService),
		FnbOrder: handler.NewFnbOrderHandler(orderService),
		Payment:  handler.NewPaymentHandler(billingService, receiptService),
		Table:    handler.NewTableHandler(tableService),
		Pricing:  handler.NewPricingHandler(pricingService),
		Staff:    handler.NewStaffHandler(staffService),
		Menu:     handler.NewMenuHandler(menuService),
		Settings: handler.NewSettingsHandler(settingsService),
	}

	rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit))

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"service": cfg.App.Name,
			"port":    port,
			"env":     cfg.App.Env,
		}).Info("Starting server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	<-scheduler.Stop().Done()
	rateLimiter.Stop()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
