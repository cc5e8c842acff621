package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"propertyhub/internal/auth"
	"propertyhub/internal/config"
	"propertyhub/internal/db"
	"propertyhub/internal/handler"
	"propertyhub/internal/logging"
	"propertyhub/internal/metrics"
	"propertyhub/internal/repository"
	"propertyhub/internal/router"
	"propertyhub/internal/service"
)

// @title Property Management API
// @version 1.0
// @description Properties, their utility bills, and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	gormDB, err := db.Open(db.OptionsFromConfig(cfg))
	if err != nil {
		logger.Error("database init", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	if cfg.ResetDB {
		if err := db.Reset(gormDB); err != nil {
			logger.Error("reset database", "error", err)
			os.Exit(1)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Error("auto-migrate", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	propertyRepo := repository.NewPropertyRepository(gormDB)
	utilityRepo := repository.NewUtilityRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration)
	authService := service.NewAuthService(userRepo, jwtService, cfg.BcryptCost)
	propertyService := service.NewPropertyService(propertyRepo, utilityRepo)
	utilityService := service.NewUtilityService(utilityRepo, propertyRepo)

	e := echo.New()
	router.Register(e, cfg, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Property: handler.NewPropertyHandler(propertyService),
		Utility:  handler.NewUtilityHandler(utilityService),
		JWT:      jwtService,
		Metrics:  metrics.New(),
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", cfg.Addr(), "driver", cfg.DBDriver, "auth_required", cfg.AuthRequired)
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped")
}
