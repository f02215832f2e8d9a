package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ridgecast/internal/api"
	"ridgecast/internal/config"
	"ridgecast/internal/delivery"
	"ridgecast/internal/observability"
	"ridgecast/internal/report"
	"ridgecast/internal/scheduler"
	"ridgecast/pkg/client"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting ridgecast trail report service")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("Failed to resolve forecast timezone", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	clientConfig := client.ClientConfig{
		Timeout:        cfg.Forecast.HTTPTimeout,
		BreakerTimeout: cfg.Forecast.BreakerTimeout,
	}
	weatherClient := client.NewForecastClient(cfg.Forecast.OpenMeteoURL, cfg.Forecast.Timezone, loc, clientConfig, logger, metrics)
	airClient := client.NewAirQualityClient(cfg.Forecast.AirQualityURL, cfg.Forecast.Timezone, loc, clientConfig, logger, metrics)

	pipeline := report.NewPipeline(
		weatherClient,
		airClient,
		cfg.Trailhead.Coordinate(),
		cfg.Summit.Coordinate(),
		loc,
		clock,
		logger,
		metrics,
	)

	webhook := delivery.NewWebhook(cfg.Webhook.Timeout, logger, metrics)

	// Daily scheduled report
	reportScheduler := scheduler.New(pipeline, webhook, cfg.Webhook.URL, cfg.Report.Cron, cfg.Report.Hour, logger)
	if err := reportScheduler.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	verifier := api.NewSignatureVerifier(cfg.Command.SigningSecret, clock)
	handler := api.NewHandler(pipeline, webhook, verifier, cfg.Report.Hour, logger)
	api.SetupRoutes(app, handler, logger)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reportScheduler.Stop()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   err.Error(),
		"success": false,
	})
}
