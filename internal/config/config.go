package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"ridgecast/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Point is one of the two fixed forecast locations. Elevation is in meters.
type Point struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	Elevation float64 `validate:"gte=0"`
}

// Coordinate converts the configured point to the domain type.
func (p Point) Coordinate() models.Coordinate {
	return models.Coordinate{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Elevation: p.Elevation,
	}
}

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
	}

	Trailhead Point
	Summit    Point

	Forecast struct {
		// IANA timezone both providers are queried in.
		Timezone      string `validate:"required"`
		OpenMeteoURL  string `validate:"required,url"`
		AirQualityURL string `validate:"required,url"`
		HTTPTimeout   time.Duration
		// BreakerTimeout is how long an open circuit stays open.
		BreakerTimeout time.Duration
	}

	Report struct {
		// Hour is the default target hour-of-day for scheduled runs.
		Hour int `validate:"gte=0,lte=23"`
		// Cron is a standard 5-field cron expression for the daily run.
		Cron string `validate:"required"`
	}

	Webhook struct {
		URL     string `validate:"required,url"`
		Timeout time.Duration
	}

	Command struct {
		// SigningSecret verifies inbound slash-command callbacks.
		SigningSecret string `validate:"required"`
	}
}

// Load reads configuration from the environment. The returned Config is
// immutable by convention and passed into constructors; nothing reads the
// environment after startup.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("SERVER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("SERVER_WRITE_TIMEOUT", "10s"))

	// Defaults: Bear Canyon trailhead up to Green Mountain, Boulder CO.
	cfg.Trailhead.Latitude = parseFloat(getEnv("TRAILHEAD_LAT", "39.9884"))
	cfg.Trailhead.Longitude = parseFloat(getEnv("TRAILHEAD_LON", "-105.2679"))
	cfg.Trailhead.Elevation = parseFloat(getEnv("TRAILHEAD_ELEVATION_M", "1740"))
	cfg.Summit.Latitude = parseFloat(getEnv("SUMMIT_LAT", "39.9821"))
	cfg.Summit.Longitude = parseFloat(getEnv("SUMMIT_LON", "-105.3021"))
	cfg.Summit.Elevation = parseFloat(getEnv("SUMMIT_ELEVATION_M", "2480"))

	cfg.Forecast.Timezone = getEnv("FORECAST_TIMEZONE", "America/Denver")
	cfg.Forecast.OpenMeteoURL = getEnv("OPENMETEO_URL", "https://api.open-meteo.com/v1")
	cfg.Forecast.AirQualityURL = getEnv("AIR_QUALITY_URL", "https://air-quality-api.open-meteo.com/v1")
	cfg.Forecast.HTTPTimeout = parseDuration(getEnv("HTTP_TIMEOUT", "10s"))
	cfg.Forecast.BreakerTimeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	cfg.Report.Hour = parseInt(getEnv("REPORT_HOUR", "5"))
	cfg.Report.Cron = getEnv("REPORT_CRON", "30 19 * * *")

	cfg.Webhook.URL = getEnv("WEBHOOK_URL", "")
	cfg.Webhook.Timeout = parseDuration(getEnv("WEBHOOK_TIMEOUT", "10s"))

	cfg.Command.SigningSecret = getEnv("SIGNING_SECRET", "")

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Location resolves the configured forecast timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Forecast.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_TIMEZONE %q: %w", c.Forecast.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}
