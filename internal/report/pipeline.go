package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ridgecast/internal/models"
	"ridgecast/internal/observability"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// DefaultHour is the target hour used by scheduled runs.
const DefaultHour = 5

// WeatherFetcher retrieves an hourly weather series for a coordinate.
type WeatherFetcher interface {
	HourlyForecast(ctx context.Context, coord models.Coordinate) (*models.HourlySeries, error)
}

// AirQualityFetcher retrieves an hourly US AQI series for a coordinate.
type AirQualityFetcher interface {
	HourlyAirQuality(ctx context.Context, coord models.Coordinate) (*models.AirQualitySeries, error)
}

// Pipeline sequences fetch, select, analyze, and compose for both locations.
// Each run is independent; concurrent runs share no mutable state.
type Pipeline struct {
	weather    WeatherFetcher
	airQuality AirQualityFetcher
	trailhead  models.Coordinate
	summit     models.Coordinate
	loc        *time.Location
	clock      clockwork.Clock
	logger     *zap.Logger
	metrics    *observability.Metrics
}

func NewPipeline(
	weather WeatherFetcher,
	airQuality AirQualityFetcher,
	trailhead, summit models.Coordinate,
	loc *time.Location,
	clock clockwork.Clock,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *Pipeline {
	return &Pipeline{
		weather:    weather,
		airQuality: airQuality,
		trailhead:  trailhead,
		summit:     summit,
		loc:        loc,
		clock:      clock,
		logger:     logger,
		metrics:    metrics,
	}
}

// Generate produces the report text for tomorrow at the given hour.
// The four provider fetches run concurrently; the first error aborts the run
// and no partial report is produced.
func (p *Pipeline) Generate(ctx context.Context, hour int) (string, error) {
	if hour < 0 || hour > 23 {
		return "", fmt.Errorf("target hour must be between 0 and 23, got %d", hour)
	}

	target := TargetTime(p.clock, p.loc, hour)
	start := time.Now()

	p.logger.Info("Generating trail report",
		zap.Time("target", target),
		zap.Int("hour", hour))

	var (
		wg              sync.WaitGroup
		trailheadSeries *models.HourlySeries
		summitSeries    *models.HourlySeries
		trailheadAir    *models.AirQualitySeries
		summitAir       *models.AirQualitySeries
	)
	errs := make([]error, 4)

	wg.Add(4)
	go func() {
		defer wg.Done()
		trailheadSeries, errs[0] = p.weather.HourlyForecast(ctx, p.trailhead)
	}()
	go func() {
		defer wg.Done()
		summitSeries, errs[1] = p.weather.HourlyForecast(ctx, p.summit)
	}()
	go func() {
		defer wg.Done()
		trailheadAir, errs[2] = p.airQuality.HourlyAirQuality(ctx, p.trailhead)
	}()
	go func() {
		defer wg.Done()
		summitAir, errs[3] = p.airQuality.HourlyAirQuality(ctx, p.summit)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			p.fail(err)
			return "", err
		}
	}

	trailheadObs, err := ObservationAt(trailheadSeries, target, "trailhead")
	if err != nil {
		p.fail(err)
		return "", err
	}
	summitObs, err := ObservationAt(summitSeries, target, "summit")
	if err != nil {
		p.fail(err)
		return "", err
	}
	trailheadAQI, err := AQIAt(trailheadAir, target, "trailhead")
	if err != nil {
		p.fail(err)
		return "", err
	}
	summitAQI, err := AQIAt(summitAir, target, "summit")
	if err != nil {
		p.fail(err)
		return "", err
	}

	analysis := Analyze(trailheadObs, summitObs, trailheadAQI, summitAQI)
	text := Compose(trailheadObs, summitObs, analysis, hour)

	if p.metrics != nil {
		p.metrics.ReportsGenerated.Inc()
	}
	p.logger.Info("Trail report composed",
		zap.Duration("duration", time.Since(start)),
		zap.Bool("inversion", analysis.HasInversion))

	return text, nil
}

func (p *Pipeline) fail(err error) {
	if p.metrics != nil {
		p.metrics.ReportFailures.Inc()
	}
	p.logger.Error("Report generation failed", zap.Error(err))
}
