package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ridgecast/internal/models"
	"ridgecast/internal/observability"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testTrailhead = models.Coordinate{Latitude: 39.9884, Longitude: -105.2679, Elevation: 1740}
	testSummit    = models.Coordinate{Latitude: 39.9821, Longitude: -105.3021, Elevation: 2480}
)

// stubWeather serves a canned series per elevation so the two points differ.
type stubWeather struct {
	byElevation map[float64]*models.HourlySeries
	err         error
}

func (s *stubWeather) HourlyForecast(_ context.Context, coord models.Coordinate) (*models.HourlySeries, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byElevation[coord.Elevation], nil
}

type stubAirQuality struct {
	series *models.AirQualitySeries
	err    error
}

func (s *stubAirQuality) HourlyAirQuality(_ context.Context, _ models.Coordinate) (*models.AirQualitySeries, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.series, nil
}

func seriesAt(target time.Time, temp, humidity, wind float64) *models.HourlySeries {
	return &models.HourlySeries{
		Times:             []time.Time{target},
		Temperature:       []float64{temp},
		Humidity:          []float64{humidity},
		WindSpeed:         []float64{wind},
		WindDirection:     []float64{270},
		CloudCover:        []float64{50},
		CloudCoverLow:     []float64{80},
		CloudCoverMid:     []float64{10},
		CloudCoverHigh:    []float64{5},
		PrecipProbability: []float64{5},
		SolarRadiation:    []float64{0},
		CAPE:              []float64{0},
	}
}

func newTestPipeline(t *testing.T, weather WeatherFetcher, air AirQualityFetcher, clock clockwork.Clock) *Pipeline {
	t.Helper()
	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)
	return NewPipeline(weather, air, testTrailhead, testSummit, loc,
		clock, zap.NewNop(), observability.NewMetricsForTesting())
}

func TestPipeline_Generate(t *testing.T) {
	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 28, 19, 30, 0, 0, loc))
	target := time.Date(2026, 8, 29, 5, 0, 0, 0, loc)

	weather := &stubWeather{byElevation: map[float64]*models.HourlySeries{
		testTrailhead.Elevation: seriesAt(target, 42, 60, 3),
		testSummit.Elevation:    seriesAt(target, 48, 55, 8),
	}}
	air := &stubAirQuality{series: &models.AirQualitySeries{
		Times: []time.Time{target},
		AQI:   []float64{40},
	}}

	p := newTestPipeline(t, weather, air, clock)

	text, err := p.Generate(context.Background(), 5)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "*Tomorrow Morning*"))
	assert.Contains(t, text, "Trailhead: 42°F, 60% humidity")
	assert.Contains(t, text, "Summit: 48°F, 55% humidity")
	assert.Contains(t, text, "Inversion: Yes")
}

func TestPipeline_Generate_HourOutOfRange(t *testing.T) {
	p := newTestPipeline(t, &stubWeather{}, &stubAirQuality{}, clockwork.NewFakeClock())

	_, err := p.Generate(context.Background(), 24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 0 and 23")

	_, err = p.Generate(context.Background(), -1)
	require.Error(t, err)
}

func TestPipeline_Generate_FetchErrorAbortsRun(t *testing.T) {
	fetchErr := errors.New("provider unavailable")
	p := newTestPipeline(t, &stubWeather{err: fetchErr}, &stubAirQuality{}, clockwork.NewFakeClock())

	text, err := p.Generate(context.Background(), 5)
	require.ErrorIs(t, err, fetchErr)
	assert.Empty(t, text, "no partial report on failure")
}

func TestPipeline_Generate_MissingTargetHour(t *testing.T) {
	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 28, 19, 30, 0, 0, loc))

	// Series exists but never covers tomorrow 05:00.
	wrongHour := time.Date(2026, 8, 29, 6, 0, 0, 0, loc)
	weather := &stubWeather{byElevation: map[float64]*models.HourlySeries{
		testTrailhead.Elevation: seriesAt(wrongHour, 42, 60, 3),
		testSummit.Elevation:    seriesAt(wrongHour, 48, 55, 8),
	}}
	air := &stubAirQuality{series: &models.AirQualitySeries{
		Times: []time.Time{wrongHour},
		AQI:   []float64{40},
	}}

	p := newTestPipeline(t, weather, air, clock)

	text, err := p.Generate(context.Background(), 5)

	var notFound *HourNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, text)
}
