package report

import (
	"errors"
	"testing"
	"time"

	"ridgecast/internal/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func denver(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)
	return loc
}

func TestTargetTime_TomorrowAtHour(t *testing.T) {
	loc := denver(t)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 28, 19, 30, 0, 0, loc))

	target := TargetTime(clock, loc, 5)

	assert.Equal(t, time.Date(2026, 8, 29, 5, 0, 0, 0, loc), target)
}

func TestTargetTime_RollsOverMonth(t *testing.T) {
	loc := denver(t)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 31, 19, 30, 0, 0, loc))

	target := TargetTime(clock, loc, 14)

	assert.Equal(t, time.Date(2026, 9, 1, 14, 0, 0, 0, loc), target)
}

func TestObservationAt_MatchesFullTimestamp(t *testing.T) {
	loc := denver(t)
	target := time.Date(2026, 8, 29, 5, 0, 0, 0, loc)

	series := &models.HourlySeries{
		Times: []time.Time{
			// Same hour on the wrong day must not match.
			time.Date(2026, 8, 28, 5, 0, 0, 0, loc),
			target,
			time.Date(2026, 8, 29, 6, 0, 0, 0, loc),
		},
		Temperature:       []float64{99, 42, 44},
		Humidity:          []float64{99, 60, 58},
		WindSpeed:         []float64{0, 3, 4},
		WindDirection:     []float64{0, 270, 270},
		CloudCover:        []float64{0, 50, 50},
		CloudCoverLow:     []float64{0, 80, 80},
		CloudCoverMid:     []float64{0, 10, 10},
		CloudCoverHigh:    []float64{0, 5, 5},
		PrecipProbability: []float64{0, 5, 5},
		SolarRadiation:    []float64{0, 0, 100},
		CAPE:              []float64{0, 0, 0},
	}

	obs, err := ObservationAt(series, target, "trailhead")
	require.NoError(t, err)
	assert.Equal(t, 42.0, obs.Temperature)
	assert.True(t, obs.Time.Equal(target))
}

func TestObservationAt_MissingHour(t *testing.T) {
	loc := denver(t)
	target := time.Date(2026, 8, 29, 5, 0, 0, 0, loc)

	series := &models.HourlySeries{
		Times: []time.Time{time.Date(2026, 8, 28, 5, 0, 0, 0, loc)},
	}

	_, err := ObservationAt(series, target, "summit")

	var notFound *HourNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "summit", notFound.Location)
	assert.True(t, notFound.Target.Equal(target))
}

func TestAQIAt(t *testing.T) {
	loc := denver(t)
	target := time.Date(2026, 8, 29, 5, 0, 0, 0, loc)

	series := &models.AirQualitySeries{
		Times: []time.Time{target.Add(-time.Hour), target},
		AQI:   []float64{80, 40},
	}

	aqi, err := AQIAt(series, target, "trailhead")
	require.NoError(t, err)
	assert.Equal(t, 40.0, aqi)

	_, err = AQIAt(series, target.Add(48*time.Hour), "trailhead")
	var notFound *HourNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "trailhead air quality", notFound.Location)
}
