package report

import (
	"fmt"
	"time"

	"ridgecast/internal/models"

	"github.com/jonboulle/clockwork"
)

// HourNotFoundError indicates a location's series does not contain the shared
// target timestamp, e.g. the requested hour is outside the provider horizon.
type HourNotFoundError struct {
	Location string
	Target   time.Time
}

func (e *HourNotFoundError) Error() string {
	return fmt.Sprintf("no %s forecast record for %s", e.Location, e.Target.Format(time.RFC3339))
}

// TargetTime returns tomorrow at the given hour in loc, relative to the clock.
func TargetTime(clock clockwork.Clock, loc *time.Location, hour int) time.Time {
	now := clock.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day()+1, hour, 0, 0, 0, loc)
}

// ObservationAt returns the single observation whose timestamp equals target.
// Both locations are selected against the same target timestamp, so a report
// can never mix hours. The scan matches the full calendar instant, not just
// (hour, day, month).
func ObservationAt(series *models.HourlySeries, target time.Time, location string) (models.HourlyObservation, error) {
	for i, t := range series.Times {
		if t.Equal(target) {
			return series.At(i), nil
		}
	}
	return models.HourlyObservation{}, &HourNotFoundError{Location: location, Target: target}
}

// AQIAt returns the US AQI value whose timestamp equals target.
func AQIAt(series *models.AirQualitySeries, target time.Time, location string) (float64, error) {
	for i, t := range series.Times {
		if t.Equal(target) {
			return series.AQI[i], nil
		}
	}
	return 0, &HourNotFoundError{Location: location + " air quality", Target: target}
}
