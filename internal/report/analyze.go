package report

import (
	"fmt"
	"math"

	"ridgecast/internal/models"
)

// Fixed route assumptions behind the sweat-loss model.
const (
	bodyWeightLb       = 180.0
	routeMiles         = 6.22
	elevationGainFt    = 2150.0
	basePaceMinPerMile = 10.0

	// Base sweat rate at 70°F, 50% humidity, no wind, no solar load.
	baseSweatRateMLPerHour = 650.0
)

// Analysis holds the derived conditions for one report.
type Analysis struct {
	HasInversion          bool
	WindDescription       string
	WindDirectionLabel    string
	CloudSummary          string
	SweatLossLiters       float64
	DurationMinutes       int
	GloveAdvice           string
	ThunderstormPotential string // empty when CAPE gives no signal
	AirQualityLabel       string
	AQI                   float64
	PrecipProbability     float64
}

// Analyze derives all report conditions from the paired observations.
// Temperature-driven values use the average of the two points; wind and cloud
// lines describe the summit; the sweat model takes wind and solar load at the
// trailhead. CAPE and AQI use the worse of the two points.
func Analyze(trailhead, summit models.HourlyObservation, trailheadAQI, summitAQI float64) Analysis {
	avgTemp := (trailhead.Temperature + summit.Temperature) / 2
	avgHumidity := (trailhead.Humidity + summit.Humidity) / 2
	worstAQI := math.Max(trailheadAQI, summitAQI)

	return Analysis{
		HasInversion:          HasInversion(trailhead.Temperature, summit.Temperature),
		WindDescription:       WindDescription(summit.WindSpeed),
		WindDirectionLabel:    WindDirectionLabel(summit.WindDirection),
		CloudSummary:          CloudSummary(summit.CloudCoverLow, summit.CloudCoverMid, summit.CloudCoverHigh),
		SweatLossLiters:       SweatLossLiters(avgTemp, avgHumidity, trailhead.WindSpeed, trailhead.SolarRadiation),
		DurationMinutes:       EstimatedDurationMinutes(),
		GloveAdvice:           GloveAdvice(avgTemp),
		ThunderstormPotential: ThunderstormPotential(math.Max(trailhead.CAPE, summit.CAPE)),
		AirQualityLabel:       AirQualityLabel(worstAQI),
		AQI:                   worstAQI,
		PrecipProbability:     summit.PrecipProbability,
	}
}

// HasInversion reports whether the summit is strictly warmer than the
// trailhead. Equal temperatures are not an inversion.
func HasInversion(trailheadTemp, summitTemp float64) bool {
	return summitTemp > trailheadTemp
}

// WindDescription buckets a wind speed in mph. Boundaries are
// inclusive-lower/exclusive-upper, so exactly 5 mph is a light breeze.
func WindDescription(mph float64) string {
	switch {
	case mph < 5:
		return "Calm"
	case mph < 10:
		return "Light breeze"
	case mph < 15:
		return "Moderate breeze"
	case mph < 20:
		return "Strong breeze"
	default:
		return "High winds"
	}
}

var compassLabels = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// WindDirectionLabel maps compass degrees to one of eight labels, N at 0°.
func WindDirectionLabel(degrees float64) string {
	idx := int(math.Round(degrees/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassLabels[idx]
}

// CloudSummary labels the low/mid/high cloud bands, rounded to whole percent.
func CloudSummary(low, mid, high float64) string {
	return fmt.Sprintf("Low %.0f%%, Mid %.0f%%, High %.0f%%", low, mid, high)
}

// EstimatedDurationMinutes is the route time under the fixed pace model,
// rounded to the nearest minute.
func EstimatedDurationMinutes() int {
	return int(math.Round(estimatedDurationMinutes()))
}

func estimatedDurationMinutes() float64 {
	return (basePaceMinPerMile + elevationGainFt/1000) * routeMiles
}

// SweatLossLiters estimates total sweat volume for the route in liters,
// rounded to one decimal. Each driver scales the base rate linearly:
// +10% per 5°F above 70, +5% per 10% humidity above 50, -5% per 5 mph of
// wind, +5% per 1000 ft of gain, and up to +75% of solar load at 1000 W/m².
func SweatLossLiters(tempF, humidityPct, windMPH, solarWM2 float64) float64 {
	tempFactor := 1 + ((tempF-70)/5)*0.10
	humidityFactor := 1 + ((humidityPct-50)/10)*0.05
	windFactor := 1 - (windMPH/5)*0.05
	elevationFactor := 1 + (elevationGainFt/1000)*0.05
	solarFactor := 1 + math.Min(solarWM2/1000, 1)*0.75

	hours := estimatedDurationMinutes() / 60
	ml := baseSweatRateMLPerHour * tempFactor * humidityFactor * windFactor * elevationFactor * solarFactor * hours

	return math.Round(ml/100) / 10
}

// GloveAdvice buckets the trailhead/summit average temperature.
func GloveAdvice(avgTempF float64) string {
	switch {
	case avgTempF < 40:
		return "Yes, definitely"
	case avgTempF < 45:
		return "Yes, recommended"
	case avgTempF < 52:
		return "Maybe, if you run cold"
	default:
		return "No"
	}
}

// ThunderstormPotential grades convective energy. Below 1000 J/kg there is no
// signal and the report omits the line.
func ThunderstormPotential(cape float64) string {
	switch {
	case cape > 2500:
		return "High"
	case cape > 1500:
		return "Moderate"
	case cape > 1000:
		return "Low"
	default:
		return ""
	}
}

// AirQualityLabel buckets a US AQI value.
func AirQualityLabel(aqi float64) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}
