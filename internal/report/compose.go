package report

import (
	"fmt"
	"strings"

	"ridgecast/internal/models"
)

// precipThresholdPct is the probability below which the precipitation line is
// dropped from the report.
const precipThresholdPct = 10.0

// unhealthyAQIThreshold is the AQI above which the report surfaces air quality.
const unhealthyAQIThreshold = 100.0

// reportData bundles everything the line rules may draw on.
type reportData struct {
	Trailhead models.HourlyObservation
	Summit    models.HourlyObservation
	Analysis  Analysis
	Hour      int
}

// lineRule produces one report line, or reports that the line is omitted.
type lineRule func(reportData) (string, bool)

// lineRules is evaluated in order; each rule is independently testable.
var lineRules = []lineRule{
	trailheadLine,
	summitLine,
	windLine,
	cloudLine,
	precipitationLine,
	thunderstormLine,
	inversionLine,
	airQualityLine,
	sweatLine,
	gloveLine,
}

// Compose renders the final report text. Pure string formatting, no I/O.
func Compose(trailhead, summit models.HourlyObservation, analysis Analysis, hour int) string {
	d := reportData{Trailhead: trailhead, Summit: summit, Analysis: analysis, Hour: hour}

	lines := make([]string, 0, len(lineRules)+1)
	lines = append(lines, headerFor(hour))
	for _, rule := range lineRules {
		if line, ok := rule(d); ok {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// headerFor names the target window. Hour 5 is the canonical morning report.
func headerFor(hour int) string {
	if hour == 5 {
		return "*Tomorrow Morning*"
	}
	return fmt.Sprintf("*Tomorrow at %s*", clockLabel(hour))
}

func clockLabel(hour int) string {
	suffix := "am"
	h := hour
	switch {
	case hour == 0:
		h = 12
	case hour == 12:
		suffix = "pm"
	case hour > 12:
		h = hour - 12
		suffix = "pm"
	}
	return fmt.Sprintf("%d%s", h, suffix)
}

func trailheadLine(d reportData) (string, bool) {
	return fmt.Sprintf("Trailhead: %.0f°F, %.0f%% humidity", d.Trailhead.Temperature, d.Trailhead.Humidity), true
}

func summitLine(d reportData) (string, bool) {
	return fmt.Sprintf("Summit: %.0f°F, %.0f%% humidity", d.Summit.Temperature, d.Summit.Humidity), true
}

func windLine(d reportData) (string, bool) {
	return fmt.Sprintf("Wind: %s from %s", d.Analysis.WindDescription, d.Analysis.WindDirectionLabel), true
}

func cloudLine(d reportData) (string, bool) {
	return "Clouds: " + d.Analysis.CloudSummary, true
}

func precipitationLine(d reportData) (string, bool) {
	if d.Analysis.PrecipProbability <= precipThresholdPct {
		return "", false
	}
	return fmt.Sprintf("Precipitation: %.0f%% chance", d.Analysis.PrecipProbability), true
}

func thunderstormLine(d reportData) (string, bool) {
	if d.Analysis.ThunderstormPotential == "" {
		return "", false
	}
	return "Thunderstorm potential: " + d.Analysis.ThunderstormPotential, true
}

func inversionLine(d reportData) (string, bool) {
	if d.Analysis.HasInversion {
		return "Inversion: Yes", true
	}
	return "Inversion: No", true
}

func airQualityLine(d reportData) (string, bool) {
	if d.Analysis.AQI <= unhealthyAQIThreshold {
		return "", false
	}
	return fmt.Sprintf("Air quality: %.0f (%s)", d.Analysis.AQI, d.Analysis.AirQualityLabel), true
}

func sweatLine(d reportData) (string, bool) {
	return fmt.Sprintf("Est. sweat loss: ~%.1f L over %d min",
		d.Analysis.SweatLossLiters, d.Analysis.DurationMinutes), true
}

func gloveLine(d reportData) (string, bool) {
	return "Gloves: " + d.Analysis.GloveAdvice, true
}
