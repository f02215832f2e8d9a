package models

import (
	"time"
)

// Coordinate identifies one of the two fixed forecast points.
// Elevation is in meters, as expected by the forecast provider.
type Coordinate struct {
	Latitude  float64
	Longitude float64
	Elevation float64
}

// HourlySeries holds the provider's hourly weather arrays, aligned by Times.
// A series is fetched fresh per report run and discarded after the target
// hour is extracted.
type HourlySeries struct {
	Times             []time.Time
	Temperature       []float64 // °F
	Humidity          []float64 // %
	WindSpeed         []float64 // mph
	WindDirection     []float64 // degrees
	CloudCover        []float64 // % total
	CloudCoverLow     []float64
	CloudCoverMid     []float64
	CloudCoverHigh    []float64
	PrecipProbability []float64 // %
	SolarRadiation    []float64 // W/m²
	CAPE              []float64 // J/kg
}

// Len returns the number of hourly records in the series.
func (s *HourlySeries) Len() int {
	return len(s.Times)
}

// AirQualitySeries holds the hourly US AQI array for one location.
type AirQualitySeries struct {
	Times []time.Time
	AQI   []float64
}

// HourlyObservation is a single time slice of an HourlySeries.
type HourlyObservation struct {
	Time              time.Time
	Temperature       float64
	Humidity          float64
	WindSpeed         float64
	WindDirection     float64
	CloudCover        float64
	CloudCoverLow     float64
	CloudCoverMid     float64
	CloudCoverHigh    float64
	PrecipProbability float64
	SolarRadiation    float64
	CAPE              float64
}

// At extracts the observation at index i. Callers must ensure i is in range.
func (s *HourlySeries) At(i int) HourlyObservation {
	return HourlyObservation{
		Time:              s.Times[i],
		Temperature:       s.Temperature[i],
		Humidity:          s.Humidity[i],
		WindSpeed:         s.WindSpeed[i],
		WindDirection:     s.WindDirection[i],
		CloudCover:        s.CloudCover[i],
		CloudCoverLow:     s.CloudCoverLow[i],
		CloudCoverMid:     s.CloudCoverMid[i],
		CloudCoverHigh:    s.CloudCoverHigh[i],
		PrecipProbability: s.PrecipProbability[i],
		SolarRadiation:    s.SolarRadiation[i],
		CAPE:              s.CAPE[i],
	}
}
