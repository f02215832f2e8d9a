package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"ridgecast/internal/models"
	"ridgecast/internal/observability"

	"go.uber.org/zap"
)

// Hourly variables requested from the forecast endpoint.
const weatherVariables = "temperature_2m,relative_humidity_2m,wind_speed_10m," +
	"wind_direction_10m,cloud_cover,cloud_cover_low,cloud_cover_mid,cloud_cover_high," +
	"precipitation_probability,shortwave_radiation,cape"

// hourlyTimeLayout is Open-Meteo's timestamp format when a timezone is requested.
const hourlyTimeLayout = "2006-01-02T15:04"

// ForecastClient fetches hourly weather series from the Open-Meteo forecast API.
type ForecastClient struct {
	*BaseClient
	baseURL  string
	timezone string
	loc      *time.Location
}

type forecastResponse struct {
	Hourly struct {
		Time                     []string  `json:"time"`
		Temperature2M            []float64 `json:"temperature_2m"`
		RelativeHumidity2M       []float64 `json:"relative_humidity_2m"`
		WindSpeed10M             []float64 `json:"wind_speed_10m"`
		WindDirection10M         []float64 `json:"wind_direction_10m"`
		CloudCover               []float64 `json:"cloud_cover"`
		CloudCoverLow            []float64 `json:"cloud_cover_low"`
		CloudCoverMid            []float64 `json:"cloud_cover_mid"`
		CloudCoverHigh           []float64 `json:"cloud_cover_high"`
		PrecipitationProbability []float64 `json:"precipitation_probability"`
		ShortwaveRadiation       []float64 `json:"shortwave_radiation"`
		CAPE                     []float64 `json:"cape"`
	} `json:"hourly"`
}

func NewForecastClient(baseURL, timezone string, loc *time.Location, config ClientConfig, logger *zap.Logger, metrics *observability.Metrics) *ForecastClient {
	return &ForecastClient{
		BaseClient: NewBaseClient("open-meteo", config, logger, metrics),
		baseURL:    baseURL,
		timezone:   timezone,
		loc:        loc,
	}
}

// HourlyForecast fetches the hourly weather series for a coordinate over the
// provider's default forecast horizon, in Fahrenheit and mph.
func (c *ForecastClient) HourlyForecast(ctx context.Context, coord models.Coordinate) (*models.HourlySeries, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", coord.Latitude))
	values.Set("longitude", fmt.Sprintf("%.4f", coord.Longitude))
	values.Set("elevation", fmt.Sprintf("%.0f", coord.Elevation))
	values.Set("hourly", weatherVariables)
	values.Set("temperature_unit", "fahrenheit")
	values.Set("wind_speed_unit", "mph")
	values.Set("timezone", c.timezone)

	var response forecastResponse
	if err := c.GetJSON(ctx, c.baseURL+"/forecast?"+values.Encode(), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch hourly forecast: %w", err)
	}

	times, err := parseHourlyTimes(response.Hourly.Time, c.loc)
	if err != nil {
		return nil, err
	}

	series := &models.HourlySeries{
		Times:             times,
		Temperature:       response.Hourly.Temperature2M,
		Humidity:          response.Hourly.RelativeHumidity2M,
		WindSpeed:         response.Hourly.WindSpeed10M,
		WindDirection:     response.Hourly.WindDirection10M,
		CloudCover:        response.Hourly.CloudCover,
		CloudCoverLow:     response.Hourly.CloudCoverLow,
		CloudCoverMid:     response.Hourly.CloudCoverMid,
		CloudCoverHigh:    response.Hourly.CloudCoverHigh,
		PrecipProbability: response.Hourly.PrecipitationProbability,
		SolarRadiation:    response.Hourly.ShortwaveRadiation,
		CAPE:              response.Hourly.CAPE,
	}

	if err := checkSeriesLengths(series); err != nil {
		return nil, err
	}

	return series, nil
}

func parseHourlyTimes(raw []string, loc *time.Location) ([]time.Time, error) {
	times := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		t, err := time.ParseInLocation(hourlyTimeLayout, s, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse hourly timestamp %q: %w", s, err)
		}
		times = append(times, t)
	}
	return times, nil
}

// checkSeriesLengths rejects a response whose variable arrays are not aligned
// with the timestamp sequence.
func checkSeriesLengths(s *models.HourlySeries) error {
	n := s.Len()
	for name, l := range map[string]int{
		"temperature_2m":            len(s.Temperature),
		"relative_humidity_2m":      len(s.Humidity),
		"wind_speed_10m":            len(s.WindSpeed),
		"wind_direction_10m":        len(s.WindDirection),
		"cloud_cover":               len(s.CloudCover),
		"cloud_cover_low":           len(s.CloudCoverLow),
		"cloud_cover_mid":           len(s.CloudCoverMid),
		"cloud_cover_high":          len(s.CloudCoverHigh),
		"precipitation_probability": len(s.PrecipProbability),
		"shortwave_radiation":       len(s.SolarRadiation),
		"cape":                      len(s.CAPE),
	} {
		if l != n {
			return fmt.Errorf("misaligned hourly series: %s has %d values for %d timestamps", name, l, n)
		}
	}
	return nil
}
