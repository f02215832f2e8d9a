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

// AirQualityClient fetches hourly US AQI series from the Open-Meteo
// air-quality API. Air-quality queries do not take an elevation.
type AirQualityClient struct {
	*BaseClient
	baseURL  string
	timezone string
	loc      *time.Location
}

type airQualityResponse struct {
	Hourly struct {
		Time  []string  `json:"time"`
		USAQI []float64 `json:"us_aqi"`
	} `json:"hourly"`
}

func NewAirQualityClient(baseURL, timezone string, loc *time.Location, config ClientConfig, logger *zap.Logger, metrics *observability.Metrics) *AirQualityClient {
	return &AirQualityClient{
		BaseClient: NewBaseClient("open-meteo-air-quality", config, logger, metrics),
		baseURL:    baseURL,
		timezone:   timezone,
		loc:        loc,
	}
}

// HourlyAirQuality fetches the hourly US AQI series for a coordinate.
func (c *AirQualityClient) HourlyAirQuality(ctx context.Context, coord models.Coordinate) (*models.AirQualitySeries, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.4f", coord.Latitude))
	values.Set("longitude", fmt.Sprintf("%.4f", coord.Longitude))
	values.Set("hourly", "us_aqi")
	values.Set("timezone", c.timezone)

	var response airQualityResponse
	if err := c.GetJSON(ctx, c.baseURL+"/air-quality?"+values.Encode(), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch air quality: %w", err)
	}

	times, err := parseHourlyTimes(response.Hourly.Time, c.loc)
	if err != nil {
		return nil, err
	}

	if len(response.Hourly.USAQI) != len(times) {
		return nil, fmt.Errorf("misaligned air-quality series: %d values for %d timestamps",
			len(response.Hourly.USAQI), len(times))
	}

	return &models.AirQualitySeries{
		Times: times,
		AQI:   response.Hourly.USAQI,
	}, nil
}
