package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"ridgecast/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAirQualityClient_HourlyAirQuality(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"hourly": {
			"time": ["2026-08-29T04:00", "2026-08-29T05:00"],
			"us_aqi": [45, 40]
		}}`))
	}))
	defer server.Close()

	c := NewAirQualityClient(server.URL, "America/Denver", time.UTC,
		testClientConfig(), zap.NewNop(), observability.NewMetricsForTesting())

	series, err := c.HourlyAirQuality(context.Background(), testCoord)
	require.NoError(t, err)

	assert.Equal(t, "/air-quality", gotPath)
	assert.Equal(t, "39.9884", gotQuery.Get("latitude"))
	assert.Equal(t, "us_aqi", gotQuery.Get("hourly"))
	assert.Equal(t, "America/Denver", gotQuery.Get("timezone"))
	assert.Empty(t, gotQuery.Get("elevation"), "air-quality queries take no elevation")

	require.Len(t, series.Times, 2)
	assert.Equal(t, time.Date(2026, 8, 29, 5, 0, 0, 0, time.UTC), series.Times[1])
	assert.Equal(t, []float64{45, 40}, series.AQI)
}

func TestAirQualityClient_MisalignedSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hourly": {"time": ["2026-08-29T05:00"], "us_aqi": [40, 41]}}`))
	}))
	defer server.Close()

	c := NewAirQualityClient(server.URL, "UTC", time.UTC,
		testClientConfig(), zap.NewNop(), observability.NewMetricsForTesting())

	_, err := c.HourlyAirQuality(context.Background(), testCoord)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "misaligned air-quality series")
}

func TestAirQualityClient_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewAirQualityClient(server.URL, "UTC", time.UTC,
		testClientConfig(), zap.NewNop(), observability.NewMetricsForTesting())

	_, err := c.HourlyAirQuality(context.Background(), testCoord)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "open-meteo-air-quality", provErr.Provider)
	assert.Equal(t, http.StatusBadGateway, provErr.Status)
}
