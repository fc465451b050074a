package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/arca/internal/config"
	"github.com/i474232898/arca/internal/geo"
	"github.com/i474232898/arca/internal/observability"
	"github.com/i474232898/arca/internal/weather/providers"
)

func baseConfig() *config.AppConfig {
	return &config.AppConfig{
		HTTPTimeout:      time.Second,
		GeocodeCacheSize: 16,
		WeatherCacheTTL:  time.Minute,
		RandomSeed:       7,
	}
}

func TestWeatherGateway(t *testing.T) {
	metrics, _ := observability.NewMetricsForTesting()
	cfg := baseConfig()

	gw := WeatherGateway(cfg, http.DefaultClient, metrics)
	assert.Equal(t, "openmeteo", gw.Name())
	assert.IsType(t, &providers.CachedGateway{}, gw)

	cfg.WeatherAPIKey = "key"
	assert.Equal(t, "openmeteo+weatherapi", WeatherGateway(cfg, http.DefaultClient, metrics).Name())

	cfg.OpenWeatherAPIKey = "key"
	assert.Equal(t, "openmeteo+openweather+weatherapi", WeatherGateway(cfg, http.DefaultClient, metrics).Name())

	cfg.WeatherCacheTTL = 0
	assert.IsType(t, &providers.Failover{}, WeatherGateway(cfg, http.DefaultClient, nil))
}

func TestGeocoder(t *testing.T) {
	cfg := baseConfig()

	g, err := Geocoder(cfg, http.DefaultClient, nil)
	require.NoError(t, err)
	assert.Nil(t, g)

	cfg.GoogleGeocoderAPIKey = "google-key"
	g, err = Geocoder(cfg, http.DefaultClient, nil)
	require.NoError(t, err)
	assert.Equal(t, "google", g.Name())
	assert.IsType(t, &geo.CachedGeocoder{}, g)

	cfg.OpenCageAPIKey = "opencage-key"
	g, err = Geocoder(cfg, http.DefaultClient, nil)
	require.NoError(t, err)
	assert.Equal(t, "opencage", g.Name())

	cfg.GeocodeCacheSize = 0
	_, err = Geocoder(cfg, http.DefaultClient, nil)
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	metrics, _ := observability.NewMetricsForTesting()

	svc, err := Build(baseConfig(), metrics)
	require.NoError(t, err)
	assert.Len(t, svc.Users(), 5)

	region, err := svc.Region(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, geo.Unidentified(), region)
}
