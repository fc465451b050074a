// Package app wires configuration into the collaborators shared by the HTTP
// server and the console.
package app

import (
	"math/rand"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/i474232898/arca/internal/alert"
	"github.com/i474232898/arca/internal/arca"
	"github.com/i474232898/arca/internal/config"
	"github.com/i474232898/arca/internal/geo"
	"github.com/i474232898/arca/internal/observability"
	"github.com/i474232898/arca/internal/resilient"
	"github.com/i474232898/arca/internal/store"
	"github.com/i474232898/arca/internal/weather"
	"github.com/i474232898/arca/internal/weather/providers"
)

// Build creates the service with seeded stores and configured gateways.
func Build(cfg *config.AppConfig, metrics *observability.Metrics) (*arca.Service, error) {
	// Shared HTTP client for outbound gateway calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	geocoder, err := Geocoder(cfg, httpClient, metrics)
	if err != nil {
		return nil, err
	}

	return arca.NewService(arca.Deps{
		Users:    store.NewUsers(store.SeedUsers()...),
		Points:   store.NewSupportPoints(store.SeedSupportPoints()...),
		AlertLog: store.NewAlertLog(),
		Weather:  WeatherGateway(cfg, httpClient, metrics),
		Geocoder: geocoder,
		Engine:   alert.NewEngine(nil),
		Picker:   alert.NewPicker(rand.New(rand.NewSource(cfg.Seed()))),
		Metrics:  metrics,
	}), nil
}

func gatewayOptions(metrics *observability.Metrics) []resilient.Option {
	if metrics == nil {
		return nil
	}
	return []resilient.Option{resilient.WithObserver(metrics.GatewayObserver)}
}

// WeatherGateway returns Open-Meteo, backed in order by OpenWeather and
// WeatherAPI when their keys are set, behind the short-lived reading cache.
func WeatherGateway(cfg *config.AppConfig, httpClient *http.Client, metrics *observability.Metrics) weather.Gateway {
	opts := gatewayOptions(metrics)

	gateways := []weather.Gateway{providers.NewOpenMeteoProvider(httpClient, "", opts...)}
	if cfg.OpenWeatherAPIKey != "" {
		gateways = append(gateways, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, "", opts...))
	}
	if cfg.WeatherAPIKey != "" {
		gateways = append(gateways, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, "", opts...))
	}

	gw := gateways[0]
	if len(gateways) > 1 {
		gw = providers.NewFailover(gateways...)
	}

	var onHit func(bool)
	if metrics != nil {
		onHit = observability.CacheObserver(metrics.WeatherCache)
	}
	return providers.NewCachedGateway(gw, cfg.WeatherCacheTTL, onHit)
}

// Geocoder returns OpenCage when its key is set, otherwise Google. Without
// any key it returns nil and every region resolves to placeholders.
func Geocoder(cfg *config.AppConfig, httpClient *http.Client, metrics *observability.Metrics) (geo.Geocoder, error) {
	var inner geo.Geocoder
	switch {
	case cfg.OpenCageAPIKey != "":
		inner = geo.NewOpenCageClient(httpClient, cfg.OpenCageAPIKey, "", gatewayOptions(metrics)...)
	case cfg.GoogleGeocoderAPIKey != "":
		inner = geo.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey)
	default:
		log.Warn("no geocoder api key configured; regions will be unidentified")
		return nil, nil
	}

	var onHit func(bool)
	if metrics != nil {
		onHit = observability.CacheObserver(metrics.GeocodeCache)
	}
	cached, err := geo.NewCachedGeocoder(inner, cfg.GeocodeCacheSize, onHit)
	if err != nil {
		return nil, err
	}
	return cached, nil
}
