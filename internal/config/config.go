package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds every outbound gateway request.
	HTTPTimeout time.Duration

	OpenWeatherAPIKey    string
	WeatherAPIKey        string
	OpenCageAPIKey       string
	GoogleGeocoderAPIKey string

	GeocodeCacheSize int
	// WeatherCacheTTL of 0 disables the weather cache.
	WeatherCacheTTL time.Duration

	// AlertScanInterval of 0 disables the periodic alert scan.
	AlertScanInterval time.Duration

	LogLevel  string
	LogFormat string

	// RandomSeed drives the simulated alert picker and the console's initial
	// user; 0 seeds from the clock.
	RandomSeed int64
}

// Load reads configuration from .env and the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}
	cfg := &AppConfig{
		Port:                 getenvDefault("PORT", "8080"),
		OpenWeatherAPIKey:    os.Getenv("OPENWEATHER_API_KEY"),
		WeatherAPIKey:        os.Getenv("WEATHERAPI_API_KEY"),
		OpenCageAPIKey:       os.Getenv("OPENCAGE_API_KEY"),
		GoogleGeocoderAPIKey: os.Getenv("GOOGLE_GEOCODER_API_KEY"),
		LogLevel:             getenvDefault("LOG_LEVEL", "info"),
		LogFormat:            getenvDefault("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: must be positive")
	}
	if cfg.WeatherCacheTTL, err = getenvDuration("WEATHER_CACHE_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.AlertScanInterval, err = getenvDuration("ALERT_SCAN_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.GeocodeCacheSize, err = getenvInt("GEOCODE_CACHE_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.GeocodeCacheSize <= 0 {
		return nil, fmt.Errorf("invalid GEOCODE_CACHE_SIZE: must be positive")
	}

	seed, err := getenvInt("RANDOM_SEED", 0)
	if err != nil {
		return nil, err
	}
	cfg.RandomSeed = int64(seed)

	return cfg, nil
}

// Seed returns RandomSeed, or the current time when it is unset.
func (c *AppConfig) Seed() int64 {
	if c.RandomSeed != 0 {
		return c.RandomSeed
	}
	return time.Now().UnixNano()
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
