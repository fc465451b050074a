package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/i474232898/arca/internal/resilient"
	"github.com/i474232898/arca/internal/weather"
)

const openMeteoURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoProvider implements weather.Gateway for Open-Meteo. It needs no API key.
type OpenMeteoProvider struct {
	baseURL  string
	timezone string
	client   *resilient.Client
}

// NewOpenMeteoProvider creates the gateway. An empty baseURL selects the public API.
func NewOpenMeteoProvider(client *http.Client, baseURL string, opts ...resilient.Option) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = openMeteoURL
	}
	return &OpenMeteoProvider{
		baseURL:  baseURL,
		timezone: "America/Sao_Paulo",
		client:   resilient.New("openmeteo", client, opts...),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.client.Name()
}

func (p *OpenMeteoProvider) Current(ctx context.Context, at weather.Coordinates) (weather.Reading, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", at.Lat))
		values.Set("longitude", fmt.Sprintf("%f", at.Lon))
		values.Set("current_weather", "true")
		values.Set("hourly", "precipitation_probability,precipitation,windspeed_10m,windgusts_10m")
		values.Set("daily", "precipitation_sum")
		values.Set("timezone", p.timezone)
		values.Set("windspeed_unit", "kmh")

		return http.NewRequest(http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := p.client.Do(ctx, buildRequest)
	if err != nil {
		return weather.Reading{}, fmt.Errorf("openmeteo request: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather *struct {
			Temperature *float64 `json:"temperature"`
			WeatherCode int      `json:"weathercode"`
		} `json:"current_weather"`
		Hourly struct {
			PrecipitationProbability []float64 `json:"precipitation_probability"`
			WindSpeed                []float64 `json:"windspeed_10m"`
			WindGusts                []float64 `json:"windgusts_10m"`
		} `json:"hourly"`
		Daily struct {
			PrecipitationSum []float64 `json:"precipitation_sum"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("decode openmeteo response: %w", err)
	}

	// Missing fields keep the fallback values.
	r := weather.Fallback()
	if cw := payload.CurrentWeather; cw != nil {
		if cw.Temperature != nil {
			r.TemperatureC = *cw.Temperature
		}
		r.Condition = weather.ConditionFromCode(cw.WeatherCode)
	} else {
		r.Condition = weather.ConditionFromCode(0)
	}
	r.RainProbability = int(math.Round(first(payload.Hourly.PrecipitationProbability)))
	r.AccumulatedRainMM = first(payload.Daily.PrecipitationSum)
	r.WindSpeedKmh = first(payload.Hourly.WindSpeed)
	r.WindGustsKmh = first(payload.Hourly.WindGusts)

	return r, nil
}

func first(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[0]
}
