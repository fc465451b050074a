package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/arca/internal/common"
	"github.com/i474232898/arca/internal/resilient"
	"github.com/i474232898/arca/internal/weather"
)

const weatherAPIURL = "https://api.weatherapi.com/v1/forecast.json"

// WeatherAPIProvider implements weather.Gateway for WeatherAPI.com. It is used
// as a secondary source behind Open-Meteo when an API key is configured.
type WeatherAPIProvider struct {
	apiKey  string
	baseURL string
	client  *resilient.Client
}

func NewWeatherAPIProvider(client *http.Client, apiKey, baseURL string, opts ...resilient.Option) *WeatherAPIProvider {
	if baseURL == "" {
		baseURL = weatherAPIURL
	}
	return &WeatherAPIProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  resilient.New("weatherapi", client, opts...),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.client.Name()
}

func (p *WeatherAPIProvider) Current(ctx context.Context, at weather.Coordinates) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("weatherapi api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", fmt.Sprintf("%f,%f", at.Lat, at.Lon))
		values.Set("days", "1")
		values.Set("aqi", "no")
		values.Set("alerts", "no")

		return http.NewRequest(http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := p.client.Do(ctx, buildRequest)
	if err != nil {
		return weather.Reading{}, fmt.Errorf("weatherapi request: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			TempC     float64 `json:"temp_c"`
			WindKph   float64 `json:"wind_kph"`
			GustKph   float64 `json:"gust_kph"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
		Forecast struct {
			ForecastDay []struct {
				Day struct {
					TotalPrecipMm     float64 `json:"totalprecip_mm"`
					DailyChanceOfRain int     `json:"daily_chance_of_rain"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("decode weatherapi response: %w", err)
	}

	r := weather.Reading{
		TemperatureC: payload.Current.TempC,
		Condition:    mapWeatherAPICondition(payload.Current.Condition.Text),
		WindSpeedKmh: payload.Current.WindKph,
		WindGustsKmh: payload.Current.GustKph,
	}
	if days := payload.Forecast.ForecastDay; len(days) > 0 {
		r.RainProbability = days[0].Day.DailyChanceOfRain
		r.AccumulatedRainMM = days[0].Day.TotalPrecipMm
	}
	return r, nil
}

// mapWeatherAPICondition folds WeatherAPI's free-text conditions onto the
// Open-Meteo labels used everywhere else.
func mapWeatherAPICondition(text string) weather.Condition {
	t := strings.ToLower(text)
	switch {
	case t == "":
		return weather.ConditionUnknown
	case common.HasAny(t, "thunder", "storm"):
		return weather.ConditionStorm
	case strings.Contains(t, "torrential"):
		return weather.ConditionHeavyRain
	case strings.Contains(t, "shower"):
		return weather.ConditionRainShowers
	case strings.Contains(t, "heavy rain"):
		return weather.ConditionHeavyRain
	case strings.Contains(t, "moderate rain"):
		return weather.ConditionModerateRain
	case strings.Contains(t, "drizzle"):
		return weather.ConditionLightDrizzle
	case strings.Contains(t, "rain"):
		return weather.ConditionLightRain
	case strings.Contains(t, "freezing fog"):
		return weather.ConditionRimeFog
	case common.HasAny(t, "fog", "mist"):
		return weather.ConditionFog
	case strings.Contains(t, "overcast"):
		return weather.ConditionOvercast
	case strings.Contains(t, "partly"):
		return weather.ConditionPartlyCloudy
	case strings.Contains(t, "cloudy"):
		return weather.ConditionOvercast
	case common.HasAny(t, "sunny", "clear"):
		return weather.ConditionClearSky
	default:
		return weather.ConditionUnknown
	}
}
