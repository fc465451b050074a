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

const (
	openWeatherURL = "https://api.openweathermap.org/data/2.5/forecast"

	// Eight 3-hour steps cover the next 24 hours.
	openWeatherSteps = 8
	msToKmh          = 3.6
)

// OpenWeatherProvider implements weather.Gateway for OpenWeatherMap's 5 day /
// 3 hour forecast.
type OpenWeatherProvider struct {
	apiKey  string
	baseURL string
	client  *resilient.Client
}

func NewOpenWeatherProvider(client *http.Client, apiKey, baseURL string, opts ...resilient.Option) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = openWeatherURL
	}
	return &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  resilient.New("openweather", client, opts...),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.client.Name()
}

func (p *OpenWeatherProvider) Current(ctx context.Context, at weather.Coordinates) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("lat", fmt.Sprintf("%f", at.Lat))
		values.Set("lon", fmt.Sprintf("%f", at.Lon))
		values.Set("cnt", fmt.Sprintf("%d", openWeatherSteps))

		return http.NewRequest(http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := p.client.Do(ctx, buildRequest)
	if err != nil {
		return weather.Reading{}, fmt.Errorf("openweather request: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				ID int `json:"id"`
			} `json:"weather"`
			Wind struct {
				Speed float64 `json:"speed"`
				Gust  float64 `json:"gust"`
			} `json:"wind"`
			Pop  float64 `json:"pop"`
			Rain struct {
				ThreeH float64 `json:"3h"`
			} `json:"rain"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("decode openweather response: %w", err)
	}
	if len(payload.List) == 0 {
		return weather.Reading{}, fmt.Errorf("openweather response has no forecast steps")
	}

	now := payload.List[0]
	r := weather.Reading{
		TemperatureC:    now.Main.Temp,
		RainProbability: int(math.Round(now.Pop * 100)),
		Condition:       weather.ConditionUnknown,
		WindSpeedKmh:    now.Wind.Speed * msToKmh,
		WindGustsKmh:    now.Wind.Gust * msToKmh,
	}
	if len(now.Weather) > 0 {
		r.Condition = mapOpenWeatherCondition(now.Weather[0].ID)
	}
	for i, step := range payload.List {
		if i == openWeatherSteps {
			break
		}
		r.AccumulatedRainMM += step.Rain.ThreeH
	}
	return r, nil
}

// mapOpenWeatherCondition folds OpenWeatherMap condition ids onto the
// Open-Meteo labels. Snow and most atmosphere ids have no label.
func mapOpenWeatherCondition(id int) weather.Condition {
	switch {
	case id >= 200 && id < 300:
		return weather.ConditionStorm
	case id >= 300 && id < 400:
		return weather.ConditionLightDrizzle
	case id == 500, id == 511:
		return weather.ConditionLightRain
	case id == 501:
		return weather.ConditionModerateRain
	case id >= 502 && id <= 504:
		return weather.ConditionHeavyRain
	case id >= 520 && id < 600:
		return weather.ConditionRainShowers
	case id == 701, id == 741:
		return weather.ConditionFog
	case id == 800:
		return weather.ConditionClearSky
	case id == 801:
		return weather.ConditionMainlyClear
	case id == 802:
		return weather.ConditionPartlyCloudy
	case id == 803, id == 804:
		return weather.ConditionOvercast
	default:
		return weather.ConditionUnknown
	}
}
