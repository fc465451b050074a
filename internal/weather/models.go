package weather

// Condition is the human-readable label of an Open-Meteo weather code.
type Condition string

const (
	ConditionUnknown      Condition = "Unknown"
	ConditionClearSky     Condition = "Clear sky"
	ConditionMainlyClear  Condition = "Mainly clear"
	ConditionPartlyCloudy Condition = "Partly cloudy"
	ConditionOvercast     Condition = "Overcast"
	ConditionFog          Condition = "Fog"
	ConditionRimeFog      Condition = "Depositing rime fog"
	ConditionLightDrizzle Condition = "Light drizzle"
	ConditionLightRain    Condition = "Light rain"
	ConditionModerateRain Condition = "Moderate rain"
	ConditionHeavyRain    Condition = "Heavy rain"
	ConditionRainShowers  Condition = "Rain showers"
	ConditionStorm        Condition = "Storm"
)

var conditionByCode = map[int]Condition{
	0:  ConditionClearSky,
	1:  ConditionMainlyClear,
	2:  ConditionPartlyCloudy,
	3:  ConditionOvercast,
	45: ConditionFog,
	48: ConditionRimeFog,
	51: ConditionLightDrizzle,
	61: ConditionLightRain,
	63: ConditionModerateRain,
	65: ConditionHeavyRain,
	80: ConditionRainShowers,
	95: ConditionStorm,
}

// ConditionFromCode maps a WMO weather code to its label. Codes outside the
// fixed table map to ConditionUnknown.
func ConditionFromCode(code int) Condition {
	if c, ok := conditionByCode[code]; ok {
		return c
	}
	return ConditionUnknown
}

// Reading is the current weather at a coordinate.
type Reading struct {
	TemperatureC      float64   `json:"temperatureC"`
	RainProbability   int       `json:"rainProbability"`
	AccumulatedRainMM float64   `json:"accumulatedRainMm"`
	Condition         Condition `json:"condition"`
	WindSpeedKmh      float64   `json:"windSpeedKmh"`
	WindGustsKmh      float64   `json:"windGustsKmh"`
}

// Fallback is the reading reported when the gateway cannot be reached.
func Fallback() Reading {
	return Reading{
		TemperatureC: 28.0,
		Condition:    ConditionUnknown,
	}
}

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
