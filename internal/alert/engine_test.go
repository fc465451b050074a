package alert

import (
	"math/rand"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/arca/internal/weather"
)

var issuedAt = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(clockwork.NewFakeClockAt(issuedAt))
}

func derive(r weather.Reading) []Alert {
	return newTestEngine().Derive(weather.Observed(r), "Bela Vista", "São Paulo")
}

// only returns the single alert of type typ.
func only(t *testing.T, alerts []Alert, typ Type) Alert {
	t.Helper()
	var found []Alert
	for _, a := range alerts {
		if a.Type == typ {
			found = append(found, a)
		}
	}
	require.Len(t, found, 1, "expected one %s alert", typ)
	return found[0]
}

func hasType(alerts []Alert, typ Type) bool {
	for _, a := range alerts {
		if a.Type == typ {
			return true
		}
	}
	return false
}

func TestDerive_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		reading  weather.Reading
		typ      Type
		fires    bool
		severity Severity
	}{
		{"heat below trigger", weather.Reading{TemperatureC: 31.9}, TypeExtremeHeat, false, 0},
		{"heat at trigger", weather.Reading{TemperatureC: 32}, TypeExtremeHeat, true, Informational},
		{"heat just below maximum", weather.Reading{TemperatureC: 35.9}, TypeExtremeHeat, true, Informational},
		{"heat at maximum", weather.Reading{TemperatureC: 36}, TypeExtremeHeat, true, MaximumAlert},

		{"rain below trigger", weather.Reading{RainProbability: 69}, TypeHeavyRain, false, 0},
		{"rain at trigger", weather.Reading{RainProbability: 70}, TypeHeavyRain, true, Attention},
		{"rain just below maximum", weather.Reading{RainProbability: 89}, TypeHeavyRain, true, Attention},
		{"rain at maximum", weather.Reading{RainProbability: 90}, TypeHeavyRain, true, MaximumAlert},

		{"storm condition", weather.Reading{Condition: weather.ConditionStorm}, TypeStorm, true, MaximumAlert},
		{"heavy rain condition", weather.Reading{Condition: weather.ConditionHeavyRain}, TypeStorm, true, MaximumAlert},
		{"moderate rain condition", weather.Reading{Condition: weather.ConditionModerateRain}, TypeStorm, false, 0},

		{"flood below trigger", weather.Reading{AccumulatedRainMM: 29.9}, TypeFloodRisk, false, 0},
		{"flood at trigger", weather.Reading{AccumulatedRainMM: 30}, TypeFloodRisk, true, Attention},
		{"flood at maximum", weather.Reading{AccumulatedRainMM: 50}, TypeFloodRisk, true, MaximumAlert},

		{"wind below trigger", weather.Reading{WindSpeedKmh: 29.9}, TypeStrongWind, false, 0},
		{"wind at trigger", weather.Reading{WindSpeedKmh: 30}, TypeStrongWind, true, Attention},
		{"wind at maximum", weather.Reading{WindSpeedKmh: 50}, TypeStrongWind, true, MaximumAlert},

		{"gusts below trigger", weather.Reading{WindGustsKmh: 49.9}, TypeWindGusts, false, 0},
		{"gusts at trigger", weather.Reading{WindGustsKmh: 50}, TypeWindGusts, true, Attention},
		{"gusts just below maximum", weather.Reading{WindGustsKmh: 69.9}, TypeWindGusts, true, Attention},
		{"gusts at maximum", weather.Reading{WindGustsKmh: 70}, TypeWindGusts, true, MaximumAlert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := derive(tt.reading)
			if !tt.fires {
				assert.False(t, hasType(alerts, tt.typ))
				return
			}
			a := only(t, alerts, tt.typ)
			assert.Equal(t, tt.severity, a.Severity)
			assert.Equal(t, tt.typ.Tag(), a.TypeTag)
		})
	}
}

func TestDerive_HotClearDay(t *testing.T) {
	alerts := derive(weather.Reading{TemperatureC: 38, Condition: weather.ConditionClearSky})

	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, TypeExtremeHeat, a.Type)
	assert.Equal(t, MaximumAlert, a.Severity)
	assert.Equal(t, TagExtremeHeat, a.TypeTag)
	assert.Equal(t, "Bela Vista", a.Neighborhood)
	assert.Equal(t, "São Paulo", a.City)
	assert.Contains(t, a.Description, "38.0 °C")
	assert.Equal(t, "2025-03-14 15:09", a.IssuedAtText())
	assert.NotEmpty(t, a.InstanceID)
}

func TestDerive_MultipleRulesInOrder(t *testing.T) {
	alerts := derive(weather.Reading{
		TemperatureC:      40,
		RainProbability:   95,
		AccumulatedRainMM: 60,
		Condition:         weather.ConditionStorm,
		WindSpeedKmh:      55,
		WindGustsKmh:      80,
	})

	require.Len(t, alerts, 6)
	want := []Type{TypeExtremeHeat, TypeHeavyRain, TypeStorm, TypeFloodRisk, TypeStrongWind, TypeWindGusts}
	ids := map[string]bool{}
	for i, a := range alerts {
		assert.Equal(t, want[i], a.Type)
		assert.Equal(t, MaximumAlert, a.Severity)
		ids[a.InstanceID] = true
	}
	assert.Len(t, ids, 6, "instance ids must be unique")
}

func TestDerive_UnavailableYieldsNothing(t *testing.T) {
	obs := weather.Unavailable()
	obs.Reading.TemperatureC = 45
	assert.Empty(t, newTestEngine().Derive(obs, "x", "y"))
}

func TestDerive_CalmWeather(t *testing.T) {
	assert.Empty(t, derive(weather.Fallback()))
}

func TestDerive_RecoversFromPanic(t *testing.T) {
	e := newTestEngine()
	e.newID = func() string { panic("id source exhausted") }

	var alerts []Alert
	assert.NotPanics(t, func() {
		alerts = e.Derive(weather.Observed(weather.Reading{TemperatureC: 40}), "a", "b")
	})
	assert.Empty(t, alerts)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "Informational", Informational.String())
	assert.Equal(t, "Attention", Attention.String())
	assert.Equal(t, "MaximumAlert", MaximumAlert.String())
	assert.Equal(t, "Unknown", Severity(0).String())
	assert.True(t, Informational < Attention && Attention < MaximumAlert)
}

func TestSimulated(t *testing.T) {
	catalog := newTestEngine().Simulated("Bela Vista", "São Paulo")
	require.Len(t, catalog, 6)

	bySeverity := map[Type]Severity{}
	for _, a := range catalog {
		bySeverity[a.Type] = a.Severity
		assert.Equal(t, a.Type.Tag(), a.TypeTag)
		assert.Equal(t, "São Paulo", a.City)
		assert.Equal(t, issuedAt.Truncate(time.Minute), a.IssuedAt)
	}
	assert.Equal(t, map[Type]Severity{
		TypeExtremeHeat: MaximumAlert,
		TypeHeavyRain:   Attention,
		TypeStorm:       MaximumAlert,
		TypeFloodRisk:   Attention,
		TypeStrongWind:  MaximumAlert,
		TypeWindGusts:   MaximumAlert,
	}, bySeverity)
}

func TestPicker(t *testing.T) {
	catalog := newTestEngine().Simulated("Bela Vista", "São Paulo")

	t.Run("deterministic with a seed", func(t *testing.T) {
		a, okA := NewPicker(rand.New(rand.NewSource(7))).Pick(catalog, "bela vista", "SÃO PAULO")
		b, okB := NewPicker(rand.New(rand.NewSource(7))).Pick(catalog, "bela vista", "SÃO PAULO")
		require.True(t, okA)
		require.True(t, okB)
		assert.Equal(t, a.Type, b.Type)
	})

	t.Run("covers the catalog", func(t *testing.T) {
		p := NewPicker(rand.New(rand.NewSource(1)))
		seen := map[Type]bool{}
		for i := 0; i < 500; i++ {
			a, ok := p.Pick(catalog, "Bela Vista", "São Paulo")
			require.True(t, ok)
			seen[a.Type] = true
		}
		assert.Len(t, seen, 6)
	})

	t.Run("other city is filtered out", func(t *testing.T) {
		_, ok := NewPicker(rand.New(rand.NewSource(1))).Pick(catalog, "Bela Vista", "Lima")
		assert.False(t, ok)
	})

	t.Run("other neighborhood is filtered out", func(t *testing.T) {
		_, ok := NewPicker(rand.New(rand.NewSource(1))).Pick(catalog, "Moema", "São Paulo")
		assert.False(t, ok)
	})

	t.Run("empty neighborhood matches any", func(t *testing.T) {
		cityWide := newTestEngine().Simulated("", "São Paulo")
		_, ok := NewPicker(rand.New(rand.NewSource(1))).Pick(cityWide, "Moema", "são paulo")
		assert.True(t, ok)
	})

	t.Run("empty catalog", func(t *testing.T) {
		_, ok := NewPicker(rand.New(rand.NewSource(1))).Pick(nil, "", "")
		assert.False(t, ok)
	})
}
