package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeGateway struct {
	reading Reading
	err     error
}

func (f fakeGateway) Name() string { return "fake" }

func (f fakeGateway) Current(context.Context, Coordinates) (Reading, error) {
	return f.reading, f.err
}

func TestConditionFromCode(t *testing.T) {
	tests := []struct {
		code     int
		expected Condition
	}{
		{0, ConditionClearSky},
		{3, ConditionOvercast},
		{48, ConditionRimeFog},
		{65, ConditionHeavyRain},
		{80, ConditionRainShowers},
		{95, ConditionStorm},
		{96, ConditionUnknown},
		{-1, ConditionUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ConditionFromCode(tt.code), "code %d", tt.code)
	}
}

func TestObserve(t *testing.T) {
	at := Coordinates{Lat: -23.55, Lon: -46.63}

	t.Run("available", func(t *testing.T) {
		want := Reading{TemperatureC: 31, Condition: ConditionStorm}
		obs := Observe(context.Background(), fakeGateway{reading: want}, at)
		assert.True(t, obs.Available)
		assert.Equal(t, want, obs.Reading)
	})

	t.Run("gateway error degrades to fallback", func(t *testing.T) {
		obs := Observe(context.Background(), fakeGateway{err: errors.New("timeout")}, at)
		assert.False(t, obs.Available)
		assert.Equal(t, 28.0, obs.Reading.TemperatureC)
		assert.Equal(t, ConditionUnknown, obs.Reading.Condition)
		assert.Zero(t, obs.Reading.RainProbability)
		assert.Zero(t, obs.Reading.WindGustsKmh)
	})

	t.Run("nil gateway", func(t *testing.T) {
		obs := Observe(context.Background(), nil, at)
		assert.Equal(t, Unavailable(), obs)
	})
}
