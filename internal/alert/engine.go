package alert

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/arca/internal/weather"
)

// Thresholds for each rule. A value at or above Trigger fires the rule; a
// value at or above Maximum escalates it to MaximumAlert.
const (
	heatTrigger  = 32.0
	heatMaximum  = 36.0
	rainTrigger  = 70
	rainMaximum  = 90
	floodTrigger = 30.0
	floodMaximum = 50.0
	windTrigger  = 30.0
	windMaximum  = 50.0
	gustsTrigger = 50.0
	gustsMaximum = 70.0
)

// Engine derives alerts from weather observations.
type Engine struct {
	clock clockwork.Clock
	newID func() string
}

// NewEngine creates an Engine. A nil clock uses the real clock.
func NewEngine(clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{clock: clock, newID: uuid.NewString}
}

// Now returns the engine's current time truncated to the minute.
func (e *Engine) Now() time.Time {
	return e.clock.Now().Truncate(time.Minute)
}

// Derive evaluates every rule independently against the observation. An
// unavailable observation yields no alerts.
func (e *Engine) Derive(obs weather.Observation, neighborhood, city string) (alerts []Alert) {
	if !obs.Available {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("alert derivation failed")
			alerts = nil
		}
	}()

	r := obs.Reading
	now := e.Now()
	emit := func(t Type, s Severity, description string) {
		alerts = append(alerts, e.build(t, s, description, now, neighborhood, city))
	}

	if r.TemperatureC >= heatTrigger {
		sev := Informational
		if r.TemperatureC >= heatMaximum {
			sev = MaximumAlert
		}
		emit(TypeExtremeHeat, sev, fmt.Sprintf("Temperature of %.1f °C detected in your region.", r.TemperatureC))
	}

	if r.RainProbability >= rainTrigger {
		emit(TypeHeavyRain, tier(float64(r.RainProbability), rainMaximum),
			fmt.Sprintf("%d%% chance of rain in the coming hours.", r.RainProbability))
	}

	if r.Condition == weather.ConditionStorm || r.Condition == weather.ConditionHeavyRain {
		emit(TypeStorm, MaximumAlert,
			fmt.Sprintf("Current condition: %s. Risk of lightning and strong winds.", r.Condition))
	}

	if r.AccumulatedRainMM >= floodTrigger {
		emit(TypeFloodRisk, tier(r.AccumulatedRainMM, floodMaximum),
			fmt.Sprintf("%.1f mm of accumulated rain forecast for the next 24h.", r.AccumulatedRainMM))
	}

	if r.WindSpeedKmh >= windTrigger {
		emit(TypeStrongWind, tier(r.WindSpeedKmh, windMaximum),
			fmt.Sprintf("Wind speed of %.1f km/h detected. Stay in a safe place.", r.WindSpeedKmh))
	}

	if r.WindGustsKmh >= gustsTrigger {
		emit(TypeWindGusts, tier(r.WindGustsKmh, gustsMaximum),
			fmt.Sprintf("Wind gusts of up to %.1f km/h. Avoid open areas and loose objects.", r.WindGustsKmh))
	}

	return alerts
}

func tier(value, maximum float64) Severity {
	if value >= maximum {
		return MaximumAlert
	}
	return Attention
}

func (e *Engine) build(t Type, s Severity, description string, at time.Time, neighborhood, city string) Alert {
	return Alert{
		TypeTag:      t.Tag(),
		InstanceID:   e.newID(),
		Type:         t,
		Severity:     s,
		Description:  description,
		IssuedAt:     at,
		Neighborhood: neighborhood,
		City:         city,
	}
}
