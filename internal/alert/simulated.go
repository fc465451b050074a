package alert

import (
	"math/rand"
	"strings"
	"sync"
)

// Simulated returns the fixed demo catalog: one canned alert per type,
// stamped with the caller's location and the engine's current time.
func (e *Engine) Simulated(neighborhood, city string) []Alert {
	now := e.Now()
	canned := []struct {
		t    Type
		s    Severity
		text string
	}{
		{TypeExtremeHeat, MaximumAlert, "Temperature of 38 °C detected in your region. Risk of dehydration and heatstroke."},
		{TypeHeavyRain, Attention, "85% chance of rain in the coming hours. Stay in a safe place."},
		{TypeStorm, MaximumAlert, "Current condition: Storm. Risk of lightning and strong winds. Avoid open areas."},
		{TypeFloodRisk, Attention, "45 mm of accumulated rain forecast for the next 24h. Avoid low-lying areas."},
		{TypeStrongWind, MaximumAlert, "Wind speed of 45 km/h detected. Stay in a safe place."},
		{TypeWindGusts, MaximumAlert, "Wind gusts of up to 75 km/h. Avoid open areas and loose objects."},
	}

	alerts := make([]Alert, 0, len(canned))
	for _, c := range canned {
		alerts = append(alerts, e.build(c.t, c.s, c.text, now, neighborhood, city))
	}
	return alerts
}

// Picker chooses one alert uniformly at random from a catalog.
type Picker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPicker creates a Picker drawing from rnd. Seed rnd for reproducible picks.
func NewPicker(rnd *rand.Rand) *Picker {
	return &Picker{rnd: rnd}
}

// Pick draws one alert and keeps it only when it matches the requester's
// city, and neighborhood unless the alert's neighborhood is empty. ok is
// false when the catalog is empty or the drawn alert is filtered out.
func (p *Picker) Pick(catalog []Alert, neighborhood, city string) (Alert, bool) {
	if len(catalog) == 0 {
		return Alert{}, false
	}

	p.mu.Lock()
	a := catalog[p.rnd.Intn(len(catalog))]
	p.mu.Unlock()

	if !strings.EqualFold(a.City, city) {
		return Alert{}, false
	}
	if a.Neighborhood != "" && !strings.EqualFold(a.Neighborhood, neighborhood) {
		return Alert{}, false
	}
	return a, true
}
