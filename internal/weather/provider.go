package weather

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Gateway abstracts a source of current weather readings (e.g. Open-Meteo).
type Gateway interface {
	Name() string
	Current(ctx context.Context, at Coordinates) (Reading, error)
}

// Observation is the outcome of asking a Gateway for the current weather.
// When Available is false the Reading holds Fallback values and must not be
// used to derive alerts.
type Observation struct {
	Reading   Reading `json:"reading"`
	Available bool    `json:"available"`
}

// Observed wraps a successful reading.
func Observed(r Reading) Observation {
	return Observation{Reading: r, Available: true}
}

// Unavailable is the observation used when the gateway failed.
func Unavailable() Observation {
	return Observation{Reading: Fallback()}
}

// Observe queries the gateway and converts any failure into Unavailable.
func Observe(ctx context.Context, gw Gateway, at Coordinates) Observation {
	if gw == nil {
		return Unavailable()
	}
	r, err := gw.Current(ctx, at)
	if err != nil {
		log.WithFields(log.Fields{
			"provider": gw.Name(),
			"lat":      at.Lat,
			"lon":      at.Lon,
			"error":    err,
		}).Warn("weather gateway unavailable; using fallback reading")
		return Unavailable()
	}
	return Observed(r)
}
