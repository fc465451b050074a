package arca

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/i474232898/arca/internal/alert"
	"github.com/i474232898/arca/internal/geo"
	"github.com/i474232898/arca/internal/store"
	"github.com/i474232898/arca/internal/weather"
)

// AlertReport is the answer to an alert request for one user.
type AlertReport struct {
	Region geo.Region `json:"region"`
	// WeatherAvailable is false when the gateway failed; Alerts is then empty.
	WeatherAvailable bool            `json:"weather_available"`
	Reading          weather.Reading `json:"reading"`
	Alerts           []alert.Alert   `json:"alerts"`
	// Recorded counts the alerts that were new to the alert log.
	Recorded int `json:"recorded"`
}

// LiveAlerts derives alerts from the current weather at the user's location
// and records them in the alert log.
func (s *Service) LiveAlerts(ctx context.Context, userID int) (AlertReport, error) {
	u, err := s.User(userID)
	if err != nil {
		return AlertReport{}, err
	}

	region := geo.Resolve(ctx, s.geocoder, u.Lat, u.Lon)
	obs := s.observe(ctx, u)
	alerts := s.engine.Derive(obs, region.Neighborhood, region.City)
	if alerts == nil {
		alerts = []alert.Alert{}
	}
	if s.metrics != nil {
		for _, a := range alerts {
			s.metrics.AlertsDerived.WithLabelValues(string(a.Type)).Inc()
		}
	}

	report := AlertReport{
		Region:           region,
		WeatherAvailable: obs.Available,
		Reading:          obs.Reading,
		Alerts:           alerts,
		Recorded:         s.record(alerts),
	}
	log.WithFields(log.Fields{
		"user_id":  userID,
		"city":     region.City,
		"alerts":   len(alerts),
		"recorded": report.Recorded,
		"weather":  obs.Available,
	}).Debug("live alerts derived")
	return report, nil
}

// SimulatedAlert draws one canned alert for the user's region. The report
// holds no alert when the draw does not match the user's location.
func (s *Service) SimulatedAlert(ctx context.Context, userID int) (AlertReport, error) {
	u, err := s.User(userID)
	if err != nil {
		return AlertReport{}, err
	}

	region := geo.Resolve(ctx, s.geocoder, u.Lat, u.Lon)
	catalog := s.engine.Simulated(region.Neighborhood, region.City)

	report := AlertReport{Region: region, WeatherAvailable: true, Alerts: []alert.Alert{}}
	if a, ok := s.picker.Pick(catalog, region.Neighborhood, region.City); ok {
		report.Alerts = append(report.Alerts, a)
		report.Recorded = s.record(report.Alerts)
	}
	return report, nil
}

// History returns the alert log as the user may see it: administrators get
// every city, other users only their own. A user whose city cannot be
// resolved gets no entries.
func (s *Service) History(ctx context.Context, userID int) ([]alert.Alert, error) {
	u, err := s.User(userID)
	if err != nil {
		return nil, err
	}
	if u.Role.IsAdmin() {
		return s.alertLog.History(store.HistoryFilter{All: true}), nil
	}
	region := geo.Resolve(ctx, s.geocoder, u.Lat, u.Lon)
	if !region.HasCity() {
		log.WithField("user_id", userID).Warn("city not identified; alert history withheld")
		return []alert.Alert{}, nil
	}
	return s.alertLog.History(store.HistoryFilter{City: region.City}), nil
}

// ScanAll derives and records live alerts for every user and returns how
// many new alerts reached the log. Per-user failures are logged and skipped.
func (s *Service) ScanAll(ctx context.Context) int {
	recorded := 0
	for _, u := range s.users.List() {
		if ctx.Err() != nil {
			break
		}
		report, err := s.LiveAlerts(ctx, u.ID)
		if err != nil {
			log.WithError(err).WithField("user_id", u.ID).Warn("alert scan skipped user")
			continue
		}
		recorded += report.Recorded
	}
	return recorded
}
