// Package arca exposes the alerting, shelter and hydration use cases as plain
// request/response calls shared by the HTTP API, the console and the
// scheduler.
package arca

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/i474232898/arca/internal/alert"
	"github.com/i474232898/arca/internal/geo"
	"github.com/i474232898/arca/internal/observability"
	"github.com/i474232898/arca/internal/store"
	"github.com/i474232898/arca/internal/user"
	"github.com/i474232898/arca/internal/weather"
)

// ErrRestricted is returned when the requesting user's role does not allow
// the operation.
var ErrRestricted = errors.New("restricted to administrators")

// Deps are the collaborators of a Service. Weather, Geocoder and Metrics may
// be nil.
type Deps struct {
	Users    *store.Users
	Points   *store.SupportPoints
	AlertLog *store.AlertLog
	Weather  weather.Gateway
	Geocoder geo.Geocoder
	Engine   *alert.Engine
	Picker   *alert.Picker
	Metrics  *observability.Metrics
}

type Service struct {
	users    *store.Users
	points   *store.SupportPoints
	alertLog *store.AlertLog
	weather  weather.Gateway
	geocoder geo.Geocoder
	engine   *alert.Engine
	picker   *alert.Picker
	metrics  *observability.Metrics
}

func NewService(d Deps) *Service {
	return &Service{
		users:    d.Users,
		points:   d.Points,
		alertLog: d.AlertLog,
		weather:  d.Weather,
		geocoder: d.Geocoder,
		engine:   d.Engine,
		picker:   d.Picker,
		metrics:  d.Metrics,
	}
}

func (s *Service) Users() []user.User {
	return s.users.List()
}

func (s *Service) User(id int) (user.User, error) {
	u, err := s.users.Get(id)
	if err != nil {
		return user.User{}, fmt.Errorf("user %d: %w", id, err)
	}
	return u, nil
}

// ProfileUpdate carries the editable profile fields; nil fields are kept.
type ProfileUpdate struct {
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// UpdateProfile validates every provided field before changing any of them.
func (s *Service) UpdateProfile(id int, upd ProfileUpdate) (user.User, error) {
	u, err := s.User(id)
	if err != nil {
		return user.User{}, err
	}
	if upd.Email != nil {
		if err := user.ValidateEmail(*upd.Email); err != nil {
			return user.User{}, err
		}
	}
	if upd.Phone != nil {
		if err := user.ValidatePhone(*upd.Phone); err != nil {
			return user.User{}, err
		}
	}

	if upd.Email != nil {
		if u, err = s.users.UpdateEmail(id, *upd.Email); err != nil {
			return user.User{}, err
		}
	}
	if upd.Phone != nil {
		if u, err = s.users.UpdatePhone(id, *upd.Phone); err != nil {
			return user.User{}, err
		}
	}
	log.WithField("user_id", id).Info("profile updated")
	return u, nil
}

// Region resolves the user's location, degrading to placeholders.
func (s *Service) Region(ctx context.Context, userID int) (geo.Region, error) {
	u, err := s.User(userID)
	if err != nil {
		return geo.Region{}, err
	}
	return geo.Resolve(ctx, s.geocoder, u.Lat, u.Lon), nil
}

func (s *Service) observe(ctx context.Context, u user.User) weather.Observation {
	obs := weather.Observe(ctx, s.weather, weather.Coordinates{Lat: u.Lat, Lon: u.Lon})
	if !obs.Available && s.metrics != nil {
		s.metrics.WeatherUnavailable.Inc()
	}
	return obs
}

// record writes alerts to the log and returns how many were new.
func (s *Service) record(alerts []alert.Alert) int {
	recorded := 0
	for _, a := range alerts {
		ok := s.alertLog.Record(a)
		if ok {
			recorded++
		}
		if s.metrics != nil {
			result := "duplicate"
			if ok {
				result = "recorded"
			}
			s.metrics.AlertLog.WithLabelValues(result).Inc()
		}
	}
	return recorded
}
