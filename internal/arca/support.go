package arca

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/i474232898/arca/internal/hydration"
	"github.com/i474232898/arca/internal/support"
	"github.com/i474232898/arca/internal/weather"
)

// NearbySupportPoints bands the support points the user may see by distance
// from the user.
func (s *Service) NearbySupportPoints(userID int) (support.Report, error) {
	u, err := s.User(userID)
	if err != nil {
		return support.Report{}, err
	}
	return support.FindNearby(u.Lat, u.Lon, s.points.List(), support.VisibleTo(u.Role)), nil
}

// SupportPoint returns one point. Pending points are restricted to
// administrators.
func (s *Service) SupportPoint(userID, pointID int) (support.Point, error) {
	u, err := s.User(userID)
	if err != nil {
		return support.Point{}, err
	}
	p, err := s.points.Get(pointID)
	if err != nil {
		return support.Point{}, fmt.Errorf("support point %d: %w", pointID, err)
	}
	if !support.VisibleTo(u.Role)(p) {
		return support.Point{}, ErrRestricted
	}
	return p, nil
}

// AllSupportPoints lists every point regardless of status. Administrators only.
func (s *Service) AllSupportPoints(userID int) ([]support.Point, error) {
	u, err := s.User(userID)
	if err != nil {
		return nil, err
	}
	if !u.Role.IsAdmin() {
		return nil, ErrRestricted
	}
	return s.points.List(), nil
}

// RegisterSupportPoint validates r and stores it as a pending point.
func (s *Service) RegisterSupportPoint(r support.Registration) (support.Point, error) {
	p, err := s.points.Add(r)
	if err != nil {
		return support.Point{}, err
	}
	if s.metrics != nil {
		s.metrics.SupportPointsRegistered.Inc()
	}
	log.WithFields(log.Fields{"point_id": p.ID, "city": p.City}).Info("support point registered for review")
	return p, nil
}

// ApproveSupportPoint marks a pending point as approved. Administrators only.
func (s *Service) ApproveSupportPoint(userID, pointID int) (support.Point, error) {
	u, err := s.User(userID)
	if err != nil {
		return support.Point{}, err
	}
	if !u.Role.IsAdmin() {
		return support.Point{}, ErrRestricted
	}
	p, err := s.points.Approve(pointID)
	if err != nil {
		return support.Point{}, fmt.Errorf("support point %d: %w", pointID, err)
	}
	log.WithFields(log.Fields{"point_id": p.ID, "approved_by": u.ID}).Info("support point approved")
	return p, nil
}

// HydrationReport is a daily water recommendation.
type HydrationReport struct {
	TemperatureC float64 `json:"temperature_c"`
	// FallbackTemperature is true when the weather gateway failed and the
	// default reading's temperature was used.
	FallbackTemperature bool    `json:"fallback_temperature"`
	WeightKg            float64 `json:"weight_kg"`
	Liters              float64 `json:"liters"`
}

// Hydration recommends a daily water intake from the user's weight and the
// current temperature at the user's location.
func (s *Service) Hydration(ctx context.Context, userID int, weightKg float64) (HydrationReport, error) {
	u, err := s.User(userID)
	if err != nil {
		return HydrationReport{}, err
	}
	if !(weightKg > 0) {
		return HydrationReport{}, hydration.ErrInvalidWeight
	}

	obs := s.observe(ctx, u)
	temp := obs.Reading.TemperatureC
	if !obs.Available {
		temp = weather.Fallback().TemperatureC
	}
	liters, err := hydration.Recommend(temp, weightKg)
	if err != nil {
		return HydrationReport{}, err
	}
	return HydrationReport{
		TemperatureC:        temp,
		FallbackTemperature: !obs.Available,
		WeightKg:            weightKg,
		Liters:              liters,
	}, nil
}
