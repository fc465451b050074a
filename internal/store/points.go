package store

import (
	"sync"

	"github.com/i474232898/arca/internal/support"
)

// SupportPoints is the concurrency-safe support point collection.
type SupportPoints struct {
	mu     sync.RWMutex
	points []support.Point
}

// NewSupportPoints creates the collection with an initial set of points.
func NewSupportPoints(seed ...support.Point) *SupportPoints {
	return &SupportPoints{points: append([]support.Point(nil), seed...)}
}

// List returns a copy of every point in insertion order.
func (s *SupportPoints) List() []support.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]support.Point(nil), s.points...)
}

func (s *SupportPoints) Get(id int) (support.Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.points {
		if p.ID == id {
			return p, nil
		}
	}
	return support.Point{}, ErrNotFound
}

// Add validates r and stores it as a pending point with id max(ids)+1.
func (s *SupportPoints) Add(r support.Registration) (support.Point, error) {
	if err := r.Validate(); err != nil {
		return support.Point{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, p := range s.points {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	p := r.Point(maxID + 1)
	s.points = append(s.points, p)
	return p, nil
}

// Approve marks a point as approved. Approving an approved point is a no-op.
func (s *SupportPoints) Approve(id int) (support.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.points {
		if s.points[i].ID == id {
			s.points[i].Status = support.StatusApproved
			return s.points[i], nil
		}
	}
	return support.Point{}, ErrNotFound
}
