// Package support models shelters and other support points: where they are,
// who may see them and how new ones are registered.
package support

import (
	"encoding/json"

	"github.com/i474232898/arca/internal/user"
)

type Status int

const (
	StatusPending Status = iota
	StatusApproved
)

func (s Status) String() string {
	if s == StatusApproved {
		return "Approved"
	}
	return "Pending"
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// DefaultNotes is stored when a registration leaves notes blank.
const DefaultNotes = "—"

// Point is a registered support point.
type Point struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Neighborhood string  `json:"neighborhood"`
	Street       string  `json:"street"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	Capacity     int     `json:"capacity"`
	Phone        string  `json:"phone"`
	Status       Status  `json:"status"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Notes        string  `json:"notes"`
}

// VisibleTo returns the visibility filter for role: administrators see every
// point, everyone else only approved ones.
func VisibleTo(role user.Role) func(Point) bool {
	if role.IsAdmin() {
		return func(Point) bool { return true }
	}
	return func(p Point) bool { return p.Status == StatusApproved }
}
