// Package geo resolves coordinates into the street, neighborhood, city,
// state and country strings used to label alerts and support points.
package geo

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Placeholders used when a reverse-geocoding result lacks a component.
const (
	UnidentifiedStreet       = "Street not identified"
	UnidentifiedNeighborhood = "Neighborhood not identified"
	UnidentifiedCity         = "City not identified"
	UnidentifiedState        = "State not identified"
	UnidentifiedCountry      = "Country not identified"
)

// Region is a reverse-geocoded location. Identified is false when no
// geocoder answered and every component is a placeholder.
type Region struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Identified   bool   `json:"identified"`
}

// HasCity reports whether City names a real city rather than a placeholder.
func (r Region) HasCity() bool {
	return r.Identified && r.City != "" && r.City != UnidentifiedCity
}

// Unidentified returns a region made only of placeholders.
func Unidentified() Region {
	return Region{
		Street:       UnidentifiedStreet,
		Neighborhood: UnidentifiedNeighborhood,
		City:         UnidentifiedCity,
		State:        UnidentifiedState,
		Country:      UnidentifiedCountry,
	}
}

// WithPlaceholders fills empty components with their placeholder.
func (r Region) WithPlaceholders() Region {
	u := Unidentified()
	if r.Street == "" {
		r.Street = u.Street
	}
	if r.Neighborhood == "" {
		r.Neighborhood = u.Neighborhood
	}
	if r.City == "" {
		r.City = u.City
	}
	if r.State == "" {
		r.State = u.State
	}
	if r.Country == "" {
		r.Country = u.Country
	}
	return r
}

// Geocoder converts coordinates to a Region.
type Geocoder interface {
	Name() string
	ReverseGeocode(ctx context.Context, lat, lon float64) (Region, error)
}

// Resolve reverse-geocodes the coordinates and never fails: a nil geocoder
// or a lookup error yields the all-placeholder region.
func Resolve(ctx context.Context, g Geocoder, lat, lon float64) Region {
	if g == nil {
		return Unidentified()
	}
	region, err := g.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		log.WithFields(log.Fields{
			"geocoder": g.Name(),
			"lat":      lat,
			"lon":      lon,
			"error":    err,
		}).Warn("reverse geocoding failed; using unidentified region")
		return Unidentified()
	}
	region = region.WithPlaceholders()
	region.Identified = true
	return region
}
