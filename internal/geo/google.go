package geo

import (
	"context"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"
)

// reverseFunc matches geocoder.GeocodingReverse.
type reverseFunc func(geocoder.Location) ([]geocoder.Address, error)

var apiKeyMu sync.Mutex

// GoogleGeocoder implements Geocoder on top of the Google Geocoding API
// through kelvins/geocoder.
type GoogleGeocoder struct {
	apiKey  string
	reverse reverseFunc
}

// NewGoogleGeocoder creates a Google reverse geocoder.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{apiKey: apiKey, reverse: geocoder.GeocodingReverse}
}

func (g *GoogleGeocoder) Name() string {
	return "google"
}

func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (Region, error) {
	if g.apiKey == "" {
		return Region{}, fmt.Errorf("google geocoder api key is not configured")
	}
	if err := ctx.Err(); err != nil {
		return Region{}, err
	}

	// The library reads its key from a package variable.
	apiKeyMu.Lock()
	geocoder.ApiKey = g.apiKey
	addresses, err := g.reverse(geocoder.Location{Latitude: lat, Longitude: lon})
	apiKeyMu.Unlock()
	if err != nil {
		return Region{}, fmt.Errorf("google reverse geocode: %w", err)
	}
	if len(addresses) == 0 {
		return Region{}, ErrNoResults
	}

	addr := addresses[0]
	return Region{
		Street:       addr.Street,
		Neighborhood: firstNonEmpty(addr.Neighborhood, addr.District),
		City:         firstNonEmpty(addr.City, addr.County),
		State:        addr.State,
		Country:      addr.Country,
	}, nil
}
