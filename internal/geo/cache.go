package geo

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache.
type CachedGeocoder struct {
	inner Geocoder
	cache *lru.Cache[string, Region]
	onHit func(hit bool)
}

// NewCachedGeocoder creates a cache decorator around a geocoder. onHit, when
// non-nil, is told about every lookup.
func NewCachedGeocoder(inner Geocoder, maxEntries int, onHit func(hit bool)) (*CachedGeocoder, error) {
	cache, err := lru.New[string, Region](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create geocode cache: %w", err)
	}
	return &CachedGeocoder{inner: inner, cache: cache, onHit: onHit}, nil
}

func (c *CachedGeocoder) Name() string {
	return c.inner.Name()
}

func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (Region, error) {
	key := fmt.Sprintf("rev:%.6f,%.6f", lat, lon)
	if region, ok := c.cache.Get(key); ok {
		c.report(true)
		return region, nil
	}
	c.report(false)

	region, err := c.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return region, err
	}
	c.cache.Add(key, region)
	return region, nil
}

func (c *CachedGeocoder) report(hit bool) {
	if c.onHit != nil {
		c.onHit(hit)
	}
}
