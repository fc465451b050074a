package providers

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/i474232898/arca/internal/weather"
)

// CachedGateway keeps successful readings for a short TTL so repeated menu
// visits from the same place do not hit the upstream API every time.
type CachedGateway struct {
	inner weather.Gateway
	cache *gocache.Cache
	onHit func(hit bool)
}

// NewCachedGateway wraps inner. A ttl <= 0 disables caching.
func NewCachedGateway(inner weather.Gateway, ttl time.Duration, onHit func(hit bool)) weather.Gateway {
	if ttl <= 0 {
		return inner
	}
	return &CachedGateway{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
		onHit: onHit,
	}
}

func (c *CachedGateway) Name() string {
	return c.inner.Name()
}

func (c *CachedGateway) Current(ctx context.Context, at weather.Coordinates) (weather.Reading, error) {
	// Keyed on a ~1 km grid.
	key := fmt.Sprintf("%.2f,%.2f", at.Lat, at.Lon)
	if v, ok := c.cache.Get(key); ok {
		c.report(true)
		return v.(weather.Reading), nil
	}
	c.report(false)

	r, err := c.inner.Current(ctx, at)
	if err != nil {
		return r, err
	}
	c.cache.SetDefault(key, r)
	return r, nil
}

func (c *CachedGateway) report(hit bool) {
	if c.onHit != nil {
		c.onHit(hit)
	}
}
