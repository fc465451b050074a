package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/arca/internal/resilient"
)

var noRetries = resilient.WithBackoff(resilient.BackoffConfig{MaxRetries: 0, InitialInterval: time.Millisecond})

type countingGeocoder struct {
	calls  int
	region Region
	err    error
}

func (m *countingGeocoder) Name() string { return "counting" }

func (m *countingGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (Region, error) {
	m.calls++
	return m.region, m.err
}

func TestRegion_WithPlaceholders(t *testing.T) {
	r := Region{City: "São Paulo", Country: "Brazil"}.WithPlaceholders()

	assert.Equal(t, UnidentifiedStreet, r.Street)
	assert.Equal(t, UnidentifiedNeighborhood, r.Neighborhood)
	assert.Equal(t, "São Paulo", r.City)
	assert.Equal(t, UnidentifiedState, r.State)
	assert.Equal(t, "Brazil", r.Country)
}

func TestResolve(t *testing.T) {
	t.Run("success fills gaps", func(t *testing.T) {
		g := &countingGeocoder{region: Region{Neighborhood: "Bela Vista", City: "São Paulo"}}
		r := Resolve(context.Background(), g, -23.5575, -46.6603)
		assert.Equal(t, "Bela Vista", r.Neighborhood)
		assert.Equal(t, UnidentifiedStreet, r.Street)
		assert.True(t, r.Identified)
		assert.True(t, r.HasCity())
	})

	t.Run("success without a city", func(t *testing.T) {
		g := &countingGeocoder{region: Region{Country: "Brasil"}}
		r := Resolve(context.Background(), g, -23.5575, -46.6603)
		assert.True(t, r.Identified)
		assert.Equal(t, UnidentifiedCity, r.City)
		assert.False(t, r.HasCity())
	})

	t.Run("failure degrades", func(t *testing.T) {
		g := &countingGeocoder{err: errors.New("quota exceeded")}
		assert.Equal(t, Unidentified(), Resolve(context.Background(), g, 0, 0))
	})

	t.Run("nil geocoder", func(t *testing.T) {
		r := Resolve(context.Background(), nil, 0, 0)
		assert.Equal(t, Unidentified(), r)
		assert.False(t, r.HasCity())
	})
}

func TestOpenCage_ReverseGeocode(t *testing.T) {
	var gotQuery, gotLanguage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLanguage = r.URL.Query().Get("language")
		_, _ = w.Write([]byte(`{"results": [{"components": {
			"road": "Avenida Paulista",
			"suburb": "Bela Vista",
			"town": "São Paulo",
			"state": "São Paulo",
			"country": "Brazil"
		}}]}`))
	}))
	defer srv.Close()

	c := NewOpenCageClient(srv.Client(), "key", srv.URL, noRetries)
	r, err := c.ReverseGeocode(context.Background(), -23.5575, -46.6603)
	require.NoError(t, err)

	assert.Equal(t, Region{
		Street:       "Avenida Paulista",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "São Paulo",
		Country:      "Brazil",
	}, r)
	assert.Equal(t, "-23.557500,-46.660300", gotQuery)
	assert.Equal(t, "en", gotLanguage)
}

func TestOpenCage_NeighbourhoodPreferredOverSuburb(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"components": {"neighbourhood": "Jardins", "suburb": "Bela Vista", "city": "São Paulo", "village": "ignored"}}]}`))
	}))
	defer srv.Close()

	r, err := NewOpenCageClient(srv.Client(), "key", srv.URL, noRetries).ReverseGeocode(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Jardins", r.Neighborhood)
	assert.Equal(t, "São Paulo", r.City)
}

func TestOpenCage_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		isErr  error
	}{
		{"no results", http.StatusOK, `{"results": []}`, ErrNoResults},
		{"server error", http.StatusInternalServerError, `boom`, resilient.ErrServerError},
		{"rate limited", http.StatusTooManyRequests, `slow down`, resilient.ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewOpenCageClient(srv.Client(), "key", srv.URL, noRetries)
			_, err := c.ReverseGeocode(context.Background(), 1, 2)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.isErr)

			assert.Equal(t, Unidentified(), Resolve(context.Background(), c, 1, 2))
		})
	}
}

func TestOpenCage_RequiresKey(t *testing.T) {
	_, err := NewOpenCageClient(http.DefaultClient, "", "", noRetries).ReverseGeocode(context.Background(), 1, 2)
	require.Error(t, err)
}

func TestGoogleGeocoder(t *testing.T) {
	g := NewGoogleGeocoder("key")
	var gotKey string
	var gotLocation geocoder.Location
	g.reverse = func(loc geocoder.Location) ([]geocoder.Address, error) {
		gotKey = geocoder.ApiKey
		gotLocation = loc
		return []geocoder.Address{{
			Street:   "Rue de Rivoli",
			District: "1er Arrondissement",
			City:     "Paris",
			State:    "Île-de-France",
			Country:  "France",
		}}, nil
	}

	r, err := g.ReverseGeocode(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)
	assert.Equal(t, "key", gotKey)
	assert.Equal(t, 48.8566, gotLocation.Latitude)
	assert.Equal(t, "1er Arrondissement", r.Neighborhood)
	assert.Equal(t, "Paris", r.City)
	assert.Equal(t, "google", g.Name())
}

func TestGoogleGeocoder_Errors(t *testing.T) {
	g := NewGoogleGeocoder("key")

	g.reverse = func(geocoder.Location) ([]geocoder.Address, error) { return nil, nil }
	_, err := g.ReverseGeocode(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrNoResults)

	g.reverse = func(geocoder.Location) ([]geocoder.Address, error) { return nil, errors.New("denied") }
	_, err = g.ReverseGeocode(context.Background(), 1, 2)
	assert.ErrorContains(t, err, "denied")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.ReverseGeocode(ctx, 1, 2)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewGoogleGeocoder("").ReverseGeocode(context.Background(), 1, 2)
	assert.Error(t, err)
}

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingGeocoder{region: Region{City: "Maputo"}}
	var hits, misses int
	cached, err := NewCachedGeocoder(inner, 10, func(hit bool) {
		if hit {
			hits++
		} else {
			misses++
		}
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		r, err := cached.ReverseGeocode(context.Background(), -25.9653, 32.5892)
		require.NoError(t, err)
		assert.Equal(t, "Maputo", r.City)
	}

	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)
}

func TestCachedGeocoder_DoesNotCacheErrors(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("down")}
	cached, err := NewCachedGeocoder(inner, 10, nil)
	require.NoError(t, err)

	_, err = cached.ReverseGeocode(context.Background(), 1, 2)
	require.Error(t, err)
	_, err = cached.ReverseGeocode(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_Eviction(t *testing.T) {
	inner := &countingGeocoder{region: Region{City: "Lima"}}
	cached, err := NewCachedGeocoder(inner, 1, nil)
	require.NoError(t, err)

	_, _ = cached.ReverseGeocode(context.Background(), 1, 1)
	_, _ = cached.ReverseGeocode(context.Background(), 2, 2)
	_, _ = cached.ReverseGeocode(context.Background(), 1, 1)
	assert.Equal(t, 3, inner.calls)
}

func TestNewCachedGeocoder_InvalidSize(t *testing.T) {
	_, err := NewCachedGeocoder(&countingGeocoder{}, 0, nil)
	assert.Error(t, err)
}
