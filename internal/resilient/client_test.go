package resilient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastBackoff = BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}

func get(url string) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, nil)
	}
}

func TestDo_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var outcomes []string
	c := New("test", srv.Client(), WithBackoff(fastBackoff), WithObserver(func(_, o string) {
		outcomes = append(outcomes, o)
	}))

	resp, err := c.Do(context.Background(), get(srv.URL))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []string{OutcomeSuccess}, outcomes)
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New("test", srv.Client(), WithBackoff(fastBackoff))

	_, err := c.Do(context.Background(), get(srv.URL))
	require.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDo_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var outcome string
	c := New("test", srv.Client(), WithBackoff(fastBackoff), WithObserver(func(_, o string) { outcome = o }))

	_, err := c.Do(context.Background(), get(srv.URL))
	require.ErrorIs(t, err, ErrUnexpected)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, OutcomeError, outcome)
}

func TestDo_CanceledContext(t *testing.T) {
	c := New("test", http.DefaultClient, WithBackoff(fastBackoff))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Do(ctx, get("http://127.0.0.1:1"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestDo_RequiresHTTPClient(t *testing.T) {
	c := New("test", nil)
	_, err := c.Do(context.Background(), get("http://127.0.0.1:1"))
	require.Error(t, err)
}
