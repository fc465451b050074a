package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingScanner struct {
	calls atomic.Int32
}

func (c *countingScanner) ScanAll(ctx context.Context) int {
	c.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		panic("scan must run with a deadline")
	}
	return 1
}

type recordingObserver struct {
	observed atomic.Int32
}

func (r *recordingObserver) Observe(float64) { r.observed.Add(1) }

var _ prometheus.Observer = (*recordingObserver)(nil)

func TestScheduler_RunsScan(t *testing.T) {
	scanner := &countingScanner{}
	obs := &recordingObserver{}
	s := New(scanner, 20*time.Millisecond, obs)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return scanner.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return obs.observed.Load() >= 1 }, time.Second, 10*time.Millisecond)
}

func TestScheduler_Disabled(t *testing.T) {
	scanner := &countingScanner{}
	s := New(scanner, 0, nil)

	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, scanner.calls.Load())
}

func TestScheduler_RunOnceWithoutObserver(t *testing.T) {
	scanner := &countingScanner{}
	s := New(scanner, time.Hour, nil)

	assert.NotPanics(t, s.runOnce)
	assert.Equal(t, int32(1), scanner.calls.Load())
}
