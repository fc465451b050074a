package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Scanner derives and records alerts for every registered user.
type Scanner interface {
	ScanAll(ctx context.Context) int
}

// Scheduler periodically scans every user's location for new alerts.
type Scheduler struct {
	scheduler *gocron.Scheduler
	scanner   Scanner
	interval  time.Duration
	timeout   time.Duration
	duration  prometheus.Observer
}

// New creates a new Scheduler. duration may be nil.
func New(scanner Scanner, interval time.Duration, duration prometheus.Observer) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		scanner:   scanner,
		interval:  interval,
		timeout:   2 * time.Minute,
		duration:  duration,
	}
}

// Start schedules the periodic scan and starts the underlying scheduler. An
// interval <= 0 disables the scan.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Info("scheduler: alert scan disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.runOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.WithField("interval", s.interval).Info("scheduler: alert scan started")
	return nil
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	recorded := s.scanner.ScanAll(ctx)
	elapsed := time.Since(start)

	if s.duration != nil {
		s.duration.Observe(elapsed.Seconds())
	}
	log.WithFields(log.Fields{
		"recorded": recorded,
		"elapsed":  elapsed,
	}).Info("scheduler: completed alert scan")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
