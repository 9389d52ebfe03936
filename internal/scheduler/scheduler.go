package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"weatherdash/internal/db/weatherrecord"
	"weatherdash/internal/service"
)

// Scheduler periodically refreshes saved records so the dashboard stays warm
// without user action.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   service.WeatherService
	interval  time.Duration
}

func New(weatherService service.WeatherService, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   weatherService,
		interval:  interval,
	}
}

// Start schedules the refresh job. An interval of zero disables the
// scheduler entirely.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Info().Msg("scheduler disabled; refresh interval is zero")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes the newest record of every saved city in place. Failures
// are logged and skipped; a city is never retried within a tick.
func (s *Scheduler) RunOnce(ctx context.Context) {
	records, err := s.service.ListRecords(ctx, "", weatherrecord.MaxListLimit)
	if err != nil {
		log.Error().Err(err).Msg("scheduler: listing records failed")
		return
	}

	// Records arrive ordered by fetched_at descending, so the first record
	// seen for a city is its newest.
	seen := make(map[string]bool)
	for _, record := range records {
		if seen[record.City] {
			continue
		}
		seen[record.City] = true

		if _, err := s.service.RefreshRecord(ctx, record.ID); err != nil {
			log.Error().Err(err).Str("city", record.City).Str("id", record.ID).Msg("scheduler: refresh failed")
		}
	}
}

func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
