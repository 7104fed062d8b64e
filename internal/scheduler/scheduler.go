package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-widget/internal/db/weatherquery"
	"ulascansenturk/weather-widget/internal/service"
	"ulascansenturk/weather-widget/internal/weather"
)

const defaultPruneInterval = time.Hour

type Config struct {
	// WarmupInterval refreshes WarmupLocations this often; zero disables warmup.
	WarmupInterval  time.Duration
	WarmupLocations []weather.Coordinate
	WarmupTimeout   time.Duration
	// Retention is how long query log rows are kept; zero disables pruning.
	Retention     time.Duration
	PruneInterval time.Duration
}

// Scheduler runs the background jobs: cache warmup and query log pruning.
type Scheduler struct {
	scheduler        *gocron.Scheduler
	weatherService   service.WeatherService
	weatherQueryRepo weatherquery.Repository
	conf             Config
	now              func() time.Time
}

// New creates a Scheduler. weatherQueryRepo may be nil, which disables pruning.
func New(conf Config, weatherService service.WeatherService, weatherQueryRepo weatherquery.Repository) *Scheduler {
	if conf.PruneInterval <= 0 {
		conf.PruneInterval = defaultPruneInterval
	}
	if conf.WarmupTimeout <= 0 {
		conf.WarmupTimeout = 30 * time.Second
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &Scheduler{
		scheduler:        s,
		weatherService:   weatherService,
		weatherQueryRepo: weatherQueryRepo,
		conf:             conf,
		now:              time.Now,
	}
}

func (s *Scheduler) Start() error {
	if s.conf.WarmupInterval > 0 && len(s.conf.WarmupLocations) > 0 {
		if _, err := s.scheduler.Every(s.conf.WarmupInterval).Tag("warmup").Do(s.Warmup); err != nil {
			return err
		}
	}

	if s.conf.Retention > 0 && s.weatherQueryRepo != nil {
		if _, err := s.scheduler.Every(s.conf.PruneInterval).Tag("prune").Do(s.Prune); err != nil {
			return err
		}
	}

	if s.scheduler.Len() == 0 {
		log.Info().Msg("scheduler: no background jobs configured")
		return nil
	}

	s.scheduler.StartAsync()
	log.Info().Int("jobs", s.scheduler.Len()).Msg("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	if s.scheduler != nil && s.scheduler.IsRunning() {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) Jobs() int {
	return s.scheduler.Len()
}

// Warmup refreshes the cached snapshot of every warmup location.
func (s *Scheduler) Warmup() {
	for _, coord := range s.conf.WarmupLocations {
		ctx, cancel := context.WithTimeout(context.Background(), s.conf.WarmupTimeout)
		snapshot, err := s.weatherService.Refresh(ctx, coord)
		cancel()

		if err != nil {
			log.Warn().Err(err).Str("coordinates", coord.Key(4)).Msg("scheduler: warmup failed")
			continue
		}
		log.Debug().Str("location", snapshot.Location).Msg("scheduler: warmed weather cache")
	}
}

// Prune deletes query log rows older than the retention period.
func (s *Scheduler) Prune() {
	if s.weatherQueryRepo == nil {
		return
	}

	deleted, err := s.weatherQueryRepo.DeleteOlderThan(s.now().Add(-s.conf.Retention))
	if err != nil {
		log.Error().Err(err).Msg("scheduler: failed to prune weather queries")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("scheduler: pruned weather queries")
	}
}
