package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-widget/config"
	"ulascansenturk/weather-widget/internal/db/weatherquery"
	"ulascansenturk/weather-widget/internal/inmemorycache"
	"ulascansenturk/weather-widget/internal/ratelimit"
	"ulascansenturk/weather-widget/internal/weather"
)

var ErrQueryLogDisabled = errors.New("query log is not configured")

// WeatherRequest is a raw client request. Scope identifies the caller for rate limiting.
type WeatherRequest struct {
	Scope string
	Lat   string
	Lon   string
}

type WeatherService interface {
	GetWeather(ctx context.Context, req WeatherRequest) (weather.Snapshot, error)
	GetDefaultWeather(ctx context.Context, scope string) (weather.Snapshot, error)
	Refresh(ctx context.Context, coord weather.Coordinate) (weather.Snapshot, error)
	Invalidate(rawLat, rawLon string) (weather.Coordinate, error)
	RecentQueries(limit int) ([]weatherquery.WeatherQuery, error)
	Configured() bool
}

type weatherService struct {
	conf             *config.Config
	limiter          ratelimit.RateLimiter
	cache            inmemorycache.Cache
	aggregator       WeatherRequestAggregator
	weatherQueryRepo weatherquery.Repository
}

// NewWeatherService wires the request pipeline: configuration check, coordinate validation,
// rate limiting, cache lookup and, on a miss, a coalesced upstream fetch.
// weatherQueryRepo may be nil.
func NewWeatherService(
	conf *config.Config,
	limiter ratelimit.RateLimiter,
	cache inmemorycache.Cache,
	aggregator WeatherRequestAggregator,
	weatherQueryRepo weatherquery.Repository,
) WeatherService {
	return &weatherService{
		conf:             conf,
		limiter:          limiter,
		cache:            cache,
		aggregator:       aggregator,
		weatherQueryRepo: weatherQueryRepo,
	}
}

func (s *weatherService) Configured() bool {
	return s.conf.WeatherConfigured()
}

func (s *weatherService) GetWeather(ctx context.Context, req WeatherRequest) (weather.Snapshot, error) {
	if err := s.conf.Validate(); err != nil {
		return weather.Snapshot{}, err
	}

	coord, err := weather.ParseCoordinate(req.Lat, req.Lon)
	if err != nil {
		return weather.Snapshot{}, err
	}

	if err := s.admit(req.Scope); err != nil {
		return weather.Snapshot{}, err
	}

	return s.lookup(ctx, coord)
}

func (s *weatherService) GetDefaultWeather(ctx context.Context, scope string) (weather.Snapshot, error) {
	if err := s.conf.Validate(); err != nil {
		return weather.Snapshot{}, err
	}

	if err := s.admit(scope); err != nil {
		return weather.Snapshot{}, err
	}

	snapshot, err := s.lookup(ctx, s.conf.DefaultLocation.Coordinate)
	if err != nil {
		return weather.Snapshot{}, err
	}
	if s.conf.DefaultLocation.Name != "" {
		snapshot.Location = s.conf.DefaultLocation.Name
	}
	return snapshot, nil
}

// Refresh fetches coord through the aggregator regardless of the cache and without
// consuming any client's rate limit budget. Used for cache warmup.
func (s *weatherService) Refresh(ctx context.Context, coord weather.Coordinate) (weather.Snapshot, error) {
	if err := s.conf.Validate(); err != nil {
		return weather.Snapshot{}, err
	}

	return s.fetch(ctx, coord)
}

func (s *weatherService) Invalidate(rawLat, rawLon string) (weather.Coordinate, error) {
	coord, err := weather.ParseCoordinate(rawLat, rawLon)
	if err != nil {
		return weather.Coordinate{}, err
	}

	if err := s.cache.Invalidate(coord); err != nil {
		return weather.Coordinate{}, fmt.Errorf("invalidate cache entry: %w", err)
	}
	return coord, nil
}

func (s *weatherService) RecentQueries(limit int) ([]weatherquery.WeatherQuery, error) {
	if s.weatherQueryRepo == nil {
		return nil, ErrQueryLogDisabled
	}
	return s.weatherQueryRepo.ListRecentWeatherQueries(limit)
}

func (s *weatherService) admit(scope string) error {
	decision := s.limiter.Check(scope)
	if !decision.Allowed {
		return &weather.RateLimitError{RetryAfter: decision.RetryAfter}
	}
	return nil
}

func (s *weatherService) lookup(ctx context.Context, coord weather.Coordinate) (weather.Snapshot, error) {
	cached, found, err := s.cache.Get(coord)
	if err != nil {
		// a broken entry is refetched rather than failing the request
		log.Error().Err(err).Msg("failed to read weather cache")
	} else if found {
		return cached.At(coord), nil
	}

	snapshot, err := s.fetch(ctx, coord)
	if err != nil {
		return weather.Snapshot{}, err
	}
	return snapshot.At(coord), nil
}

func (s *weatherService) fetch(ctx context.Context, coord weather.Coordinate) (weather.Snapshot, error) {
	responseChan, err := s.aggregator.AddRequest(ctx, coord)
	if err != nil {
		return weather.Snapshot{}, err
	}

	select {
	case response, ok := <-responseChan:
		if !ok {
			return weather.Snapshot{}, weather.ErrServiceShuttingDown
		}
		if response.Err != nil {
			return weather.Snapshot{}, response.Err
		}
		return response.Snapshot, nil
	case <-ctx.Done():
		return weather.Snapshot{}, ctx.Err()
	}
}
