package app

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"ulascansenturk/weather-widget/config"
	"ulascansenturk/weather-widget/internal/api/v1/handlers"
	"ulascansenturk/weather-widget/internal/db/weatherquery"
	"ulascansenturk/weather-widget/internal/inmemorycache"
	"ulascansenturk/weather-widget/internal/providers"
	"ulascansenturk/weather-widget/internal/ratelimit"
	"ulascansenturk/weather-widget/internal/scheduler"
	"ulascansenturk/weather-widget/internal/service"
	"ulascansenturk/weather-widget/internal/weather"
)

const (
	cacheCleanupInterval = time.Minute
	maxBackoff           = 5 * time.Second
)

type App struct {
	Handler   http.Handler
	Service   service.WeatherService
	Scheduler *scheduler.Scheduler

	aggregator service.WeatherRequestAggregator
	cache      *inmemorycache.InMemoryCache
	limiter    *ratelimit.Limiter
}

// New wires the weather widget backend. weatherQueryRepo may be nil when no query log
// database is configured.
func New(conf *config.Config, logger zerolog.Logger, weatherQueryRepo weatherquery.Repository) *App {
	cacheProvider := inmemorycache.NewInMemoryCacheProvider(cacheCleanupInterval,
		inmemorycache.WithKeyPrecision(conf.CacheKeyPrecision),
		inmemorycache.WithMaxEntries(conf.CacheMaxEntries),
	)

	limiter := ratelimit.NewLimiter(conf.RateLimit)

	fetcher := providers.NewOpenWeatherFetcher(providers.FetcherConfig{
		APIKey:         conf.WeatherAPIKey,
		BaseURL:        conf.WeatherAPIBaseURL,
		RequestTimeout: conf.RequestTimeout,
		Backoff: providers.BackoffConfig{
			MaxRetries:      conf.RetryAttempts,
			InitialInterval: conf.RetryBackoff,
			MaxInterval:     maxBackoff,
		},
	})

	aggregator := service.NewWeatherRequestAggregator(fetcher, cacheProvider, weatherQueryRepo, service.AggregatorConfig{
		MaxBatchSize:   conf.MaxBatchSize,
		CoalesceWindow: conf.CoalesceWindow,
		CacheTTL:       conf.CacheTTL,
		KeyPrecision:   conf.CacheKeyPrecision,
		FetchTimeout:   fetchBudget(conf),
	})

	weatherService := service.NewWeatherService(conf, limiter, cacheProvider, aggregator, weatherQueryRepo)

	handler := handlers.NewRouter(
		handlers.NewWeatherHandler(weatherService, conf.HTTPTimeoutDuration()),
		handlers.NewAdminHandler(weatherService),
		handlers.RouterConfig{
			Logger:            logger,
			AdminJWTSecret:    conf.AdminJWTSecret,
			TrustProxyHeaders: conf.TrustProxyHeaders,
		},
	)

	var warmup []weather.Coordinate
	if conf.WeatherConfigured() {
		warmup = append(warmup, conf.DefaultLocation.Coordinate)
	}

	jobs := scheduler.New(scheduler.Config{
		WarmupInterval:  conf.WarmupInterval,
		WarmupLocations: warmup,
		WarmupTimeout:   fetchBudget(conf),
		Retention:       conf.QueryLogRetention,
	}, weatherService, weatherQueryRepo)

	return &App{
		Handler:    handler,
		Service:    weatherService,
		Scheduler:  jobs,
		aggregator: aggregator,
		cache:      cacheProvider,
		limiter:    limiter,
	}
}

// Shutdown stops background jobs, fails pending weather requests and stops the cache and
// limiter purge loops.
func (a *App) Shutdown() {
	a.Scheduler.Stop()
	a.aggregator.Shutdown()
	a.cache.Close()
	a.limiter.Close()
}

// fetchBudget is the worst case duration of one fetch: every attempt timing out plus
// the longest backoff between them.
func fetchBudget(conf *config.Config) time.Duration {
	attempts := time.Duration(conf.RetryAttempts + 1)
	return attempts*conf.RequestTimeout + (attempts-1)*maxBackoff
}
