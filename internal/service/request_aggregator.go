package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-widget/internal/db/weatherquery"
	"ulascansenturk/weather-widget/internal/inmemorycache"
	"ulascansenturk/weather-widget/internal/providers"
	"ulascansenturk/weather-widget/internal/weather"
)

// Result is what every request in a batch receives once the shared fetch finishes.
type Result struct {
	Snapshot weather.Snapshot
	Err      error
}

type WeatherRequestAggregator interface {
	AddRequest(ctx context.Context, coord weather.Coordinate) (<-chan Result, error)
	ProcessQueueForTesting(key string)
	Shutdown()
}

type AggregatorConfig struct {
	// MaxBatchSize dispatches a collecting batch early once it holds this many requests.
	MaxBatchSize int
	// CoalesceWindow is how long the first request of a batch waits for company.
	// Zero dispatches immediately; requests arriving during the fetch still join it.
	CoalesceWindow time.Duration
	CacheTTL       time.Duration
	KeyPrecision   int
	// FetchTimeout bounds one batch fetch including retries. Zero means no bound.
	FetchTimeout time.Duration
}

type keyQueue struct {
	coord    weather.Coordinate
	channels []chan Result
	timer    *time.Timer
	inFlight bool
	done     bool
	mu       sync.Mutex
}

type weatherAggregator struct {
	fetcher          providers.WeatherFetcher
	cache            inmemorycache.Cache
	weatherQueryRepo weatherquery.Repository
	conf             AggregatorConfig

	queues     map[string]*keyQueue
	queueMutex sync.RWMutex
	closed     bool

	baseCtx    context.Context
	cancelBase context.CancelFunc
	background sync.WaitGroup
}

// NewWeatherRequestAggregator coalesces concurrent cache misses for the same cache key into
// one upstream fetch. weatherQueryRepo may be nil when the query log is disabled.
func NewWeatherRequestAggregator(
	fetcher providers.WeatherFetcher,
	cache inmemorycache.Cache,
	weatherQueryRepo weatherquery.Repository,
	conf AggregatorConfig,
) WeatherRequestAggregator {
	if conf.MaxBatchSize <= 0 {
		conf.MaxBatchSize = 10
	}

	baseCtx, cancel := context.WithCancel(context.Background())

	return &weatherAggregator{
		fetcher:          fetcher,
		cache:            cache,
		weatherQueryRepo: weatherQueryRepo,
		conf:             conf,
		queues:           make(map[string]*keyQueue),
		baseCtx:          baseCtx,
		cancelBase:       cancel,
	}
}

func (w *weatherAggregator) AddRequest(ctx context.Context, coord weather.Coordinate) (<-chan Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := coord.Key(w.conf.KeyPrecision)
	responseChan := make(chan Result, 1)

	for {
		queue, err := w.queueFor(key, coord)
		if err != nil {
			return nil, err
		}

		queue.mu.Lock()
		if queue.done {
			// lost the race with a finishing batch
			queue.mu.Unlock()
			w.removeQueue(key, queue)
			continue
		}

		queue.channels = append(queue.channels, responseChan)

		if !queue.inFlight {
			switch {
			case len(queue.channels) >= w.conf.MaxBatchSize || w.conf.CoalesceWindow <= 0:
				if queue.timer != nil {
					queue.timer.Stop()
					queue.timer = nil
				}
				go w.processQueue(key)
			case len(queue.channels) == 1:
				queue.timer = time.AfterFunc(w.conf.CoalesceWindow, func() {
					w.processQueue(key)
				})
			}
		}

		queue.mu.Unlock()
		return responseChan, nil
	}
}

func (w *weatherAggregator) queueFor(key string, coord weather.Coordinate) (*keyQueue, error) {
	w.queueMutex.RLock()
	queue, exists := w.queues[key]
	closed := w.closed
	w.queueMutex.RUnlock()

	if closed {
		return nil, weather.ErrServiceShuttingDown
	}
	if exists {
		return queue, nil
	}

	w.queueMutex.Lock()
	defer w.queueMutex.Unlock()

	if w.closed {
		return nil, weather.ErrServiceShuttingDown
	}
	queue, exists = w.queues[key]
	if !exists {
		queue = &keyQueue{coord: coord}
		w.queues[key] = queue
	}
	return queue, nil
}

func (w *weatherAggregator) removeQueue(key string, queue *keyQueue) {
	w.queueMutex.Lock()
	defer w.queueMutex.Unlock()

	if w.queues[key] == queue {
		delete(w.queues, key)
	}
}

func (w *weatherAggregator) processQueue(key string) {
	w.queueMutex.RLock()
	queue, exists := w.queues[key]
	w.queueMutex.RUnlock()

	if !exists {
		return
	}

	queue.mu.Lock()
	if queue.inFlight || queue.done || len(queue.channels) == 0 {
		queue.mu.Unlock()
		return
	}
	queue.inFlight = true
	if queue.timer != nil {
		queue.timer.Stop()
		queue.timer = nil
	}
	coord := queue.coord
	queue.mu.Unlock()

	snapshot, err := w.fetch(coord)

	queue.mu.Lock()
	channels := queue.channels
	queue.channels = nil
	queue.done = true
	queue.mu.Unlock()

	w.removeQueue(key, queue)

	if err != nil {
		log.Warn().Err(err).Str("cache_key", key).Int("batch_size", len(channels)).Msg("weather fetch failed")
	} else {
		if cacheErr := w.cache.Set(coord, snapshot, w.conf.CacheTTL); cacheErr != nil {
			log.Error().Err(cacheErr).Str("cache_key", key).Msg("failed to cache weather snapshot")
		}
		w.logQuery(key, coord, snapshot, len(channels))
	}

	for _, ch := range channels {
		ch <- Result{Snapshot: snapshot, Err: err}
		close(ch)
	}
}

// fetch is detached from the callers: one of them giving up must not fail the others.
func (w *weatherAggregator) fetch(coord weather.Coordinate) (weather.Snapshot, error) {
	ctx := w.baseCtx
	if w.conf.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.conf.FetchTimeout)
		defer cancel()
	}

	return w.fetcher.Fetch(ctx, coord)
}

func (w *weatherAggregator) logQuery(key string, coord weather.Coordinate, snapshot weather.Snapshot, requests int) {
	if w.weatherQueryRepo == nil || requests == 0 {
		return
	}

	query := &weatherquery.WeatherQuery{
		CacheKey:     key,
		Latitude:     coord.Latitude,
		Longitude:    coord.Longitude,
		Location:     snapshot.Location,
		Temperature:  snapshot.TemperatureC,
		Condition:    snapshot.Condition,
		RequestCount: requests,
	}

	w.queueMutex.RLock()
	if w.closed {
		w.queueMutex.RUnlock()
		return
	}
	w.background.Add(1)
	w.queueMutex.RUnlock()

	go func() {
		defer w.background.Done()
		if err := w.weatherQueryRepo.LogWeatherQuery(query); err != nil {
			log.Error().Err(err).Str("cache_key", key).Msg("failed to log weather query")
		}
	}()
}

// Shutdown rejects new requests, answers waiting ones with ErrServiceShuttingDown, cancels
// fetches in flight and waits for pending query log writes.
func (w *weatherAggregator) Shutdown() {
	w.queueMutex.Lock()
	w.closed = true
	queues := w.queues
	w.queues = make(map[string]*keyQueue)
	w.queueMutex.Unlock()

	w.cancelBase()

	for _, queue := range queues {
		queue.mu.Lock()

		if queue.timer != nil {
			queue.timer.Stop()
			queue.timer = nil
		}

		for _, ch := range queue.channels {
			ch <- Result{Err: weather.ErrServiceShuttingDown}
			close(ch)
		}
		queue.channels = nil
		queue.done = true

		queue.mu.Unlock()
	}

	w.background.Wait()
}

func (w *weatherAggregator) ProcessQueueForTesting(key string) {
	w.processQueue(key)
}
