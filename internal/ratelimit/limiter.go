package ratelimit

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"ulascansenturk/weather-widget/config"
)

const (
	// idleScopeTTL outlives the hour window, so evicting an idle scope never drops a live count.
	idleScopeTTL           = time.Hour + time.Minute
	defaultCleanupInterval = 10 * time.Minute
)

type RateLimiter interface {
	Allow(scope string) bool
	Check(scope string) Decision
}

type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

type rateWindow struct {
	start time.Time
	count int
}

func (w rateWindow) rolled(start time.Time) rateWindow {
	if !w.start.Equal(start) {
		return rateWindow{start: start}
	}
	return w
}

type scopeWindows struct {
	minute rateWindow
	hour   rateWindow
}

type Option func(*Limiter)

func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// WithCleanupInterval sets how often idle scopes are purged; zero disables purging.
func WithCleanupInterval(d time.Duration) Option {
	return func(l *Limiter) {
		l.cleanupInterval = d
	}
}

// WithIdleScopeTTL sets how long an untouched scope is kept. Shorter than an hour drops
// live hour counts.
func WithIdleScopeTTL(d time.Duration) Option {
	return func(l *Limiter) {
		l.idleTTL = d
	}
}

// Limiter counts requests per scope in fixed minute and hour windows aligned to the wall
// clock. A limit of zero leaves that window unbounded.
type Limiter struct {
	enabled      bool
	maxPerMinute int
	maxPerHour   int

	mu      sync.Mutex
	windows *gocache.Cache
	now     func() time.Time

	idleTTL         time.Duration
	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

func NewLimiter(conf config.RateLimitConfig, opts ...Option) *Limiter {
	l := &Limiter{
		enabled:         conf.Enabled,
		maxPerMinute:    conf.MaxPerMinute,
		maxPerHour:      conf.MaxPerHour,
		now:             time.Now,
		idleTTL:         idleScopeTTL,
		cleanupInterval: defaultCleanupInterval,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	// no go-cache janitor; startCleanup purges and stops on Close
	l.windows = gocache.New(l.idleTTL, 0)

	if l.enabled && l.cleanupInterval > 0 {
		go l.startCleanup()
	}

	return l
}

// Close stops the idle scope purge loop.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

// Scopes returns the number of scopes currently tracked, including expired ones not yet purged.
func (l *Limiter) Scopes() int {
	return l.windows.ItemCount()
}

func (l *Limiter) startCleanup() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.windows.DeleteExpired()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) Allow(scope string) bool {
	return l.Check(scope).Allowed
}

// Check admits the request and counts it in both windows, or rejects it without counting.
func (l *Limiter) Check(scope string) Decision {
	if !l.enabled {
		return Decision{Allowed: true}
	}

	now := l.now()
	minuteStart := now.Truncate(time.Minute)
	hourStart := now.Truncate(time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()

	state := &scopeWindows{}
	if cached, found := l.windows.Get(scope); found {
		state = cached.(*scopeWindows)
	}

	minute := state.minute.rolled(minuteStart)
	hour := state.hour.rolled(hourStart)

	var retryAfter time.Duration
	if l.maxPerMinute > 0 && minute.count >= l.maxPerMinute {
		retryAfter = minuteStart.Add(time.Minute).Sub(now)
	}
	if l.maxPerHour > 0 && hour.count >= l.maxPerHour {
		if wait := hourStart.Add(time.Hour).Sub(now); wait > retryAfter {
			retryAfter = wait
		}
	}
	if retryAfter > 0 {
		return Decision{Allowed: false, RetryAfter: retryAfter}
	}

	minute.count++
	hour.count++
	state.minute = minute
	state.hour = hour
	l.windows.Set(scope, state, gocache.DefaultExpiration)

	return Decision{Allowed: true}
}

// Usage returns the counts of the current windows for scope.
func (l *Limiter) Usage(scope string) (perMinute, perHour int) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	cached, found := l.windows.Get(scope)
	if !found {
		return 0, 0
	}
	state := cached.(*scopeWindows)
	return state.minute.rolled(now.Truncate(time.Minute)).count,
		state.hour.rolled(now.Truncate(time.Hour)).count
}
