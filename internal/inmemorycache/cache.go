package inmemorycache

import (
	"container/list"
	"encoding/json"
	"sync"
	"time"

	"ulascansenturk/weather-widget/internal/weather"
)

type cacheEntry struct {
	key        string
	data       []byte
	expiration time.Time
}

type Cache interface {
	Get(coord weather.Coordinate) (*weather.Snapshot, bool, error)
	Set(coord weather.Coordinate, snapshot weather.Snapshot, ttl time.Duration) error
	Invalidate(coord weather.Coordinate) error
}

type Option func(*InMemoryCache)

// WithMaxEntries bounds the cache; the least recently used entry is evicted first.
func WithMaxEntries(n int) Option {
	return func(c *InMemoryCache) {
		c.maxEntries = n
	}
}

func WithKeyPrecision(precision int) Option {
	return func(c *InMemoryCache) {
		c.precision = precision
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *InMemoryCache) {
		c.now = now
	}
}

// InMemoryCache stores serialized snapshots so callers never share a value with the
// cache, which keeps it swappable for a remote store.
type InMemoryCache struct {
	cache           map[string]*list.Element
	order           *list.List
	mutex           sync.Mutex
	cleanupInterval time.Duration
	maxEntries      int
	precision       int
	now             func() time.Time
	stop            chan struct{}
	stopOnce        sync.Once
}

func NewInMemoryCacheProvider(cleanupInterval time.Duration, opts ...Option) *InMemoryCache {
	provider := &InMemoryCache{
		cache:           make(map[string]*list.Element),
		order:           list.New(),
		cleanupInterval: cleanupInterval,
		precision:       2,
		now:             time.Now,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(provider)
	}

	if cleanupInterval > 0 {
		go provider.startCleanup()
	}

	return provider
}

func (m *InMemoryCache) Key(coord weather.Coordinate) string {
	return coord.Key(m.precision)
}

func (m *InMemoryCache) Get(coord weather.Coordinate) (*weather.Snapshot, bool, error) {
	key := m.Key(coord)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	elem, exists := m.cache[key]
	if !exists {
		return nil, false, nil
	}

	entry := elem.Value.(*cacheEntry)
	if m.now().After(entry.expiration) {
		m.removeElement(elem)
		return nil, false, nil
	}

	var data weather.Snapshot
	if err := json.Unmarshal(entry.data, &data); err != nil {
		return nil, false, err
	}

	m.order.MoveToFront(elem)

	return &data, true, nil
}

func (m *InMemoryCache) Set(coord weather.Coordinate, snapshot weather.Snapshot, ttl time.Duration) error {
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	key := m.Key(coord)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	expiration := m.now().Add(ttl)

	if elem, exists := m.cache[key]; exists {
		entry := elem.Value.(*cacheEntry)
		entry.data = jsonData
		entry.expiration = expiration
		m.order.MoveToFront(elem)
		return nil
	}

	m.cache[key] = m.order.PushFront(&cacheEntry{
		key:        key,
		data:       jsonData,
		expiration: expiration,
	})

	if m.maxEntries > 0 {
		for m.order.Len() > m.maxEntries {
			m.removeElement(m.order.Back())
		}
	}

	return nil
}

func (m *InMemoryCache) Invalidate(coord weather.Coordinate) error {
	key := m.Key(coord)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if elem, exists := m.cache[key]; exists {
		m.removeElement(elem)
	}
	return nil
}

func (m *InMemoryCache) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.order.Len()
}

// Close stops the cleanup goroutine.
func (m *InMemoryCache) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

func (m *InMemoryCache) removeElement(elem *list.Element) {
	entry := elem.Value.(*cacheEntry)
	delete(m.cache, entry.key)
	m.order.Remove(elem)
}

func (m *InMemoryCache) purgeExpired() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := m.now()
	for _, elem := range m.cache {
		if now.After(elem.Value.(*cacheEntry).expiration) {
			m.removeElement(elem)
		}
	}
}

func (m *InMemoryCache) startCleanup() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.purgeExpired()
		case <-m.stop:
			return
		}
	}
}
