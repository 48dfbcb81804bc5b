package cache

import (
	"container/list"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dvdshop/internal/logging"
)

const (
	defaultTTL             = time.Hour
	defaultJanitorInterval = time.Minute
)

// MemoryOptions tunes the in-process backend.
type MemoryOptions struct {
	TTL time.Duration
	// MaxEntries bounds the cache; the oldest insertion is evicted first.
	// Zero means unbounded.
	MaxEntries      int
	JanitorInterval time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

type memoryEntry struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// Memory is a thread-safe in-process Cache.
type Memory struct {
	logger *slog.Logger
	ttl    time.Duration
	max    int
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]*list.Element
	order   *list.List
	hits    int64
	misses  int64

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemory builds a Memory cache and starts its janitor.
func NewMemory(opts MemoryOptions, logger *slog.Logger) *Memory {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.JanitorInterval <= 0 {
		opts.JanitorInterval = defaultJanitorInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := &Memory{
		logger:  logging.NewComponentLogger(logger, "cache"),
		ttl:     opts.TTL,
		max:     opts.MaxEntries,
		now:     opts.Now,
		entries: make(map[string]*list.Element),
		order:   list.New(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go m.janitor(opts.JanitorInterval)
	return m
}

// Name implements Cache.
func (m *Memory) Name() string { return "memory" }

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	elem, ok := m.entries[key]
	if ok && m.expired(elem.Value.(*memoryEntry)) {
		m.removeLocked(elem)
		ok = false
	}
	if !ok {
		m.misses++
		m.mu.Unlock()
		return false, nil
	}
	m.hits++
	data := elem.Value.(*memoryEntry).data
	m.mu.Unlock()

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode cached value: %w", err)
	}
	return true, nil
}

// Set implements Cache.
func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	if ttl <= 0 {
		ttl = m.ttl
	}
	expiresAt := m.now().Add(ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.data = data
		entry.expiresAt = expiresAt
		return nil
	}
	if m.max > 0 && len(m.entries) >= m.max {
		if oldest := m.order.Front(); oldest != nil {
			m.logger.Debug("evicting oldest cache entry",
				logging.String("cache_key", oldest.Value.(*memoryEntry).key),
				logging.Int("max_entries", m.max),
			)
			m.removeLocked(oldest)
		}
	}
	m.entries[key] = m.order.PushBack(&memoryEntry{key: key, data: data, expiresAt: expiresAt})
	return nil
}

// Delete implements Cache.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if elem, ok := m.entries[key]; ok {
		m.removeLocked(elem)
	}
	return nil
}

// Clear implements Cache.
func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*list.Element)
	m.order.Init()
	m.logger.Debug("cleared memory cache")
	return nil
}

// Stats implements Cache. Expired entries are swept before counting.
func (m *Memory) Stats(context.Context) (Stats, error) {
	m.sweep()
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Hits:    m.hits,
		Misses:  m.misses,
		Keys:    int64(len(m.entries)),
		HitRate: hitRate(m.hits, m.misses),
	}, nil
}

// Ping implements Cache. The memory backend is always available.
func (m *Memory) Ping(context.Context) bool { return true }

// ResetStats implements Cache.
func (m *Memory) ResetStats() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits, m.misses = 0, 0
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close stops the janitor and drops all entries.
func (m *Memory) Close() error {
	m.closeOnce.Do(func() {
		close(m.stop)
		<-m.done
		m.mu.Lock()
		m.entries = make(map[string]*list.Element)
		m.order.Init()
		m.mu.Unlock()
	})
	return nil
}

func (m *Memory) janitor(interval time.Duration) {
	defer close(m.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			if removed := m.sweep(); removed > 0 {
				m.logger.Debug("expired cache entries removed", logging.Int("removed", removed))
			}
		}
	}
}

// sweep removes expired entries and returns how many were dropped.
func (m *Memory) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for elem := m.order.Front(); elem != nil; {
		next := elem.Next()
		if m.expired(elem.Value.(*memoryEntry)) {
			m.removeLocked(elem)
			removed++
		}
		elem = next
	}
	return removed
}

func (m *Memory) expired(entry *memoryEntry) bool {
	return m.now().After(entry.expiresAt)
}

func (m *Memory) removeLocked(elem *list.Element) {
	delete(m.entries, elem.Value.(*memoryEntry).key)
	m.order.Remove(elem)
}
