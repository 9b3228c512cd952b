package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryItem struct {
	value    []byte
	expireAt time.Time
}

func (m *memoryItem) expired() bool {
	return !m.expireAt.IsZero() && time.Now().After(m.expireAt)
}

// MemoryCache implements Service using in-memory storage with LRU eviction.
type MemoryCache struct {
	data    map[string]*memoryItem
	access  map[string]time.Time
	mutex   sync.RWMutex
	maxSize int
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxSize:         1000,
		CleanupInterval: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	mc := &MemoryCache{
		data:    make(map[string]*memoryItem),
		access:  make(map[string]time.Time),
		maxSize: cfg.MaxSize,
	}
	go mc.cleanupLoop(cfg.CleanupInterval)
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	if len(mc.data) >= mc.maxSize {
		mc.evictLRU()
	}

	var expireAt time.Time
	if expiration > 0 {
		expireAt = time.Now().Add(expiration)
	}
	mc.data[key] = &memoryItem{value: b, expireAt: expireAt}
	mc.access[key] = time.Now()
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mutex.RLock()
	item, ok := mc.data[key]
	mc.mutex.RUnlock()
	if !ok {
		return ErrCacheMiss
	}
	if item.expired() {
		mc.mutex.Lock()
		delete(mc.data, key)
		delete(mc.access, key)
		mc.mutex.Unlock()
		return ErrCacheMiss
	}

	mc.mutex.Lock()
	mc.access[key] = time.Now()
	mc.mutex.Unlock()

	return json.Unmarshal(item.value, dest)
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	for _, k := range keys {
		delete(mc.data, k)
		delete(mc.access, k)
	}
	return nil
}

func (mc *MemoryCache) Exists(_ context.Context, keys ...string) (bool, error) {
	mc.mutex.RLock()
	defer mc.mutex.RUnlock()
	for _, k := range keys {
		item, ok := mc.data[k]
		if !ok || item.expired() {
			return false, nil
		}
	}
	return true, nil
}

// evictLRU removes the least recently accessed key. Caller holds the lock.
func (mc *MemoryCache) evictLRU() {
	var oldest string
	var oldestAt time.Time
	for k, at := range mc.access {
		if oldest == "" || at.Before(oldestAt) {
			oldest, oldestAt = k, at
		}
	}
	if oldest != "" {
		delete(mc.data, oldest)
		delete(mc.access, oldest)
	}
}

func (mc *MemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		mc.mutex.Lock()
		for k, item := range mc.data {
			if item.expired() {
				delete(mc.data, k)
				delete(mc.access, k)
			}
		}
		mc.mutex.Unlock()
	}
}
