package cache

import (
	"sync"
	"time"
)

// memoryDriver is the default in-process driver. Expiry is checked lazily on
// read; there is no background sweeper because entries are few and short-lived.
type memoryDriver struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

func newMemoryDriver() *memoryDriver {
	return &memoryDriver{entries: make(map[string]memoryEntry)}
}

func (d *memoryDriver) Get(key string) ([]byte, bool) {
	d.mu.RLock()
	e, ok := d.entries[key]
	d.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		d.Forget(key)
		return nil, false
	}
	return e.raw, true
}

func (d *memoryDriver) Set(key string, value []byte, ttl time.Duration) error {
	e := memoryEntry{raw: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	d.mu.Lock()
	d.entries[key] = e
	d.mu.Unlock()
	return nil
}

func (d *memoryDriver) Forget(key string) {
	d.mu.Lock()
	delete(d.entries, key)
	d.mu.Unlock()
}

func (d *memoryDriver) Flush() {
	d.mu.Lock()
	d.entries = make(map[string]memoryEntry)
	d.mu.Unlock()
}
