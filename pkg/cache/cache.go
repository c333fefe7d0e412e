// Package cache is a small TTL cache used to front repeated catalog reads.
//
// Two drivers exist: an in-process memory driver (default) and a redis
// driver for setups where several commands share one box. Values are JSON
// round-tripped through the driver so both behave identically:
//
//	cache.Set("products:all", products, 30*time.Second)
//	var out []models.Product
//	if cache.Get("products:all", &out) { ... }
//
// A missing or unparseable entry reports a miss; the cache never returns
// errors to callers on the read path.
package cache

import (
	"encoding/json"
	"time"
)

// Driver stores and retrieves raw JSON blobs with a TTL.
type Driver interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Forget(key string)
	Flush()
}

var driver Driver = newMemoryDriver()

// Use installs a driver. Called once at boot; the memory driver is active
// until then.
func Use(d Driver) {
	if d != nil {
		driver = d
	}
}

// Get reads key into dest. Returns false on a miss.
func Get(key string, dest interface{}) bool {
	raw, ok := driver.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores value under key for ttl.
func Set(key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return driver.Set(key, raw, ttl)
}

// Forget drops a single key.
func Forget(key string) { driver.Forget(key) }

// Flush drops everything.
func Flush() { driver.Flush() }
