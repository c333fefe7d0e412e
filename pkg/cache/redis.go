package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisDriver shares cached catalog responses across processes.
type redisDriver struct {
	rdb *redis.Client
	ctx context.Context
}

// NewRedisDriver connects to addr and returns a redis-backed Driver.
// The connection is verified up front so a bad address fails at boot, not on
// the first catalog read.
func NewRedisDriver(addr, password string) (Driver, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis ping %s: %w", addr, err)
	}
	return &redisDriver{rdb: rdb, ctx: ctx}, nil
}

func redisKey(key string) string { return "bodega:cache:" + key }

func (d *redisDriver) Get(key string) ([]byte, bool) {
	raw, err := d.rdb.Get(d.ctx, redisKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (d *redisDriver) Set(key string, value []byte, ttl time.Duration) error {
	return d.rdb.Set(d.ctx, redisKey(key), value, ttl).Err()
}

func (d *redisDriver) Forget(key string) {
	d.rdb.Del(d.ctx, redisKey(key))
}

func (d *redisDriver) Flush() {
	iter := d.rdb.Scan(d.ctx, 0, redisKey("*"), 0).Iterator()
	for iter.Next(d.ctx) {
		d.rdb.Del(d.ctx, iter.Val())
	}
}
