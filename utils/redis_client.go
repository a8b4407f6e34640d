package utils

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adilhasan/mufradat/config"
)

var (
	rdb     *redis.Client
	rdbOnce sync.Once
)

// GetRedis lazily builds the shared Redis client. Redis is an accelerator
// here, not a dependency: callers must treat every cache operation as
// best-effort, so an unreachable server only costs a warning at first use.
func GetRedis() *redis.Client {
	rdbOnce.Do(func() {
		cfg := config.Get()
		rdb = redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			Sugar.Warnf("redis unreachable at %s, caching disabled until it recovers: %v",
				rdb.Options().Addr, err)
		}
	})
	return rdb
}
