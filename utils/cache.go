package utils

import (
	"context"
	"encoding/json"
	"time"
)

const (
	defaultCacheTTL = time.Hour
	cacheOpTimeout  = 2 * time.Second
)

func cacheCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cacheOpTimeout)
}

// CacheGetBytes returns the cached value for key. A miss and an unreachable
// Redis look the same to the caller: recompute.
func CacheGetBytes(key string) ([]byte, bool) {
	ctx, cancel := cacheCtx()
	defer cancel()
	b, err := GetRedis().Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// CacheSetJSON marshals v and stores it under key. Failures are logged and
// swallowed; the cache never blocks a response.
func CacheSetJSON(key string, v interface{}, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		Sugar.Warnf("cache marshal failed key=%s err=%v", key, err)
		return
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	ctx, cancel := cacheCtx()
	defer cancel()
	if err := GetRedis().Set(ctx, key, b, ttl).Err(); err != nil {
		Sugar.Warnf("cache set failed key=%s err=%v", key, err)
	}
}

// InvalidateByPrefix removes every key under prefix via cursor SCAN. The
// walk is bounded by the operation timeout rather than a round count.
func InvalidateByPrefix(prefix string) {
	rc := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var cursor uint64
	for {
		keys, next, err := rc.Scan(ctx, cursor, prefix+"*", 500).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			if err := rc.Del(ctx, keys...).Err(); err != nil {
				Sugar.Warnf("cache invalidate failed prefix=%s err=%v", prefix, err)
				return
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}
