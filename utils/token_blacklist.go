package utils

import (
	"sync"
	"time"
)

// Token revocation backs the logout endpoint. Revoked tokens live in Redis
// with a TTL equal to their remaining validity so revocation survives
// restarts. When Redis is unreachable a process-local map takes over, which
// is sufficient for a single instance.

const revokedKeyPrefix = "jwt:revoked:"

var (
	revokedMu    sync.Mutex
	revokedLocal = map[string]time.Time{}
)

// BlacklistToken revokes a token until expiresAt. Tokens already past their
// expiry need no entry at all.
func BlacklistToken(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}

	ctx, cancel := cacheCtx()
	defer cancel()
	if err := GetRedis().Set(ctx, revokedKeyPrefix+token, "1", ttl).Err(); err == nil {
		return
	}

	revokedMu.Lock()
	revokedLocal[token] = expiresAt
	sweepRevokedLocked(time.Now())
	revokedMu.Unlock()
}

// IsTokenBlacklisted reports whether the token was revoked before its
// natural expiry. A Redis error fails open so an outage cannot lock every
// user out.
func IsTokenBlacklisted(token string) bool {
	ctx, cancel := cacheCtx()
	defer cancel()
	if n, err := GetRedis().Exists(ctx, revokedKeyPrefix+token).Result(); err == nil && n > 0 {
		return true
	}

	revokedMu.Lock()
	defer revokedMu.Unlock()
	expiresAt, ok := revokedLocal[token]
	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		delete(revokedLocal, token)
		return false
	}
	return true
}

func sweepRevokedLocked(now time.Time) {
	for token, expiresAt := range revokedLocal {
		if now.After(expiresAt) {
			delete(revokedLocal, token)
		}
	}
}
