package auth

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/cespare/xxhash/v2"
)

type (
	// TokenCache remembers tokens that already passed signature checks,
	// so hot tokens skip HMAC and JSON decoding. Entries keep the token
	// expiration, a cache hit never makes a token live longer.
	TokenCache struct {
		cache *bigcache.BigCache
	}

	xxhasher struct{}
)

const (
	DefaultTokenCacheTTL = 10 * time.Minute
)

func (xxhasher) Sum64(key string) uint64 {
	return xxhash.Sum64String(key)
}

func NewTokenCache(ctx context.Context, ttl time.Duration) (*TokenCache, error) {
	if ttl <= 0 {
		ttl = DefaultTokenCacheTTL
	}
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Hasher = xxhasher{}
	cfg.Verbose = false
	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create token cache, cause %w", err)
	}
	return &TokenCache{cache: cache}, nil
}

func (t *TokenCache) Close() error {
	return t.cache.Close()
}

func (t *TokenCache) Len() int {
	return t.cache.Len()
}

func (t *TokenCache) save(token string, id Identity, exp time.Time) {
	buf := make([]byte, 16, 16+len(id.Role))
	binary.BigEndian.PutUint64(buf[0:8], uint64(id.UserID))
	binary.BigEndian.PutUint64(buf[8:16], uint64(exp.Unix()))
	buf = append(buf, id.Role...)
	// a failed Set only means the next call pays the full verification
	_ = t.cache.Set(token, buf)
}

func (t *TokenCache) lookup(token string) (Identity, time.Time, bool) {
	buf, err := t.cache.Get(token)
	if err != nil || len(buf) < 16 {
		return Identity{}, time.Time{}, false
	}
	id := Identity{
		UserID: int64(binary.BigEndian.Uint64(buf[0:8])),
		Role:   Role(buf[16:]),
	}
	exp := time.Unix(int64(binary.BigEndian.Uint64(buf[8:16])), 0)
	return id, exp, true
}
