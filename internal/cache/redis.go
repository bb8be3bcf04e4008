package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// opTimeout bounds every Redis round trip so a slow or unreachable backend
// cannot stall a workflow. The entity store remains the source of truth.
const opTimeout = 2 * time.Second

// RedisStore implements Store on top of a go-redis client. A nil client is
// legal and turns every operation into a no-op (Get always misses), which
// lets the server run without Redis in a degraded mode.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps the given client. The client may be nil.
func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func (s *RedisStore) Get(ctx context.Context, key string, dest any) bool {
	if s.rdb == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: get %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("cache: decode %s failed: %v", key, err)
		return false
	}
	return true
}

func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: encode %s failed: %v", key, err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := s.rdb.SetEx(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("cache: set %s failed: %v", key, err)
	}
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) {
	if s.rdb == nil || len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: delete %v failed: %v", keys, err)
	}
}

// DeleteMatching walks the keyspace with SCAN rather than KEYS so the
// server is never blocked on a large database.
func (s *RedisStore) DeleteMatching(ctx context.Context, pattern string) {
	if s.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("cache: scan %s failed: %v", pattern, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: delete matching %s failed: %v", pattern, err)
	}
}
