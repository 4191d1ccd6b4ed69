package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// BlockStore remembers until when a key must not be used. BlockedUntil returns the zero time for
// keys that are not blocked.
type BlockStore interface {
	Block(ctx context.Context, key string, until time.Time) error
	BlockedUntil(ctx context.Context, key string) (time.Time, error)
	Unblock(ctx context.Context, key string) error
}

type MemoryBlockStore struct {
	mu      sync.Mutex
	blocked map[string]time.Time
}

func NewMemoryBlockStore() *MemoryBlockStore {
	return &MemoryBlockStore{blocked: make(map[string]time.Time)}
}

func (s *MemoryBlockStore) Block(_ context.Context, key string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked[key] = until
	return nil
}

func (s *MemoryBlockStore) BlockedUntil(_ context.Context, key string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocked[key], nil
}

func (s *MemoryBlockStore) Unblock(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blocked, key)
	return nil
}

// RedisBlockStore shares key blocks between processes. Entries carry a TTL so Redis drops them
// once the block is over.
type RedisBlockStore struct {
	rdb *redis.Client
}

func NewRedisBlockStore(rdb *redis.Client) *RedisBlockStore {
	return &RedisBlockStore{rdb: rdb}
}

// blockKeyName never embeds the API key itself.
func blockKeyName(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "gemini:key:" + hex.EncodeToString(sum[:8]) + ":blocked_until"
}

func (s *RedisBlockStore) Block(ctx context.Context, key string, until time.Time) error {
	ttl := time.Until(until)
	if ttl < time.Second {
		ttl = time.Second
	}
	if err := s.rdb.Set(ctx, blockKeyName(key), until.UnixMilli(), ttl).Err(); err != nil {
		return fmt.Errorf("block key: %w", err)
	}
	return nil
}

func (s *RedisBlockStore) BlockedUntil(ctx context.Context, key string) (time.Time, error) {
	val, err := s.rdb.Get(ctx, blockKeyName(key)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read key block: %w", err)
	}
	ms, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse key block %q: %w", val, err)
	}
	return time.UnixMilli(ms), nil
}

func (s *RedisBlockStore) Unblock(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, blockKeyName(key)).Err()
}
