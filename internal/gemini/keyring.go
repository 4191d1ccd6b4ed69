package gemini

import (
	"context"
	"log"
	"time"
)

// MaxKeys is how many API keys a ring accepts.
const MaxKeys = 5

// DefaultBlock is how long a key rests after a quota error without a retry hint.
const DefaultBlock = 60 * time.Second

// KeyRing hands out API keys in configuration order, skipping keys that are blocked.
type KeyRing struct {
	keys  []string
	store BlockStore
	now   func() time.Time
}

// NewKeyRing keeps the first MaxKeys non-empty keys. A nil store means an in-memory one.
func NewKeyRing(keys []string, store BlockStore) *KeyRing {
	if store == nil {
		store = NewMemoryBlockStore()
	}
	r := &KeyRing{store: store, now: time.Now}
	for _, k := range keys {
		if k == "" {
			continue
		}
		if len(r.keys) == MaxKeys {
			break
		}
		r.keys = append(r.keys, k)
	}
	return r
}

func (r *KeyRing) Len() int { return len(r.keys) }

// Available returns the first usable key not in exclude, or "" when there is none. Blocks that
// have run out are cleared on the way.
func (r *KeyRing) Available(ctx context.Context, exclude map[string]bool) string {
	now := r.now()
	for _, key := range r.keys {
		if exclude[key] {
			continue
		}
		until, err := r.store.BlockedUntil(ctx, key)
		if err != nil {
			log.Printf("gemini: key %s block lookup failed: %v", mask(key), err)
			return key
		}
		if until.IsZero() {
			return key
		}
		if !now.Before(until) {
			if err := r.store.Unblock(ctx, key); err != nil {
				log.Printf("gemini: key %s unblock failed: %v", mask(key), err)
			}
			return key
		}
	}
	return ""
}

// Block rests key for d, or DefaultBlock when d is not positive.
func (r *KeyRing) Block(ctx context.Context, key string, d time.Duration) {
	if d <= 0 {
		d = DefaultBlock
	}
	if err := r.store.Block(ctx, key, r.now().Add(d)); err != nil {
		log.Printf("gemini: key %s block failed: %v", mask(key), err)
		return
	}
	log.Printf("gemini: key %s blocked for %s", mask(key), d)
}

// Blocked reports whether key is resting right now.
func (r *KeyRing) Blocked(ctx context.Context, key string) bool {
	until, err := r.store.BlockedUntil(ctx, key)
	if err != nil || until.IsZero() {
		return false
	}
	return r.now().Before(until)
}

// mask keeps only the last six characters of a key for logs.
func mask(key string) string {
	if len(key) <= 6 {
		return "..." + key
	}
	return "..." + key[len(key)-6:]
}
