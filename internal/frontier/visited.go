package frontier

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/linkcheck/internal/crawler"
	"github.com/vnykmshr/linkcheck/internal/domain"
)

// Guard deduplicates URLs by their normalized key.
type Guard struct {
	store domain.VisitedStore
}

// NewGuard creates a guard backed by store.
func NewGuard(store domain.VisitedStore) *Guard {
	return &Guard{store: store}
}

// MarkVisited reports whether an equivalent URL was already dispatched, and
// records u otherwise. Among concurrent callers with equivalent URLs exactly
// one sees false.
func (g *Guard) MarkVisited(ctx context.Context, u *url.URL) (bool, error) {
	return g.store.MarkVisited(ctx, crawler.Normalize(u))
}

// Len returns the number of distinct keys recorded.
func (g *Guard) Len(ctx context.Context) (int, error) {
	return g.store.Len(ctx)
}

// MemoryStore is an in-process VisitedStore.
type MemoryStore struct {
	keys mapset.Set[string]
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: mapset.NewSet[string]()}
}

// MarkVisited implements domain.VisitedStore.
func (s *MemoryStore) MarkVisited(_ context.Context, key string) (bool, error) {
	return !s.keys.Add(key), nil
}

// Len implements domain.VisitedStore.
func (s *MemoryStore) Len(_ context.Context) (int, error) {
	return s.keys.Cardinality(), nil
}

// setNXClient is the slice of the Redis client the store needs.
type setNXClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// DefaultVisitedTTL bounds how long a crawl's keys outlive it in Redis.
const DefaultVisitedTTL = 24 * time.Hour

// RedisStore keeps the visited set in Redis under a per-run key prefix, so a
// crawl can be inspected from outside while it runs. Keys expire after ttl.
type RedisStore struct {
	client setNXClient
	prefix string
	ttl    time.Duration
	added  atomic.Int64
}

// NewRedisStore creates a store whose keys are scoped to runID.
func NewRedisStore(client setNXClient, runID string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultVisitedTTL
	}
	return &RedisStore{
		client: client,
		prefix: fmt.Sprintf("linkcheck:%s:visited:", runID),
		ttl:    ttl,
	}
}

// MarkVisited implements domain.VisitedStore with SETNX, which is atomic on the server.
func (s *RedisStore) MarkVisited(ctx context.Context, key string) (bool, error) {
	inserted, err := s.client.SetNX(ctx, s.prefix+key, 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("visited store: %w", err)
	}
	if inserted {
		s.added.Add(1)
	}
	return !inserted, nil
}

// Len implements domain.VisitedStore. It counts keys this process inserted.
func (s *RedisStore) Len(_ context.Context) (int, error) {
	return int(s.added.Load()), nil
}
