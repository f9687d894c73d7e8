package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"tastetrail/internal/restaurants"
)

const keyPrefix = "restaurants:search:"

// Store caches search results by fingerprint. The in-memory map is
// authoritative for the session; Redis is a best-effort mirror whose
// failures are logged and swallowed. Entries are write-once per fingerprint.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]restaurants.Restaurant
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
}

// NewStore builds a cache store. A nil client disables persistence; the
// store then runs memory-only.
func NewStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		entries: make(map[string][]restaurants.Restaurant),
		client:  client,
		ttl:     ttl,
		logger:  logger,
	}
}

func (s *Store) Get(_ context.Context, fingerprint string) ([]restaurants.Restaurant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results, ok := s.entries[fingerprint]
	return results, ok
}

func (s *Store) Put(ctx context.Context, fingerprint string, results []restaurants.Restaurant) {
	s.mu.Lock()
	if _, exists := s.entries[fingerprint]; exists {
		s.mu.Unlock()
		return
	}
	s.entries[fingerprint] = results
	s.mu.Unlock()

	s.persist(ctx, fingerprint, results)
}

func (s *Store) persist(ctx context.Context, fingerprint string, results []restaurants.Restaurant) {
	if s.client == nil {
		return
	}
	data, err := json.Marshal(results)
	if err != nil {
		s.logger.Warn("failed to marshal cache entry", "fingerprint", fingerprint, "error", err)
		return
	}
	if err := s.client.Set(ctx, formatKey(fingerprint), data, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to persist cache entry", "fingerprint", fingerprint, "error", err)
	}
}

// Rehydrate loads persisted entries into memory. Called once at startup.
// Corrupt entries are dropped with a log line, never fatal.
func (s *Store) Rehydrate(ctx context.Context) {
	if s.client == nil {
		return
	}

	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	loaded := 0
	for iter.Next(ctx) {
		key := iter.Val()
		value, err := s.client.Get(ctx, key).Result()
		if err != nil {
			s.logger.Warn("failed to read persisted cache entry", "key", key, "error", err)
			continue
		}

		var results []restaurants.Restaurant
		if err := json.Unmarshal([]byte(value), &results); err != nil {
			s.logger.Warn("dropping corrupt cache entry", "key", key, "error", err)
			continue
		}

		fingerprint := strings.TrimPrefix(key, keyPrefix)
		s.mu.Lock()
		if _, exists := s.entries[fingerprint]; !exists {
			s.entries[fingerprint] = results
			loaded++
		}
		s.mu.Unlock()
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("cache rehydration interrupted", "error", err)
		return
	}
	s.logger.Info("cache rehydrated", "entries", loaded)
}

func formatKey(fingerprint string) string {
	return fmt.Sprintf("%s%s", keyPrefix, fingerprint)
}
