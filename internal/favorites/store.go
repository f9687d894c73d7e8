package favorites

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"tastetrail/internal/restaurants"
)

const storageKey = "favorites"

// Store holds the user's favorited restaurants: an order-preserving list
// deduplicated by restaurant id. The in-memory list is authoritative; the
// durable Redis key is written best-effort, so a failed write never surfaces
// to the caller.
type Store struct {
	mu     sync.RWMutex
	items  []restaurants.Restaurant
	client *redis.Client
	logger *slog.Logger
}

func NewStore(client *redis.Client, logger *slog.Logger) *Store {
	return &Store{
		items:  []restaurants.Restaurant{},
		client: client,
		logger: logger,
	}
}

// Load restores the persisted list. Called once at startup; a missing or
// unreadable key leaves the list empty.
func (s *Store) Load(ctx context.Context) {
	if s.client == nil {
		return
	}

	value, err := s.client.Get(ctx, storageKey).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("failed to load favorites", "error", err)
		}
		return
	}

	var items []restaurants.Restaurant
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		s.logger.Warn("dropping corrupt favorites entry", "error", err)
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.logger.Info("favorites loaded", "count", len(items))
}

// List returns the favorites in insertion order.
func (s *Store) List() []restaurants.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]restaurants.Restaurant, len(s.items))
	copy(items, s.items)
	return items
}

// Add appends the restaurant unless one with the same id is already present.
func (s *Store) Add(ctx context.Context, restaurant restaurants.Restaurant) {
	s.mu.Lock()
	for _, item := range s.items {
		if item.ID == restaurant.ID {
			s.mu.Unlock()
			return
		}
	}
	s.items = append(s.items, restaurant)
	items := make([]restaurants.Restaurant, len(s.items))
	copy(items, s.items)
	s.mu.Unlock()

	s.persist(ctx, items)
}

// Remove deletes the favorite with the given id. An absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	kept := s.items[:0:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(s.items) {
		s.mu.Unlock()
		return
	}
	s.items = kept
	items := make([]restaurants.Restaurant, len(s.items))
	copy(items, s.items)
	s.mu.Unlock()

	s.persist(ctx, items)
}

func (s *Store) persist(ctx context.Context, items []restaurants.Restaurant) {
	if s.client == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("failed to marshal favorites", "error", err)
		return
	}
	if err := s.client.Set(ctx, storageKey, data, 0).Err(); err != nil {
		s.logger.Warn("failed to persist favorites", "error", err)
	}
}
