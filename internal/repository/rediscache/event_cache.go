// Package rediscache provides a short-TTL read-through cache for the public
// event listing. It is optional: a nil *EventCache disables caching.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eventhive/internal/domain"
)

const listingTTL = 30 * time.Second

type EventCache struct {
	client *redis.Client
}

// New creates an event cache from a redis URL. Returns nil if the URL is
// empty (caching not configured).
func New(url string) (*EventCache, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &EventCache{client: client}, nil
}

func listingKey(filter domain.EventFilter) string {
	return fmt.Sprintf("events:public:%s|%s|%s|%s|%t",
		filter.Search, filter.Category, filter.EventType, filter.Status, filter.UpcomingOnly)
}

// GetListing returns the cached listing for the filter, or ok=false on miss
// or any redis failure. Callers treat failures as misses.
func (c *EventCache) GetListing(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, listingKey(filter)).Bytes()
	if err != nil {
		return nil, false
	}
	var events []*domain.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, false
	}
	return events, true
}

// SetListing stores the listing under a short TTL. Staleness is bounded by
// the TTL; there is no explicit invalidation.
func (c *EventCache) SetListing(ctx context.Context, filter domain.EventFilter, events []*domain.Event) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return
	}
	c.client.Set(ctx, listingKey(filter), raw, listingTTL)
}

// Health checks the redis connection.
func (c *EventCache) Health(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the redis connection.
func (c *EventCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
