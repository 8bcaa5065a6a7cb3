// Package cache holds the Redis-backed session cache of redacted user views.
// The cache is a pure accelerator: PostgreSQL stays authoritative, entries
// expire after the configured TTL, and every backend error is treated as a
// soft failure so a Redis outage degrades reads to the store instead of
// failing requests.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jacksonn455/user-service/internal/models"
)

const userViewKeyPrefix = "user:view:"

type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	return &UserCache{client: client, ttl: ttl}
}

// Get retrieves a cached user view. Any miss, backend error or stale payload
// that fails to deserialise reads as (nil, false).
func (c *UserCache) Get(ctx context.Context, userID string) (*models.UserView, bool) {
	data, err := c.client.Get(ctx, userViewKeyPrefix+userID).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("UserCache: read error for user %s: %v", userID, err)
		}
		return nil, false
	}
	var view models.UserView
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		return nil, false
	}
	return &view, true
}

// Set stores a user view, resetting the TTL. Write errors are logged and
// swallowed.
func (c *UserCache) Set(ctx context.Context, view *models.UserView) {
	data, err := json.Marshal(view)
	if err != nil {
		log.Printf("UserCache: marshal error for user %s: %v", view.ID, err)
		return
	}
	if err := c.client.Set(ctx, userViewKeyPrefix+view.ID, data, c.ttl).Err(); err != nil {
		log.Printf("UserCache: write error for user %s: %v", view.ID, err)
	}
}
