package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agroplan/backoffice/internal/core/domain"
)

const stateTTL = 30 * time.Second

// StateCache caches project lifecycle states with a short TTL so the ledger
// write path can gate on a closed project without a Mongo round trip.
// Key format: projstate:<project_id>
type StateCache struct {
	client *redis.Client
}

// NewStateCache creates a StateCache wrapping the given Redis client.
func NewStateCache(client *redis.Client) *StateCache {
	return &StateCache{client: client}
}

// Get returns the cached state and whether the key was present. Values that
// do not parse as a known state are treated as a miss.
func (c *StateCache) Get(ctx context.Context, projectID string) (domain.ProjectState, bool, error) {
	val, err := c.client.Get(ctx, c.key(projectID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("state cache get: %w", err)
	}

	state := domain.ProjectState(val)
	if !state.IsValid() {
		return "", false, nil
	}
	return state, true, nil
}

// Set records the project's current state (expires after stateTTL).
func (c *StateCache) Set(ctx context.Context, projectID string, state domain.ProjectState) error {
	return c.client.Set(ctx, c.key(projectID), string(state), stateTTL).Err()
}

// Invalidate drops the cached state. Called on every state transition and on
// project deletion so a stale entry can outlive the truth by at most stateTTL.
func (c *StateCache) Invalidate(ctx context.Context, projectID string) error {
	return c.client.Del(ctx, c.key(projectID)).Err()
}

func (c *StateCache) key(projectID string) string {
	return "projstate:" + projectID
}
