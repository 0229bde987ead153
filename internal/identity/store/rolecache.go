package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"gymdesk/pkg/domain"
)

// RoleCache decorates a Store with a Redis-backed cache for role
// lookups, the hottest read on every request. Assignments invalidate the
// cached entry so a role change is visible within one round trip; cache
// failures fall through to the inner store.
type RoleCache struct {
	Store
	rdb *redis.Client
	ttl time.Duration
}

func NewRoleCache(inner Store, rdb *redis.Client, ttl time.Duration) *RoleCache {
	return &RoleCache{Store: inner, rdb: rdb, ttl: ttl}
}

func roleKey(principal domain.Principal) string {
	return "gymdesk:role:" + principal.String()
}

func (c *RoleCache) FindRole(ctx context.Context, principal domain.Principal) (domain.Role, error) {
	cached, err := c.rdb.Get(ctx, roleKey(principal)).Result()
	if err == nil {
		if role := domain.Role(cached); role.Valid() {
			return role, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Cache trouble is not a reason to fail the request.
		return c.Store.FindRole(ctx, principal)
	}

	role, err := c.Store.FindRole(ctx, principal)
	if err != nil {
		return "", err
	}
	_ = c.rdb.Set(ctx, roleKey(principal), role.String(), c.ttl).Err()
	return role, nil
}

func (c *RoleCache) AssignRole(ctx context.Context, principal domain.Principal, role domain.Role) error {
	if err := c.Store.AssignRole(ctx, principal, role); err != nil {
		return err
	}
	_ = c.rdb.Del(ctx, roleKey(principal)).Err()
	return nil
}
