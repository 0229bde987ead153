//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"gymdesk/pkg/domain"
	"gymdesk/pkg/platform/sentinel"
	"gymdesk/pkg/testutil/containers"
)

type RoleCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	inner *InMemoryStore
	cache *RoleCache
}

func TestRoleCacheSuite(t *testing.T) {
	suite.Run(t, new(RoleCacheSuite))
}

func (s *RoleCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RoleCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.inner = NewInMemory()
	s.cache = NewRoleCache(s.inner, s.redis.Client, time.Minute)
}

func (s *RoleCacheSuite) TestFindRole() {
	ctx := context.Background()
	principal := domain.Principal("alice")

	s.Run("miss on both cache and store", func() {
		_, err := s.cache.FindRole(ctx, principal)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("first read populates the cache", func() {
		s.Require().NoError(s.inner.AssignRole(ctx, principal, domain.RoleUser))

		role, err := s.cache.FindRole(ctx, principal)
		s.Require().NoError(err)
		s.Equal(domain.RoleUser, role)

		cached, err := s.redis.Client.Get(ctx, "gymdesk:role:alice").Result()
		s.Require().NoError(err)
		s.Equal("user", cached)
	})

	s.Run("second read is served from the cache", func() {
		// Change the inner store behind the cache's back; the stale cached
		// value should win until invalidation.
		s.Require().NoError(s.inner.AssignRole(ctx, principal, domain.RoleAdmin))

		role, err := s.cache.FindRole(ctx, principal)
		s.Require().NoError(err)
		s.Equal(domain.RoleUser, role)
	})
}

func (s *RoleCacheSuite) TestAssignRoleInvalidates() {
	ctx := context.Background()
	principal := domain.Principal("bob")

	s.Require().NoError(s.cache.AssignRole(ctx, principal, domain.RoleUser))
	role, err := s.cache.FindRole(ctx, principal)
	s.Require().NoError(err)
	s.Equal(domain.RoleUser, role)

	// Assigning through the cache evicts the entry, so the change is
	// visible immediately.
	s.Require().NoError(s.cache.AssignRole(ctx, principal, domain.RoleAdmin))
	role, err = s.cache.FindRole(ctx, principal)
	s.Require().NoError(err)
	s.Equal(domain.RoleAdmin, role)
}

func (s *RoleCacheSuite) TestGarbageCacheEntryFallsThrough() {
	ctx := context.Background()
	principal := domain.Principal("carol")

	s.Require().NoError(s.inner.AssignRole(ctx, principal, domain.RoleUser))
	s.Require().NoError(s.redis.Client.Set(ctx, "gymdesk:role:carol", "not-a-role", time.Minute).Err())

	role, err := s.cache.FindRole(ctx, principal)
	s.Require().NoError(err)
	s.Equal(domain.RoleUser, role)
}
