package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"gymdesk/internal/identity/models"
	"gymdesk/pkg/domain"
	"gymdesk/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
}

func (s *InMemoryStoreSuite) TestProfiles() {
	ctx := context.Background()
	principal := domain.Principal("user-1")

	s.Run("unsaved profile returns ErrNotFound", func() {
		_, err := s.store.FindProfile(ctx, principal)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("save then find round-trips", func() {
		err := s.store.SaveProfile(ctx, principal, &models.Profile{Name: "Ada"})
		s.Require().NoError(err)

		p, err := s.store.FindProfile(ctx, principal)
		s.Require().NoError(err)
		s.Equal("Ada", p.Name)
	})

	s.Run("save overwrites the previous profile", func() {
		err := s.store.SaveProfile(ctx, principal, &models.Profile{Name: "Ada L."})
		s.Require().NoError(err)

		p, err := s.store.FindProfile(ctx, principal)
		s.Require().NoError(err)
		s.Equal("Ada L.", p.Name)
	})

	s.Run("stored profile is insulated from caller mutation", func() {
		in := &models.Profile{Name: "Grace"}
		err := s.store.SaveProfile(ctx, domain.Principal("user-2"), in)
		s.Require().NoError(err)
		in.Name = "mutated"

		p, err := s.store.FindProfile(ctx, domain.Principal("user-2"))
		s.Require().NoError(err)
		s.Equal("Grace", p.Name)
	})
}

func (s *InMemoryStoreSuite) TestRoles() {
	ctx := context.Background()
	principal := domain.Principal("user-1")

	s.Run("unassigned principal returns ErrNotFound", func() {
		_, err := s.store.FindRole(ctx, principal)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("assignment is readable", func() {
		err := s.store.AssignRole(ctx, principal, domain.RoleUser)
		s.Require().NoError(err)

		role, err := s.store.FindRole(ctx, principal)
		s.Require().NoError(err)
		s.Equal(domain.RoleUser, role)
	})

	s.Run("reassignment replaces the role", func() {
		err := s.store.AssignRole(ctx, principal, domain.RoleAdmin)
		s.Require().NoError(err)

		role, err := s.store.FindRole(ctx, principal)
		s.Require().NoError(err)
		s.Equal(domain.RoleAdmin, role)
	})
}

func (s *InMemoryStoreSuite) TestLinks() {
	ctx := context.Background()
	alice := domain.Principal("alice")
	bob := domain.Principal("bob")
	member := domain.MemberID(10)

	s.Run("unlinked principal returns ErrNotFound", func() {
		_, err := s.store.FindLink(ctx, alice)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("link is readable", func() {
		err := s.store.LinkMember(ctx, alice, member)
		s.Require().NoError(err)

		got, err := s.store.FindLink(ctx, alice)
		s.Require().NoError(err)
		s.Equal(member, got)
	})

	s.Run("relinking the same pair is idempotent", func() {
		err := s.store.LinkMember(ctx, alice, member)
		s.Require().NoError(err)
	})

	s.Run("a member already linked elsewhere conflicts", func() {
		err := s.store.LinkMember(ctx, bob, member)
		s.Require().ErrorIs(err, sentinel.ErrConflict)

		_, err = s.store.FindLink(ctx, bob)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("relinking a principal frees its previous member", func() {
		next := domain.MemberID(11)
		err := s.store.LinkMember(ctx, alice, next)
		s.Require().NoError(err)

		// member 10 is free again, bob may take it now.
		err = s.store.LinkMember(ctx, bob, member)
		s.Require().NoError(err)

		got, err := s.store.FindLink(ctx, alice)
		s.Require().NoError(err)
		s.Equal(next, got)
	})
}
