// Package identity resolves an opaque caller principal to its role and,
// when linked, to the member record it represents.
package identity

import (
	"context"
	"errors"
	"fmt"

	identitystore "gymdesk/internal/identity/store"
	membermodels "gymdesk/internal/member/models"
	memberstore "gymdesk/internal/member/store"
	"gymdesk/pkg/domain"
	"gymdesk/pkg/platform/sentinel"
)

// Resolver is a pure lookup layer: no side effects, no caching of its
// own. Principals without a role assignment resolve to guest.
type Resolver struct {
	identities identitystore.Store
	members    memberstore.Store
}

func NewResolver(identities identitystore.Store, members memberstore.Store) *Resolver {
	return &Resolver{identities: identities, members: members}
}

// Role returns the principal's assigned role, defaulting to guest.
func (r *Resolver) Role(ctx context.Context, principal domain.Principal) (domain.Role, error) {
	role, err := r.identities.FindRole(ctx, principal)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domain.RoleGuest, nil
		}
		return "", fmt.Errorf("resolve role: %w", err)
	}
	return role, nil
}

// Member returns the member linked to the principal, or nil when no link
// exists.
func (r *Resolver) Member(ctx context.Context, principal domain.Principal) (*membermodels.Member, error) {
	memberID, err := r.identities.FindLink(ctx, principal)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve member link: %w", err)
	}

	m, err := r.members.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Members are never deleted, so a dangling link means the
			// stores disagree; surface nothing rather than a phantom.
			return nil, nil
		}
		return nil, fmt.Errorf("resolve linked member: %w", err)
	}
	return m, nil
}

// LinkedMemberID returns the raw link target without loading the member.
func (r *Resolver) LinkedMemberID(ctx context.Context, principal domain.Principal) (domain.MemberID, bool, error) {
	memberID, err := r.identities.FindLink(ctx, principal)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("resolve member link: %w", err)
	}
	return memberID, true, nil
}
