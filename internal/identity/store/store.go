// Package store persists identity records: profiles, role assignments,
// and principal-to-member links.
package store

import (
	"context"

	"gymdesk/internal/identity/models"
	"gymdesk/pkg/domain"
)

// Store is the identity backing contract.
//
// FindRole returns sentinel.ErrNotFound for principals with no
// assignment; the resolver translates that to guest. LinkMember replaces
// the principal's prior link and returns sentinel.ErrConflict when the
// target member is already linked to a different principal — the link
// invariant is enforced from both directions.
type Store interface {
	SaveProfile(ctx context.Context, principal domain.Principal, profile *models.Profile) error
	FindProfile(ctx context.Context, principal domain.Principal) (*models.Profile, error)

	AssignRole(ctx context.Context, principal domain.Principal, role domain.Role) error
	FindRole(ctx context.Context, principal domain.Principal) (domain.Role, error)

	LinkMember(ctx context.Context, principal domain.Principal, memberID domain.MemberID) error
	FindLink(ctx context.Context, principal domain.Principal) (domain.MemberID, error)
}
