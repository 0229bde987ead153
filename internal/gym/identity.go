package gym

import (
	"context"
	"errors"
	"strings"

	"gymdesk/internal/authz"
	"gymdesk/internal/identity/models"
	"gymdesk/pkg/domain"
	dErrors "gymdesk/pkg/domain-errors"
	"gymdesk/pkg/platform/sentinel"
)

// GetCallerUserProfile returns the caller's profile, or nil when none
// has been saved yet.
func (s *Service) GetCallerUserProfile(ctx context.Context) (*models.Profile, error) {
	caller, _, err := s.requireOperation(ctx, authz.OpGetOwnProfile)
	if err != nil {
		return nil, err
	}
	return s.loadProfile(ctx, caller)
}

// SaveCallerUserProfile creates or overwrites the caller's own profile.
// The member back-reference is derived from the link table, never from
// client input, so a user cannot link themselves to a member.
func (s *Service) SaveCallerUserProfile(ctx context.Context, profile models.Profile) error {
	caller, _, err := s.requireOperation(ctx, authz.OpSaveOwnProfile)
	if err != nil {
		return err
	}

	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name required")
	}
	profile.MemberID = nil

	if err := s.identities.SaveProfile(ctx, caller, &profile); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save profile")
	}
	return nil
}

// GetUserProfile returns another principal's profile, or nil when none
// exists. Admin-only.
func (s *Service) GetUserProfile(ctx context.Context, target domain.Principal) (*models.Profile, error) {
	if _, _, err := s.requireOperation(ctx, authz.OpGetProfileOf); err != nil {
		return nil, err
	}
	if target.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "principal required")
	}
	return s.loadProfile(ctx, target)
}

// GetCallerUserRole returns the caller's effective role (guest when no
// assignment exists).
func (s *Service) GetCallerUserRole(ctx context.Context) (domain.Role, error) {
	_, role, err := s.requireOperation(ctx, authz.OpGetOwnRole)
	if err != nil {
		return "", err
	}
	return role, nil
}

// IsCallerAdmin reports whether the caller's role is admin.
func (s *Service) IsCallerAdmin(ctx context.Context) (bool, error) {
	role, err := s.GetCallerUserRole(ctx)
	if err != nil {
		return false, err
	}
	return role == domain.RoleAdmin, nil
}

// AssignCallerUserRole fully replaces the target principal's role.
func (s *Service) AssignCallerUserRole(ctx context.Context, target domain.Principal, role domain.Role) error {
	caller, _, err := s.requireOperation(ctx, authz.OpAssignRole)
	if err != nil {
		return err
	}

	if target.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "principal required")
	}
	if !role.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}

	if err := s.identities.AssignRole(ctx, target, role); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to assign role")
	}

	s.metrics.RolesAssigned.Inc()
	s.logAudit(ctx, "identity.role_assigned",
		"principal", caller.String(),
		"target", target.String(),
		"role", role.String(),
	)
	return nil
}

// LinkPrincipalToMember links the target principal to a member record,
// replacing the principal's prior link. Linking a member that already
// belongs to a different principal fails with conflict; the older link
// must be moved explicitly rather than silently orphaned.
func (s *Service) LinkPrincipalToMember(ctx context.Context, target domain.Principal, memberID domain.MemberID) error {
	caller, _, err := s.requireOperation(ctx, authz.OpLinkMember)
	if err != nil {
		return err
	}

	if target.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "principal required")
	}
	if err := s.requireExistingMember(ctx, memberID); err != nil {
		return err
	}

	if err := s.identities.LinkMember(ctx, target, memberID); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.New(dErrors.CodeConflict, "member is already linked to another identity")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to link member")
	}

	s.logAudit(ctx, "identity.member_linked",
		"principal", caller.String(),
		"target", target.String(),
		"member_id", memberID.String(),
	)
	return nil
}

func (s *Service) loadProfile(ctx context.Context, principal domain.Principal) (*models.Profile, error) {
	profile, err := s.identities.FindProfile(ctx, principal)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get profile")
	}

	// The link table is authoritative for the back-reference.
	memberID, linked, err := s.resolver.LinkedMemberID(ctx, principal)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve member link")
	}
	if linked {
		profile.MemberID = &memberID
	}
	return profile, nil
}
