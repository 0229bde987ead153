package gym

import (
	"context"
	"errors"

	"gymdesk/internal/authz"
	"gymdesk/internal/member/models"
	"gymdesk/pkg/domain"
	dErrors "gymdesk/pkg/domain-errors"
	"gymdesk/pkg/platform/sentinel"
)

// CreateMember registers a new member and returns its id.
func (s *Service) CreateMember(ctx context.Context, name, contact string) (domain.MemberID, error) {
	caller, _, err := s.requireOperation(ctx, authz.OpCreateMember)
	if err != nil {
		return 0, err
	}

	name, contact, err = validateMemberFields(name, contact)
	if err != nil {
		return 0, err
	}

	m, err := s.members.Create(ctx, name, contact)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create member")
	}

	s.metrics.MembersCreated.Inc()
	s.logAudit(ctx, "member.created",
		"principal", caller.String(),
		"member_id", m.ID.String(),
	)
	return m.ID, nil
}

// UpdateMember changes a member's name and contact. Status, plan fields,
// and dates are untouchable through this operation.
func (s *Service) UpdateMember(ctx context.Context, id domain.MemberID, name, contact string) error {
	caller, _, err := s.requireOperation(ctx, authz.OpUpdateMember)
	if err != nil {
		return err
	}

	if id.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "member id required")
	}
	name, contact, err = validateMemberFields(name, contact)
	if err != nil {
		return err
	}

	if _, err := s.members.Update(ctx, id, name, contact); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "member does not exist or no permission")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update member")
	}

	s.logAudit(ctx, "member.updated",
		"principal", caller.String(),
		"member_id", id.String(),
	)
	return nil
}

// GetMember fetches a single member record.
func (s *Service) GetMember(ctx context.Context, id domain.MemberID) (*models.Member, error) {
	if _, _, err := s.requireOperation(ctx, authz.OpGetMember); err != nil {
		return nil, err
	}

	if id.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "member id required")
	}

	m, err := s.members.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "member does not exist or no permission")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get member")
	}
	return m, nil
}

// GetAllMembers returns an unordered snapshot of the registry. Ordering
// is the caller's concern.
func (s *Service) GetAllMembers(ctx context.Context) ([]*models.Member, error) {
	if _, _, err := s.requireOperation(ctx, authz.OpListMembers); err != nil {
		return nil, err
	}

	members, err := s.members.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list members")
	}
	return members, nil
}
