package gym

import (
	"context"

	"gymdesk/internal/attendance/models"
	"gymdesk/internal/authz"
	"gymdesk/pkg/domain"
	dErrors "gymdesk/pkg/domain-errors"
)

// CheckIn appends an attendance record for the member. Repeated calls
// each create a distinct record; multiple check-ins per day are
// legitimate (gym floor plus a class).
func (s *Service) CheckIn(ctx context.Context, memberID domain.MemberID) (domain.CheckInID, error) {
	caller, _, err := s.requireOperation(ctx, authz.OpCheckIn)
	if err != nil {
		return 0, err
	}

	if err := s.requireExistingMember(ctx, memberID); err != nil {
		return 0, err
	}

	c, err := s.checkIns.Append(ctx, memberID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record check-in")
	}

	s.metrics.CheckIns.Inc()
	s.logAudit(ctx, "attendance.checked_in",
		"principal", caller.String(),
		"member_id", memberID.String(),
		"check_in_id", c.ID.String(),
	)
	return c.ID, nil
}

// GetCheckInsForMember returns the member's attendance records in no
// particular order; callers sort and derive rollups themselves.
func (s *Service) GetCheckInsForMember(ctx context.Context, memberID domain.MemberID) ([]*models.CheckIn, error) {
	if _, _, err := s.requireOperation(ctx, authz.OpListCheckIns); err != nil {
		return nil, err
	}

	if err := s.requireExistingMember(ctx, memberID); err != nil {
		return nil, err
	}

	records, err := s.checkIns.ListByMember(ctx, memberID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list check-ins")
	}
	return records, nil
}
