package gym

import (
	"context"
	"strings"

	"gymdesk/internal/authz"
	"gymdesk/internal/payment/models"
	"gymdesk/pkg/domain"
	dErrors "gymdesk/pkg/domain-errors"
)

// AddPayment records a payment for the member and returns its id.
func (s *Service) AddPayment(ctx context.Context, memberID domain.MemberID, amount float64, method, notes string) (domain.PaymentID, error) {
	caller, _, err := s.requireOperation(ctx, authz.OpRecordPayment)
	if err != nil {
		return 0, err
	}

	if amount < 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "amount must not be negative")
	}
	method = strings.TrimSpace(method)
	if method == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "method required")
	}
	notes = strings.TrimSpace(notes)

	if err := s.requireExistingMember(ctx, memberID); err != nil {
		return 0, err
	}

	p, err := s.payments.Append(ctx, memberID, amount, method, notes)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record payment")
	}

	s.metrics.PaymentsRecorded.Inc()
	s.logAudit(ctx, "payment.recorded",
		"principal", caller.String(),
		"member_id", memberID.String(),
		"payment_id", p.ID.String(),
	)
	return p.ID, nil
}

// GetPaymentsForMember returns the member's payment records in no
// particular order.
func (s *Service) GetPaymentsForMember(ctx context.Context, memberID domain.MemberID) ([]*models.Payment, error) {
	if _, _, err := s.requireOperation(ctx, authz.OpListPayments); err != nil {
		return nil, err
	}

	if err := s.requireExistingMember(ctx, memberID); err != nil {
		return nil, err
	}

	records, err := s.payments.ListByMember(ctx, memberID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list payments")
	}
	return records, nil
}
