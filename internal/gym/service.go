// Package gym is the domain service façade. Every operation follows the
// same sequence: resolve the caller's role, authorize, validate inputs,
// check references, then execute against the registries and ledgers. All
// checks run before any mutation, so a denied or invalid call never
// partially applies.
package gym

import (
	"context"
	"log/slog"
	"strings"

	attendancestore "gymdesk/internal/attendance/store"
	"gymdesk/internal/authz"
	"gymdesk/internal/identity"
	identitystore "gymdesk/internal/identity/store"
	memberstore "gymdesk/internal/member/store"
	"gymdesk/internal/platform/metrics"
	paymentstore "gymdesk/internal/payment/store"
	"gymdesk/pkg/domain"
	dErrors "gymdesk/pkg/domain-errors"
	"gymdesk/pkg/requestcontext"
)

// Service composes the identity resolver, authorization policy, member
// registry, and the two ledgers.
type Service struct {
	logger     *slog.Logger
	metrics    *metrics.Metrics
	resolver   *identity.Resolver
	members    memberstore.Store
	checkIns   attendancestore.Store
	payments   paymentstore.Store
	identities identitystore.Store
}

func New(
	logger *slog.Logger,
	m *metrics.Metrics,
	resolver *identity.Resolver,
	members memberstore.Store,
	checkIns attendancestore.Store,
	payments paymentstore.Store,
	identities identitystore.Store,
) *Service {
	return &Service{
		logger:     logger,
		metrics:    m,
		resolver:   resolver,
		members:    members,
		checkIns:   checkIns,
		payments:   payments,
		identities: identities,
	}
}

// requireOperation resolves the caller and checks the policy. It returns
// the caller principal and role so operations don't resolve twice.
func (s *Service) requireOperation(ctx context.Context, op authz.Operation) (domain.Principal, domain.Role, error) {
	principal := requestcontext.Principal(ctx)
	if principal.IsZero() {
		return "", "", dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	role, err := s.resolver.Role(ctx, principal)
	if err != nil {
		return "", "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve caller role")
	}

	if !authz.Allowed(role, op) {
		return "", "", dErrors.New(dErrors.CodeForbidden, "forbidden")
	}
	return principal, role, nil
}

// logAudit records an admin-visible action with enough attributes to
// reconstruct who did what to whom.
func (s *Service) logAudit(ctx context.Context, event string, attrs ...any) {
	base := []any{
		"event", event,
		"request_id", requestcontext.RequestID(ctx),
	}
	s.logger.InfoContext(ctx, "audit", append(base, attrs...)...)
}

// requireExistingMember fails with not_found when the member is absent.
// The message deliberately does not distinguish missing from forbidden.
func (s *Service) requireExistingMember(ctx context.Context, id domain.MemberID) error {
	if id.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "member id required")
	}
	exists, err := s.members.Exists(ctx, id)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check member")
	}
	if !exists {
		return dErrors.New(dErrors.CodeNotFound, "member does not exist or no permission")
	}
	return nil
}

func validateMemberFields(name, contact string) (string, string, error) {
	name = strings.TrimSpace(name)
	contact = strings.TrimSpace(contact)
	if name == "" {
		return "", "", dErrors.New(dErrors.CodeInvalidInput, "name required")
	}
	if contact == "" {
		return "", "", dErrors.New(dErrors.CodeInvalidInput, "contact required")
	}
	return name, contact, nil
}
