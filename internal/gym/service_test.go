package gym

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	attendancestore "gymdesk/internal/attendance/store"
	"gymdesk/internal/identity"
	identitymodels "gymdesk/internal/identity/models"
	identitystore "gymdesk/internal/identity/store"
	memberstore "gymdesk/internal/member/store"
	"gymdesk/internal/platform/metrics"
	paymentstore "gymdesk/internal/payment/store"
	"gymdesk/pkg/domain"
	dErrors "gymdesk/pkg/domain-errors"
	"gymdesk/pkg/requestcontext"
)

const (
	adminPrincipal = domain.Principal("admin-1")
	userPrincipal  = domain.Principal("user-1")
	guestPrincipal = domain.Principal("guest-1")
)

type ServiceSuite struct {
	suite.Suite
	svc        *Service
	members    *memberstore.InMemoryStore
	checkIns   *attendancestore.InMemoryStore
	payments   *paymentstore.InMemoryStore
	identities *identitystore.InMemoryStore
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.members = memberstore.NewInMemory()
	s.checkIns = attendancestore.NewInMemory()
	s.payments = paymentstore.NewInMemory()
	s.identities = identitystore.NewInMemory()

	ctx := context.Background()
	s.Require().NoError(s.identities.AssignRole(ctx, adminPrincipal, domain.RoleAdmin))
	s.Require().NoError(s.identities.AssignRole(ctx, userPrincipal, domain.RoleUser))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	resolver := identity.NewResolver(s.identities, s.members)
	s.svc = New(log, m, resolver, s.members, s.checkIns, s.payments, s.identities)
}

func (s *ServiceSuite) asAdmin() context.Context {
	return requestcontext.WithPrincipal(context.Background(), adminPrincipal)
}

func (s *ServiceSuite) asUser() context.Context {
	return requestcontext.WithPrincipal(context.Background(), userPrincipal)
}

func (s *ServiceSuite) asGuest() context.Context {
	return requestcontext.WithPrincipal(context.Background(), guestPrincipal)
}

func (s *ServiceSuite) createMember(name, contact string) domain.MemberID {
	id, err := s.svc.CreateMember(s.asAdmin(), name, contact)
	s.Require().NoError(err)
	return id
}

func (s *ServiceSuite) TestAuthentication() {
	ctx := context.Background()

	s.Run("missing principal is unauthorized on every operation", func() {
		_, err := s.svc.CreateMember(ctx, "Ada", "ada@x.com")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		_, err = s.svc.GetAllMembers(ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		_, err = s.svc.GetCallerUserProfile(ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		_, err = s.svc.GetCallerUserRole(ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *ServiceSuite) TestAuthorization() {
	target := s.createMember("Ada", "ada@x.com")

	s.Run("non-admins are denied member and ledger operations", func() {
		for _, ctx := range []context.Context{s.asUser(), s.asGuest()} {
			_, err := s.svc.CreateMember(ctx, "Eve", "eve@x.com")
			s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

			err = s.svc.UpdateMember(ctx, target, "Eve", "eve@x.com")
			s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

			_, err = s.svc.GetMember(ctx, target)
			s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

			_, err = s.svc.GetAllMembers(ctx)
			s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

			_, err = s.svc.CheckIn(ctx, target)
			s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

			_, err = s.svc.GetCheckInsForMember(ctx, target)
			s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

			_, err = s.svc.AddPayment(ctx, target, 10, "cash", "")
			s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

			_, err = s.svc.GetPaymentsForMember(ctx, target)
			s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

			err = s.svc.AssignCallerUserRole(ctx, guestPrincipal, domain.RoleUser)
			s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

			err = s.svc.LinkPrincipalToMember(ctx, guestPrincipal, target)
			s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

			_, err = s.svc.GetUserProfile(ctx, adminPrincipal)
			s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		}
	})

	s.Run("denied calls leave no trace in the stores", func() {
		members, err := s.svc.GetAllMembers(s.asAdmin())
		s.Require().NoError(err)
		s.Len(members, 1)

		checkIns, err := s.svc.GetCheckInsForMember(s.asAdmin(), target)
		s.Require().NoError(err)
		s.Empty(checkIns)

		payments, err := s.svc.GetPaymentsForMember(s.asAdmin(), target)
		s.Require().NoError(err)
		s.Empty(payments)
	})

	s.Run("authorization is checked before validation", func() {
		// Invalid input from a guest still reads as forbidden, not
		// invalid_input, so probing reveals nothing.
		_, err := s.svc.CreateMember(s.asGuest(), "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func (s *ServiceSuite) TestCreateMember() {
	s.Run("returns sequential ids", func() {
		first := s.createMember("Ada", "ada@x.com")
		second := s.createMember("Grace", "grace@x.com")
		s.Equal(domain.MemberID(1), first)
		s.Equal(domain.MemberID(2), second)
	})

	s.Run("rejects blank fields without touching the registry", func() {
		before, err := s.svc.GetAllMembers(s.asAdmin())
		s.Require().NoError(err)

		_, err = s.svc.CreateMember(s.asAdmin(), "   ", "ada@x.com")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = s.svc.CreateMember(s.asAdmin(), "Ada", "")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		after, err := s.svc.GetAllMembers(s.asAdmin())
		s.Require().NoError(err)
		s.Len(after, len(before))
	})

	s.Run("trims whitespace before storing", func() {
		id := s.createMember("  Ada  ", "  ada@x.com  ")
		m, err := s.svc.GetMember(s.asAdmin(), id)
		s.Require().NoError(err)
		s.Equal("Ada", m.Name)
		s.Equal("ada@x.com", m.Contact)
	})
}

func (s *ServiceSuite) TestUpdateMember() {
	id := s.createMember("Ada", "ada@x.com")

	s.Run("updates name and contact", func() {
		err := s.svc.UpdateMember(s.asAdmin(), id, "Ada Lovelace", "ada@new.com")
		s.Require().NoError(err)

		m, err := s.svc.GetMember(s.asAdmin(), id)
		s.Require().NoError(err)
		s.Equal("Ada Lovelace", m.Name)
		s.Equal("ada@new.com", m.Contact)
		s.True(m.UpdatedAt.After(m.CreatedAt))
	})

	s.Run("unknown member is not_found", func() {
		err := s.svc.UpdateMember(s.asAdmin(), domain.MemberID(404), "X", "x@x.com")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("zero id is invalid_input", func() {
		err := s.svc.UpdateMember(s.asAdmin(), 0, "X", "x@x.com")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestGetMember() {
	s.Run("missing member reads as not_found", func() {
		_, err := s.svc.GetMember(s.asAdmin(), domain.MemberID(404))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("member does not exist or no permission", dErrors.Message(err))
	})

	s.Run("reads do not change state", func() {
		id := s.createMember("Ada", "ada@x.com")

		first, err := s.svc.GetMember(s.asAdmin(), id)
		s.Require().NoError(err)
		second, err := s.svc.GetMember(s.asAdmin(), id)
		s.Require().NoError(err)
		s.Equal(first, second)
	})
}

func (s *ServiceSuite) TestCheckIn() {
	id := s.createMember("Ada", "ada@x.com")

	s.Run("repeated check-ins each append a record", func() {
		first, err := s.svc.CheckIn(s.asAdmin(), id)
		s.Require().NoError(err)
		second, err := s.svc.CheckIn(s.asAdmin(), id)
		s.Require().NoError(err)
		s.NotEqual(first, second)

		records, err := s.svc.GetCheckInsForMember(s.asAdmin(), id)
		s.Require().NoError(err)
		s.Len(records, 2)
	})

	s.Run("unknown member cannot check in", func() {
		_, err := s.svc.CheckIn(s.asAdmin(), domain.MemberID(404))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

		_, err = s.svc.GetCheckInsForMember(s.asAdmin(), domain.MemberID(404))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestAddPayment() {
	id := s.createMember("Ada", "ada@x.com")

	s.Run("records amount, method, and notes", func() {
		pid, err := s.svc.AddPayment(s.asAdmin(), id, 49.90, "card", "june dues")
		s.Require().NoError(err)
		s.False(pid.IsZero())

		records, err := s.svc.GetPaymentsForMember(s.asAdmin(), id)
		s.Require().NoError(err)
		s.Require().Len(records, 1)
		s.Equal(49.90, records[0].Amount)
		s.Equal("card", records[0].Method)
		s.Equal("june dues", records[0].Notes)
	})

	s.Run("zero amount is allowed, negative is not", func() {
		_, err := s.svc.AddPayment(s.asAdmin(), id, 0, "comp", "trial week")
		s.Require().NoError(err)

		_, err = s.svc.AddPayment(s.asAdmin(), id, -1, "cash", "")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("method is required, notes are optional", func() {
		_, err := s.svc.AddPayment(s.asAdmin(), id, 10, "  ", "")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = s.svc.AddPayment(s.asAdmin(), id, 10, "cash", "")
		s.Require().NoError(err)
	})

	s.Run("unknown member is not_found before any write", func() {
		_, err := s.svc.AddPayment(s.asAdmin(), domain.MemberID(404), 10, "cash", "")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestProfiles() {
	s.Run("no profile yet reads as nil, not an error", func() {
		p, err := s.svc.GetCallerUserProfile(s.asGuest())
		s.Require().NoError(err)
		s.Nil(p)
	})

	s.Run("any authenticated principal may save its own profile", func() {
		err := s.svc.SaveCallerUserProfile(s.asGuest(), identitymodels.Profile{Name: "Gustav"})
		s.Require().NoError(err)

		p, err := s.svc.GetCallerUserProfile(s.asGuest())
		s.Require().NoError(err)
		s.Require().NotNil(p)
		s.Equal("Gustav", p.Name)
		s.Nil(p.MemberID)
	})

	s.Run("client-supplied member back-reference is ignored", func() {
		bogus := domain.MemberID(77)
		err := s.svc.SaveCallerUserProfile(s.asUser(), identitymodels.Profile{Name: "Una", MemberID: &bogus})
		s.Require().NoError(err)

		p, err := s.svc.GetCallerUserProfile(s.asUser())
		s.Require().NoError(err)
		s.Nil(p.MemberID)
	})

	s.Run("blank name is rejected", func() {
		err := s.svc.SaveCallerUserProfile(s.asUser(), identitymodels.Profile{Name: "  "})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("link table drives the back-reference", func() {
		memberID := s.createMember("Una", "una@x.com")
		s.Require().NoError(s.svc.SaveCallerUserProfile(s.asUser(), identitymodels.Profile{Name: "Una"}))
		s.Require().NoError(s.svc.LinkPrincipalToMember(s.asAdmin(), userPrincipal, memberID))

		p, err := s.svc.GetCallerUserProfile(s.asUser())
		s.Require().NoError(err)
		s.Require().NotNil(p.MemberID)
		s.Equal(memberID, *p.MemberID)
	})

	s.Run("admin may read another principal's profile", func() {
		s.Require().NoError(s.svc.SaveCallerUserProfile(s.asGuest(), identitymodels.Profile{Name: "Gustav"}))

		p, err := s.svc.GetUserProfile(s.asAdmin(), guestPrincipal)
		s.Require().NoError(err)
		s.Require().NotNil(p)
		s.Equal("Gustav", p.Name)

		none, err := s.svc.GetUserProfile(s.asAdmin(), domain.Principal("stranger"))
		s.Require().NoError(err)
		s.Nil(none)
	})
}

func (s *ServiceSuite) TestRoles() {
	s.Run("caller role falls back to guest", func() {
		role, err := s.svc.GetCallerUserRole(s.asGuest())
		s.Require().NoError(err)
		s.Equal(domain.RoleGuest, role)

		isAdmin, err := s.svc.IsCallerAdmin(s.asGuest())
		s.Require().NoError(err)
		s.False(isAdmin)
	})

	s.Run("assignment takes effect on the next call", func() {
		err := s.svc.AssignCallerUserRole(s.asAdmin(), guestPrincipal, domain.RoleAdmin)
		s.Require().NoError(err)

		role, err := s.svc.GetCallerUserRole(s.asGuest())
		s.Require().NoError(err)
		s.Equal(domain.RoleAdmin, role)

		// The promoted principal can now use admin operations.
		_, err = s.svc.GetAllMembers(s.asGuest())
		s.Require().NoError(err)
	})

	s.Run("invalid role and empty target are rejected", func() {
		err := s.svc.AssignCallerUserRole(s.asAdmin(), "", domain.RoleUser)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		err = s.svc.AssignCallerUserRole(s.asAdmin(), userPrincipal, domain.Role("owner"))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestLinkPrincipalToMember() {
	memberID := s.createMember("Ada", "ada@x.com")

	s.Run("link requires an existing member", func() {
		err := s.svc.LinkPrincipalToMember(s.asAdmin(), userPrincipal, domain.MemberID(404))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("a member belongs to at most one principal", func() {
		err := s.svc.LinkPrincipalToMember(s.asAdmin(), userPrincipal, memberID)
		s.Require().NoError(err)

		err = s.svc.LinkPrincipalToMember(s.asAdmin(), guestPrincipal, memberID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("relinking the same pair is idempotent", func() {
		err := s.svc.LinkPrincipalToMember(s.asAdmin(), userPrincipal, memberID)
		s.Require().NoError(err)
	})
}

// TestFrontDeskDay runs an end-to-end day at the front desk against the
// in-memory stores.
func (s *ServiceSuite) TestFrontDeskDay() {
	admin := s.asAdmin()

	adaID, err := s.svc.CreateMember(admin, "Ada", "ada@x.com")
	s.Require().NoError(err)
	graceID, err := s.svc.CreateMember(admin, "Grace", "grace@x.com")
	s.Require().NoError(err)

	// Morning: Ada pays for the month and trains twice.
	_, err = s.svc.AddPayment(admin, adaID, 49.90, "card", "monthly")
	s.Require().NoError(err)
	_, err = s.svc.CheckIn(admin, adaID)
	s.Require().NoError(err)
	_, err = s.svc.CheckIn(admin, adaID)
	s.Require().NoError(err)

	// Afternoon: Grace signs up for the app; the desk links her account.
	s.Require().NoError(s.svc.AssignCallerUserRole(admin, userPrincipal, domain.RoleUser))
	s.Require().NoError(s.svc.LinkPrincipalToMember(admin, userPrincipal, graceID))
	s.Require().NoError(s.svc.SaveCallerUserProfile(s.asUser(), identitymodels.Profile{Name: "Grace"}))

	// Evening: the books reconcile.
	members, err := s.svc.GetAllMembers(admin)
	s.Require().NoError(err)
	s.Len(members, 2)

	adaCheckIns, err := s.svc.GetCheckInsForMember(admin, adaID)
	s.Require().NoError(err)
	s.Len(adaCheckIns, 2)

	adaPayments, err := s.svc.GetPaymentsForMember(admin, adaID)
	s.Require().NoError(err)
	s.Require().Len(adaPayments, 1)
	s.Equal(49.90, adaPayments[0].Amount)

	graceProfile, err := s.svc.GetUserProfile(admin, userPrincipal)
	s.Require().NoError(err)
	s.Require().NotNil(graceProfile)
	s.Require().NotNil(graceProfile.MemberID)
	s.Equal(graceID, *graceProfile.MemberID)

	gracePayments, err := s.svc.GetPaymentsForMember(admin, graceID)
	s.Require().NoError(err)
	s.Empty(gracePayments)
}
