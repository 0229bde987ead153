package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gymdesk/pkg/domain"
)

func TestAllowed(t *testing.T) {
	adminOps := []Operation{
		OpCreateMember, OpUpdateMember, OpGetMember, OpListMembers,
		OpCheckIn, OpListCheckIns,
		OpRecordPayment, OpListPayments,
		OpAssignRole, OpLinkMember, OpGetProfileOf,
	}
	selfOps := []Operation{OpGetOwnProfile, OpSaveOwnProfile, OpGetOwnRole}

	t.Run("admin may perform every operation", func(t *testing.T) {
		for _, op := range append(adminOps, selfOps...) {
			assert.True(t, Allowed(domain.RoleAdmin, op), "op %s", op)
		}
	})

	t.Run("user and guest are denied admin operations", func(t *testing.T) {
		for _, role := range []domain.Role{domain.RoleUser, domain.RoleGuest} {
			for _, op := range adminOps {
				assert.False(t, Allowed(role, op), "role %s op %s", role, op)
			}
		}
	})

	t.Run("any role may perform self-service operations", func(t *testing.T) {
		for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleUser, domain.RoleGuest} {
			for _, op := range selfOps {
				assert.True(t, Allowed(role, op), "role %s op %s", role, op)
			}
		}
	})

	t.Run("unknown operations are denied for every role", func(t *testing.T) {
		for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleUser, domain.RoleGuest} {
			assert.False(t, Allowed(role, Operation("member.delete")))
			assert.False(t, Allowed(role, Operation("")))
		}
	})
}
