// Package authz is the pure authorization policy: given a role and an
// operation, allow or deny. It holds no state and performs no I/O, so
// the full decision table is testable without any store.
package authz

import (
	"gymdesk/pkg/domain"
)

// Operation names every gated action in the domain service.
type Operation string

const (
	OpCreateMember  Operation = "member.create"
	OpUpdateMember  Operation = "member.update"
	OpGetMember     Operation = "member.get"
	OpListMembers   Operation = "member.list"
	OpCheckIn       Operation = "attendance.check_in"
	OpListCheckIns  Operation = "attendance.list"
	OpRecordPayment Operation = "payment.record"
	OpListPayments  Operation = "payment.list"
	OpAssignRole    Operation = "identity.assign_role"
	OpLinkMember    Operation = "identity.link_member"
	OpGetProfileOf  Operation = "identity.get_profile_of"

	OpGetOwnProfile  Operation = "self.get_profile"
	OpSaveOwnProfile Operation = "self.save_profile"
	OpGetOwnRole     Operation = "self.get_role"
)

// adminOnly lists operations restricted to admins. Reads over members
// and ledgers are deliberately included: the domain has no self-service
// member view, so ordinary users see only their own profile and role.
var adminOnly = map[Operation]struct{}{
	OpCreateMember:  {},
	OpUpdateMember:  {},
	OpGetMember:     {},
	OpListMembers:   {},
	OpCheckIn:       {},
	OpListCheckIns:  {},
	OpRecordPayment: {},
	OpListPayments:  {},
	OpAssignRole:    {},
	OpLinkMember:    {},
	OpGetProfileOf:  {},
}

// selfService lists operations any authenticated principal may perform
// on its own identity.
var selfService = map[Operation]struct{}{
	OpGetOwnProfile:  {},
	OpSaveOwnProfile: {},
	OpGetOwnRole:     {},
}

// Allowed reports whether the role may perform the operation. Unknown
// operations are denied.
func Allowed(role domain.Role, op Operation) bool {
	if _, ok := selfService[op]; ok {
		return true
	}
	if _, ok := adminOnly[op]; ok {
		return role == domain.RoleAdmin
	}
	return false
}
