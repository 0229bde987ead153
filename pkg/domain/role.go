package domain

import (
	dErrors "gymdesk/pkg/domain-errors"
)

// Role is the authorization level assigned to a principal. Principals
// without an assignment act as guests.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Valid reports whether the role is one of the three known levels.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole validates a role received at a trust boundary.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	return r, nil
}
