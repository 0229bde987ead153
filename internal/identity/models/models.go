package models

import (
	"gymdesk/pkg/domain"
)

// Profile is the self-service record a principal creates on first
// sign-in. MemberID is a back-reference populated from the identity link
// table; callers cannot set it themselves.
type Profile struct {
	Name     string           `json:"name"`
	MemberID *domain.MemberID `json:"member_id,omitempty"`
}
