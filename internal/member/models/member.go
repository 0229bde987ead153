package models

import (
	"time"

	"gymdesk/pkg/domain"
)

// Status is a member's lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Member is a person tracked for membership, attendance, and billing.
// Plan fields are carried but inert until a plan subsystem exists;
// pointers keep "not enabled" distinct from a zero value.
type Member struct {
	ID              domain.MemberID `json:"id"`
	Name            string          `json:"name"`
	Contact         string          `json:"contact"`
	Status          Status          `json:"status"`
	PlanID          *int64          `json:"plan_id,omitempty"`
	MembershipStart *time.Time      `json:"membership_start,omitempty"`
	MembershipEnd   *time.Time      `json:"membership_end,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
