package models

import (
	"time"

	"gymdesk/pkg/domain"
)

// CheckIn is an immutable attendance record. The ledger assigns the
// timestamp at insertion so records reflect true arrival order.
type CheckIn struct {
	ID        domain.CheckInID `json:"id"`
	MemberID  domain.MemberID  `json:"member_id"`
	Timestamp time.Time        `json:"timestamp"`
}
