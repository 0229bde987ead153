package models

import (
	"time"

	"gymdesk/pkg/domain"
)

// Payment is an immutable monetary record for a member. Date is assigned
// by the ledger at recording time.
type Payment struct {
	ID       domain.PaymentID `json:"id"`
	MemberID domain.MemberID  `json:"member_id"`
	Amount   float64          `json:"amount"`
	Method   string           `json:"method"`
	Notes    string           `json:"notes"`
	Date     time.Time        `json:"date"`
}
