// Package domain holds the typed identifiers shared across the service.
// Distinct types keep a member id from ever being passed where a payment
// id is expected; the compiler enforces what a raw int64 cannot.
package domain

import (
	"strconv"
	"strings"

	dErrors "gymdesk/pkg/domain-errors"
)

// MemberID identifies a member record. The registry assigns ids starting
// at 1; zero is "unset".
type MemberID int64

// CheckInID identifies an attendance ledger entry.
type CheckInID int64

// PaymentID identifies a payment ledger entry.
type PaymentID int64

func (id MemberID) IsZero() bool  { return id == 0 }
func (id CheckInID) IsZero() bool { return id == 0 }
func (id PaymentID) IsZero() bool { return id == 0 }

func (id MemberID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id CheckInID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id PaymentID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseMemberID parses a member id from its string form. Ids are always
// positive integers; anything else is rejected at the boundary.
func ParseMemberID(s string) (MemberID, error) {
	n, err := parsePositiveInt(s, "member id")
	return MemberID(n), err
}

// ParseCheckInID parses a check-in id from its string form.
func ParseCheckInID(s string) (CheckInID, error) {
	n, err := parsePositiveInt(s, "check-in id")
	return CheckInID(n), err
}

// ParsePaymentID parses a payment id from its string form.
func ParsePaymentID(s string) (PaymentID, error) {
	n, err := parsePositiveInt(s, "payment id")
	return PaymentID(n), err
}

func parsePositiveInt(s, what string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, what+" required")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+what)
	}
	if n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+what)
	}
	return n, nil
}
