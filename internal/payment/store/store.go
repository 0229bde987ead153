// Package store persists the append-only payment ledger.
package store

import (
	"context"

	"gymdesk/internal/payment/models"
	"gymdesk/pkg/domain"
)

// Store is the payment ledger contract. Records are append-only; the
// store assigns ids and the recording date. Amount/method validation and
// member existence belong to the service.
type Store interface {
	Append(ctx context.Context, memberID domain.MemberID, amount float64, method, notes string) (*models.Payment, error)
	ListByMember(ctx context.Context, memberID domain.MemberID) ([]*models.Payment, error)
}
