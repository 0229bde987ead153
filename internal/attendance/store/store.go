// Package store persists the append-only check-in ledger.
package store

import (
	"context"

	"gymdesk/internal/attendance/models"
	"gymdesk/pkg/domain"
)

// Store is the attendance ledger contract. Records are append-only and
// timestamps are assigned by the store, monotonically non-decreasing.
// Member existence is the service's concern, not the ledger's.
type Store interface {
	Append(ctx context.Context, memberID domain.MemberID) (*models.CheckIn, error)
	ListByMember(ctx context.Context, memberID domain.MemberID) ([]*models.CheckIn, error)
}
