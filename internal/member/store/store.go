// Package store persists member records. Implementations are pure I/O;
// validation and authorization belong to the service layer.
package store

import (
	"context"

	"gymdesk/internal/member/models"
	"gymdesk/pkg/domain"
)

// Store is the member registry contract. The store assigns ids and
// timestamps; UpdatedAt strictly advances on every update.
type Store interface {
	Create(ctx context.Context, name, contact string) (*models.Member, error)
	Update(ctx context.Context, id domain.MemberID, name, contact string) (*models.Member, error)
	FindByID(ctx context.Context, id domain.MemberID) (*models.Member, error)
	List(ctx context.Context) ([]*models.Member, error)
	Exists(ctx context.Context, id domain.MemberID) (bool, error)
}
