package store

import (
	"context"
	"database/sql"
	"fmt"

	"gymdesk/internal/payment/models"
	"gymdesk/pkg/domain"
)

// PostgresStore persists payments in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, memberID domain.MemberID, amount float64, method, notes string) (*models.Payment, error) {
	query := `
		INSERT INTO payments (member_id, amount, method, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, member_id, amount, method, notes, paid_at
	`
	p, err := scanPayment(s.db.QueryRowContext(ctx, query, int64(memberID), amount, method, notes))
	if err != nil {
		return nil, fmt.Errorf("append payment: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) ListByMember(ctx context.Context, memberID domain.MemberID) ([]*models.Payment, error) {
	query := `SELECT id, member_id, amount, method, notes, paid_at FROM payments WHERE member_id = $1`
	rows, err := s.db.QueryContext(ctx, query, int64(memberID))
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("list payments: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var p models.Payment
	var id, memberID int64
	if err := row.Scan(&id, &memberID, &p.Amount, &p.Method, &p.Notes, &p.Date); err != nil {
		return nil, err
	}
	p.ID = domain.PaymentID(id)
	p.MemberID = domain.MemberID(memberID)
	return &p, nil
}
