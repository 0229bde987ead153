package store

import (
	"context"
	"database/sql"
	"fmt"

	"gymdesk/internal/attendance/models"
	"gymdesk/pkg/domain"
)

// PostgresStore persists check-ins in PostgreSQL. The database assigns
// ids and timestamps; the members foreign key backstops referential
// integrity behind the service's own existence check.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, memberID domain.MemberID) (*models.CheckIn, error) {
	query := `
		INSERT INTO check_ins (member_id)
		VALUES ($1)
		RETURNING id, member_id, ts
	`
	c, err := scanCheckIn(s.db.QueryRowContext(ctx, query, int64(memberID)))
	if err != nil {
		return nil, fmt.Errorf("append check-in: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) ListByMember(ctx context.Context, memberID domain.MemberID) ([]*models.CheckIn, error) {
	query := `SELECT id, member_id, ts FROM check_ins WHERE member_id = $1`
	rows, err := s.db.QueryContext(ctx, query, int64(memberID))
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	defer rows.Close()

	var out []*models.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("list check-ins: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheckIn(row rowScanner) (*models.CheckIn, error) {
	var c models.CheckIn
	var id, memberID int64
	if err := row.Scan(&id, &memberID, &c.Timestamp); err != nil {
		return nil, err
	}
	c.ID = domain.CheckInID(id)
	c.MemberID = domain.MemberID(memberID)
	return &c, nil
}
