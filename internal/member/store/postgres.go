package store

import (
	"context"
	"database/sql"
	"fmt"

	"gymdesk/internal/member/models"
	"gymdesk/pkg/domain"
	"gymdesk/pkg/platform/sentinel"
)

// PostgresStore persists members in PostgreSQL. Pure I/O; the database
// assigns ids and timestamps.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const memberColumns = `id, name, contact, status, plan_id, membership_start, membership_end, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, name, contact string) (*models.Member, error) {
	query := `
		INSERT INTO members (name, contact, status)
		VALUES ($1, $2, 'active')
		RETURNING ` + memberColumns
	m, err := scanMember(s.db.QueryRowContext(ctx, query, name, contact))
	if err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) Update(ctx context.Context, id domain.MemberID, name, contact string) (*models.Member, error) {
	// GREATEST keeps updated_at strictly advancing even if the database
	// clock stalls within one timestamp tick.
	query := `
		UPDATE members
		SET name = $2, contact = $3,
		    updated_at = GREATEST(now(), updated_at + interval '1 microsecond')
		WHERE id = $1
		RETURNING ` + memberColumns
	m, err := scanMember(s.db.QueryRowContext(ctx, query, int64(id), name, contact))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("update member: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.MemberID) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	m, err := scanMember(s.db.QueryRowContext(ctx, query, int64(id)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var out []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("list members: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Exists(ctx context.Context, id domain.MemberID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM members WHERE id = $1)`, int64(id),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("member exists: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	var m models.Member
	var id int64
	err := row.Scan(
		&id,
		&m.Name,
		&m.Contact,
		&m.Status,
		&m.PlanID,
		&m.MembershipStart,
		&m.MembershipEnd,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.ID = domain.MemberID(id)
	return &m, nil
}
