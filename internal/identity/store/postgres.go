package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"gymdesk/internal/identity/models"
	"gymdesk/pkg/domain"
	"gymdesk/pkg/platform/sentinel"
)

// PostgresStore persists identity records in PostgreSQL. The UNIQUE
// constraint on identity_links.member_id enforces the member-side link
// invariant at the database level.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const pgUniqueViolation = "23505"

func (s *PostgresStore) SaveProfile(ctx context.Context, principal domain.Principal, profile *models.Profile) error {
	query := `
		INSERT INTO user_profiles (principal, name)
		VALUES ($1, $2)
		ON CONFLICT (principal) DO UPDATE SET name = EXCLUDED.name
	`
	if _, err := s.db.ExecContext(ctx, query, principal.String(), profile.Name); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindProfile(ctx context.Context, principal domain.Principal) (*models.Profile, error) {
	query := `SELECT name FROM user_profiles WHERE principal = $1`
	var p models.Profile
	err := s.db.QueryRowContext(ctx, query, principal.String()).Scan(&p.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) AssignRole(ctx context.Context, principal domain.Principal, role domain.Role) error {
	query := `
		INSERT INTO role_assignments (principal, role)
		VALUES ($1, $2)
		ON CONFLICT (principal) DO UPDATE SET role = EXCLUDED.role
	`
	if _, err := s.db.ExecContext(ctx, query, principal.String(), role.String()); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindRole(ctx context.Context, principal domain.Principal) (domain.Role, error) {
	query := `SELECT role FROM role_assignments WHERE principal = $1`
	var role string
	err := s.db.QueryRowContext(ctx, query, principal.String()).Scan(&role)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("find role: %w", err)
	}
	return domain.Role(role), nil
}

func (s *PostgresStore) LinkMember(ctx context.Context, principal domain.Principal, memberID domain.MemberID) error {
	query := `
		INSERT INTO identity_links (principal, member_id)
		VALUES ($1, $2)
		ON CONFLICT (principal) DO UPDATE SET member_id = EXCLUDED.member_id
	`
	if _, err := s.db.ExecContext(ctx, query, principal.String(), int64(memberID)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("link member: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindLink(ctx context.Context, principal domain.Principal) (domain.MemberID, error) {
	query := `SELECT member_id FROM identity_links WHERE principal = $1`
	var memberID int64
	err := s.db.QueryRowContext(ctx, query, principal.String()).Scan(&memberID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, sentinel.ErrNotFound
		}
		return 0, fmt.Errorf("find link: %w", err)
	}
	return domain.MemberID(memberID), nil
}
