package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mentor3d/professor/internal/domain"
)

// GetProfile retrieves a profile by its external auth ID.
func (s *Store) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, role, created_at, updated_at
		FROM profiles WHERE id = ?`, id)

	var p domain.Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}

// CreateProfile persists a profile (insert or update).
func (s *Store) CreateProfile(ctx context.Context, p *domain.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, email, full_name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email=excluded.email,
			full_name=excluded.full_name,
			role=excluded.role,
			updated_at=excluded.updated_at`,
		p.ID, p.Email, p.FullName, p.Role, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
