package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mentor3d/professor/internal/domain"
)

// GetProfile retrieves a profile by its external auth ID.
func (s *Store) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, full_name, role, created_at, updated_at
		FROM profiles WHERE id = $1`, id)

	var p domain.Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}

// CreateProfile persists a profile (insert or update).
func (s *Store) CreateProfile(ctx context.Context, p *domain.Profile) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO profiles (id, email, full_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			role = EXCLUDED.role,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.Email, p.FullName, p.Role, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
