package postgres

import (
	"context"
	"fmt"

	"github.com/mentor3d/professor/internal/domain"
)

// UpsertProgress inserts or replaces the record for the (user, lesson)
// pair. Last write wins.
func (s *Store) UpsertProgress(ctx context.Context, p *domain.ProgressRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_progress (id, user_id, lesson_id, course_id, status, progress_percentage, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, lesson_id) DO UPDATE SET
			course_id = EXCLUDED.course_id,
			status = EXCLUDED.status,
			progress_percentage = EXCLUDED.progress_percentage,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.UserID, p.LessonID, p.CourseID, string(p.Status), p.ProgressPercentage, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

// ListProgressByUser returns all progress records for a user.
func (s *Store) ListProgressByUser(ctx context.Context, userID string) ([]domain.ProgressRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, lesson_id, course_id, status, progress_percentage, updated_at
		FROM user_progress WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var records []domain.ProgressRecord
	for rows.Next() {
		var p domain.ProgressRecord
		var status string
		err := rows.Scan(&p.ID, &p.UserID, &p.LessonID, &p.CourseID, &status, &p.ProgressPercentage, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		p.Status = domain.ProgressStatus(status)
		records = append(records, p)
	}
	return records, rows.Err()
}
