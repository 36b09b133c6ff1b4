package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/domain"
)

// UpsertProgress inserts or replaces the record for the (user, lesson)
// pair. Last write wins.
func (s *Store) UpsertProgress(ctx context.Context, p *domain.ProgressRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_progress (id, user_id, lesson_id, course_id, status, progress_percentage, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, lesson_id) DO UPDATE SET
			course_id=excluded.course_id,
			status=excluded.status,
			progress_percentage=excluded.progress_percentage,
			updated_at=excluded.updated_at`,
		p.ID.String(), p.UserID, p.LessonID.String(), p.CourseID.String(),
		string(p.Status), p.ProgressPercentage, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

// ListProgressByUser returns all progress records for a user.
func (s *Store) ListProgressByUser(ctx context.Context, userID string) ([]domain.ProgressRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, lesson_id, course_id, status, progress_percentage, updated_at
		FROM user_progress WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var records []domain.ProgressRecord
	for rows.Next() {
		var p domain.ProgressRecord
		var id, lid, cid, status string
		if err := rows.Scan(&id, &p.UserID, &lid, &cid, &status, &p.ProgressPercentage, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse progress id: %w", err)
		}
		if p.LessonID, err = uuid.Parse(lid); err != nil {
			return nil, fmt.Errorf("parse progress lesson id: %w", err)
		}
		if p.CourseID, err = uuid.Parse(cid); err != nil {
			return nil, fmt.Errorf("parse progress course id: %w", err)
		}
		p.Status = domain.ProgressStatus(status)
		records = append(records, p)
	}
	return records, rows.Err()
}
