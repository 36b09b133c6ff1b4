package postgres

import (
	"context"
	"fmt"

	"github.com/mentor3d/professor/internal/domain"
)

// CreateSession persists a learning session row.
func (s *Store) CreateSession(ctx context.Context, sess *domain.LearningSession) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO learning_sessions (id, user_id, course_id, session_type, total_time_minutes, average_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sess.ID, sess.UserID, sess.CourseID, sess.SessionType,
		sess.TotalTimeMinutes, sess.AverageScore, sess.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// ListRecentSessions returns sessions newest first.
func (s *Store) ListRecentSessions(ctx context.Context, userID string, limit int) ([]domain.LearningSession, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, course_id, session_type, total_time_minutes, average_score, created_at
		FROM learning_sessions WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.LearningSession
	for rows.Next() {
		var sess domain.LearningSession
		err := rows.Scan(&sess.ID, &sess.UserID, &sess.CourseID, &sess.SessionType,
			&sess.TotalTimeMinutes, &sess.AverageScore, &sess.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// CreateAchievement persists an achievement. Awarding the same kind
// twice is a no-op so awarding rules stay idempotent.
func (s *Store) CreateAchievement(ctx context.Context, a *domain.Achievement) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO achievements (id, user_id, kind, title, description, badge, earned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, kind) DO NOTHING`,
		a.ID, a.UserID, string(a.Kind), a.Title, a.Description, a.Badge, a.EarnedAt,
	)
	if err != nil {
		return fmt.Errorf("insert achievement: %w", err)
	}
	return nil
}

// HasAchievement reports whether the user already earned the kind.
func (s *Store) HasAchievement(ctx context.Context, userID string, kind domain.AchievementKind) (bool, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM achievements WHERE user_id = $1 AND kind = $2",
		userID, string(kind)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count achievements: %w", err)
	}
	return count > 0, nil
}

// ListRecentAchievements returns achievements newest first.
func (s *Store) ListRecentAchievements(ctx context.Context, userID string, limit int) ([]domain.Achievement, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, kind, title, description, badge, earned_at
		FROM achievements WHERE user_id = $1
		ORDER BY earned_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		var kind string
		err := rows.Scan(&a.ID, &a.UserID, &kind, &a.Title, &a.Description, &a.Badge, &a.EarnedAt)
		if err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		a.Kind = domain.AchievementKind(kind)
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}
