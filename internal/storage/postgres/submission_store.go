package postgres

import (
	"context"
	"fmt"

	"github.com/mentor3d/professor/internal/domain"
)

// CreateSubmission persists a graded submission.
func (s *Store) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO submissions (id, user_id, course_id, assessment_id, code, language,
			score, feedback, ai_feedback, execution_result, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		sub.ID, sub.UserID, sub.CourseID, sub.AssessmentID, sub.Code, sub.Language,
		sub.Score, sub.Feedback, sub.AIFeedback, sub.ExecutionResult, sub.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// ListRecentSubmissions returns submissions newest first with the
// course title joined in.
func (s *Store) ListRecentSubmissions(ctx context.Context, userID string, limit int) ([]domain.Submission, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT s.id, s.user_id, s.course_id, s.assessment_id, s.code, s.language,
			s.score, s.feedback, s.ai_feedback, s.execution_result, s.submitted_at,
			COALESCE(c.title, '')
		FROM submissions s
		LEFT JOIN courses c ON c.id = s.course_id
		WHERE s.user_id = $1
		ORDER BY s.submitted_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		var sub domain.Submission
		err := rows.Scan(&sub.ID, &sub.UserID, &sub.CourseID, &sub.AssessmentID,
			&sub.Code, &sub.Language, &sub.Score, &sub.Feedback, &sub.AIFeedback,
			&sub.ExecutionResult, &sub.SubmittedAt, &sub.CourseTitle)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
