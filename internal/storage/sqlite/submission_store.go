package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/domain"
)

// CreateSubmission persists a graded submission.
func (s *Store) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	var execResult sql.NullString
	if sub.ExecutionResult != nil {
		execResult = sql.NullString{String: string(sub.ExecutionResult), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (id, user_id, course_id, assessment_id, code, language,
			score, feedback, ai_feedback, execution_result, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID.String(), sub.UserID, sub.CourseID.String(), sub.AssessmentID.String(),
		sub.Code, sub.Language, sub.Score, sub.Feedback, sub.AIFeedback,
		execResult, sub.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// ListRecentSubmissions returns submissions newest first with the
// course title joined in.
func (s *Store) ListRecentSubmissions(ctx context.Context, userID string, limit int) ([]domain.Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.user_id, s.course_id, s.assessment_id, s.code, s.language,
			s.score, s.feedback, s.ai_feedback, s.execution_result, s.submitted_at,
			COALESCE(c.title, '')
		FROM submissions s
		LEFT JOIN courses c ON c.id = s.course_id
		WHERE s.user_id = ?
		ORDER BY s.submitted_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		var sub domain.Submission
		var id, cid, aid string
		var execResult sql.NullString
		err := rows.Scan(&id, &sub.UserID, &cid, &aid, &sub.Code, &sub.Language,
			&sub.Score, &sub.Feedback, &sub.AIFeedback, &execResult, &sub.SubmittedAt,
			&sub.CourseTitle)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if sub.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse submission id: %w", err)
		}
		if sub.CourseID, err = uuid.Parse(cid); err != nil {
			return nil, fmt.Errorf("parse submission course id: %w", err)
		}
		if sub.AssessmentID, err = uuid.Parse(aid); err != nil {
			return nil, fmt.Errorf("parse submission assessment id: %w", err)
		}
		if execResult.Valid {
			sub.ExecutionResult = []byte(execResult.String)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
