package postgres

import (
	"context"
	"fmt"

	"github.com/mentor3d/professor/internal/domain"
)

// CreateChat persists a tutoring interaction.
func (s *Store) CreateChat(ctx context.Context, c *domain.ChatRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chat_history (id, user_id, course_id, lesson_id, question, answer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.UserID, c.CourseID, c.LessonID, c.Question, c.Answer, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat: %w", err)
	}
	return nil
}

// ListRecentChats returns interactions newest first with the course
// title joined in when the chat was course-scoped.
func (s *Store) ListRecentChats(ctx context.Context, userID string, limit int) ([]domain.ChatRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT h.id, h.user_id, h.course_id, h.lesson_id, h.question, h.answer, h.created_at,
			COALESCE(c.title, '')
		FROM chat_history h
		LEFT JOIN courses c ON c.id = h.course_id
		WHERE h.user_id = $1
		ORDER BY h.created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var chats []domain.ChatRecord
	for rows.Next() {
		var c domain.ChatRecord
		err := rows.Scan(&c.ID, &c.UserID, &c.CourseID, &c.LessonID, &c.Question, &c.Answer, &c.CreatedAt, &c.CourseTitle)
		if err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}
