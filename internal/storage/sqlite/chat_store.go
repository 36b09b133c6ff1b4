package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/domain"
)

// CreateChat persists a tutoring interaction.
func (s *Store) CreateChat(ctx context.Context, c *domain.ChatRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_history (id, user_id, course_id, lesson_id, question, answer, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID.String(), c.UserID, nullUUID(c.CourseID), nullUUID(c.LessonID),
		c.Question, c.Answer, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat: %w", err)
	}
	return nil
}

// ListRecentChats returns interactions newest first with the course
// title joined in when the chat was course-scoped.
func (s *Store) ListRecentChats(ctx context.Context, userID string, limit int) ([]domain.ChatRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.id, h.user_id, h.course_id, h.lesson_id, h.question, h.answer, h.created_at,
			COALESCE(c.title, '')
		FROM chat_history h
		LEFT JOIN courses c ON c.id = h.course_id
		WHERE h.user_id = ?
		ORDER BY h.created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var chats []domain.ChatRecord
	for rows.Next() {
		var c domain.ChatRecord
		var id string
		var courseID, lessonID sql.NullString
		err := rows.Scan(&id, &c.UserID, &courseID, &lessonID, &c.Question, &c.Answer, &c.CreatedAt, &c.CourseTitle)
		if err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse chat id: %w", err)
		}
		if c.CourseID, err = scanUUID(courseID); err != nil {
			return nil, fmt.Errorf("parse chat course id: %w", err)
		}
		if c.LessonID, err = scanUUID(lessonID); err != nil {
			return nil, fmt.Errorf("parse chat lesson id: %w", err)
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}
