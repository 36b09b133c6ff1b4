package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatRecord is one saved tutoring interaction
type ChatRecord struct {
	ID       uuid.UUID
	UserID   string
	CourseID *uuid.UUID // nil for general questions
	LessonID *uuid.UUID
	Question string
	Answer   string
	// CourseTitle is populated on reads that join the courses table
	CourseTitle string
	CreatedAt   time.Time
}
