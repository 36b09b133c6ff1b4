package domain

import (
	"time"

	"github.com/google/uuid"
)

// LearningSession is an analytics row recording one study session.
// Sessions are immutable once created; the aggregator only reads them.
type LearningSession struct {
	ID               uuid.UUID
	UserID           string
	CourseID         uuid.UUID
	SessionType      string // course_generation, chat, assessment
	TotalTimeMinutes int    // non-negative
	AverageScore     int    // 0-100
	CreatedAt        time.Time
}

// NewLearningSession creates a session row, clamping the score to 0-100
// and flooring negative durations to zero.
func NewLearningSession(userID string, courseID uuid.UUID, sessionType string, minutes, score int) *LearningSession {
	if minutes < 0 {
		minutes = 0
	}
	return &LearningSession{
		ID:               uuid.New(),
		UserID:           userID,
		CourseID:         courseID,
		SessionType:      sessionType,
		TotalTimeMinutes: minutes,
		AverageScore:     ClampPercentage(score),
		CreatedAt:        time.Now(),
	}
}
