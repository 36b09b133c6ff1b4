package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProgressRecord tracks a user's progress through a single lesson.
// At most one record exists per (user, lesson) pair; writes are
// last-write-wins upserts.
type ProgressRecord struct {
	ID                 uuid.UUID
	UserID             string
	LessonID           uuid.UUID
	CourseID           uuid.UUID
	Status             ProgressStatus
	ProgressPercentage int // 0-100
	UpdatedAt          time.Time
}

// ProgressStatus represents how far a lesson has been worked
type ProgressStatus string

const (
	ProgressStatusInProgress ProgressStatus = "in_progress"
	ProgressStatusCompleted  ProgressStatus = "completed"
)

// NewProgressRecord creates a progress record with the percentage
// clamped to the 0-100 range.
func NewProgressRecord(userID string, lessonID, courseID uuid.UUID, status ProgressStatus, pct int) *ProgressRecord {
	return &ProgressRecord{
		ID:                 uuid.New(),
		UserID:             userID,
		LessonID:           lessonID,
		CourseID:           courseID,
		Status:             status,
		ProgressPercentage: ClampPercentage(pct),
		UpdatedAt:          time.Now(),
	}
}

// ClampPercentage bounds a percentage to 0-100
func ClampPercentage(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// IsCompleted reports whether the lesson is finished
func (p *ProgressRecord) IsCompleted() bool {
	return p.Status == ProgressStatusCompleted
}
