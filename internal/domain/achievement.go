package domain

import (
	"time"

	"github.com/google/uuid"
)

// Achievement is a badge earned by a user
type Achievement struct {
	ID          uuid.UUID
	UserID      string
	Kind        AchievementKind
	Title       string
	Description string
	Badge       string // emoji or badge URL
	EarnedAt    time.Time
}

// AchievementKind identifies an awarding rule. A user earns each kind
// at most once.
type AchievementKind string

const (
	AchievementFirstCourse  AchievementKind = "first_course"
	AchievementPerfectScore AchievementKind = "perfect_score"
	AchievementWeekStreak   AchievementKind = "week_streak"
)

// NewAchievement creates an achievement earned now
func NewAchievement(userID string, kind AchievementKind, title, description, badge string) *Achievement {
	return &Achievement{
		ID:          uuid.New(),
		UserID:      userID,
		Kind:        kind,
		Title:       title,
		Description: description,
		Badge:       badge,
		EarnedAt:    time.Now(),
	}
}
