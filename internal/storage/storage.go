// Package storage defines the store interfaces over the relational
// database. Two backends implement them: postgres for the hosted
// deployment and sqlite for local development and demo mode.
package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/domain"
)

// ProfileStore persists user profiles
type ProfileStore interface {
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	CreateProfile(ctx context.Context, p *domain.Profile) error
}

// CourseStore persists courses with their lessons, assessments, and
// enrollments.
type CourseStore interface {
	// CreateCourse inserts the course row only. The caller inserts
	// lessons and assessments afterwards so their failures can be
	// tolerated independently of the fatal course insert.
	CreateCourse(ctx context.Context, c *domain.Course) error
	AddLessons(ctx context.Context, lessons []domain.Lesson) error
	AddAssessments(ctx context.Context, assessments []domain.Assessment) error

	// GetCourse loads a course with lessons and assessments
	GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	// ListCoursesByUser returns the user's courses newest first, with
	// lessons loaded.
	ListCoursesByUser(ctx context.Context, userID string) ([]domain.Course, error)
	GetAssessment(ctx context.Context, id uuid.UUID) (*domain.Assessment, error)

	CreateEnrollment(ctx context.Context, e *domain.Enrollment) error
}

// SubmissionStore persists graded submissions
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, s *domain.Submission) error
	// ListRecentSubmissions returns submissions newest first with the
	// course title joined in.
	ListRecentSubmissions(ctx context.Context, userID string, limit int) ([]domain.Submission, error)
}

// ProgressStore persists per-lesson progress records
type ProgressStore interface {
	// UpsertProgress inserts or replaces the record for the
	// (user, lesson) pair; last write wins.
	UpsertProgress(ctx context.Context, p *domain.ProgressRecord) error
	ListProgressByUser(ctx context.Context, userID string) ([]domain.ProgressRecord, error)
}

// ChatStore persists tutoring interactions
type ChatStore interface {
	CreateChat(ctx context.Context, c *domain.ChatRecord) error
	ListRecentChats(ctx context.Context, userID string, limit int) ([]domain.ChatRecord, error)
}

// AnalyticsStore persists learning sessions and achievements
type AnalyticsStore interface {
	CreateSession(ctx context.Context, s *domain.LearningSession) error
	// ListRecentSessions returns sessions newest first
	ListRecentSessions(ctx context.Context, userID string, limit int) ([]domain.LearningSession, error)

	CreateAchievement(ctx context.Context, a *domain.Achievement) error
	HasAchievement(ctx context.Context, userID string, kind domain.AchievementKind) (bool, error)
	ListRecentAchievements(ctx context.Context, userID string, limit int) ([]domain.Achievement, error)
}

// Store bundles every store plus connection lifecycle
type Store interface {
	ProfileStore
	CourseStore
	SubmissionStore
	ProgressStore
	ChatStore
	AnalyticsStore

	Ping(ctx context.Context) error
	Close() error
}
