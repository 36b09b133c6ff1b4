// Package dashboard assembles the per-user dashboard by fanning out to
// the store and aggregating the rows with the analytics package.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mentor3d/professor/internal/analytics"
	"github.com/mentor3d/professor/internal/domain"
)

const (
	recentSubmissions  = 10
	recentSessions     = 30
	recentChats        = 5
	recentAchievements = 3
)

// Reader is the slice of storage the dashboard reads from.
type Reader interface {
	ListCoursesByUser(ctx context.Context, userID string) ([]domain.Course, error)
	ListProgressByUser(ctx context.Context, userID string) ([]domain.ProgressRecord, error)
	ListRecentSubmissions(ctx context.Context, userID string, limit int) ([]domain.Submission, error)
	ListRecentSessions(ctx context.Context, userID string, limit int) ([]domain.LearningSession, error)
	ListRecentChats(ctx context.Context, userID string, limit int) ([]domain.ChatRecord, error)
	ListRecentAchievements(ctx context.Context, userID string, limit int) ([]domain.Achievement, error)
}

// Dashboard is the aggregated view returned to the client.
type Dashboard struct {
	Analytics    analytics.Overview        `json:"analytics"`
	Progress     analytics.ProgressSummary `json:"progress"`
	Courses      analytics.CourseOverview  `json:"courses"`
	RecentChats  []domain.ChatRecord       `json:"recent_chats"`
	Achievements []domain.Achievement      `json:"achievements"`
}

// Service loads dashboards.
type Service struct {
	store Reader
	// now is swappable for deterministic streak tests
	now func() time.Time
}

// NewService creates a dashboard service.
func NewService(store Reader) *Service {
	return &Service{store: store, now: time.Now}
}

// Load fetches all six dashboard inputs concurrently and aggregates
// them. A failed branch degrades to empty rows instead of failing the
// whole dashboard; the error is logged and the affected figures read
// as zero.
func (s *Service) Load(ctx context.Context, userID string) *Dashboard {
	var (
		courses      []domain.Course
		progress     []domain.ProgressRecord
		submissions  []domain.Submission
		sessions     []domain.LearningSession
		chats        []domain.ChatRecord
		achievements []domain.Achievement
	)

	var wg sync.WaitGroup
	wg.Add(6)

	go func() {
		defer wg.Done()
		var err error
		if courses, err = s.store.ListCoursesByUser(ctx, userID); err != nil {
			slog.Warn("dashboard: courses unavailable", "user_id", userID, "error", err)
			courses = nil
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if progress, err = s.store.ListProgressByUser(ctx, userID); err != nil {
			slog.Warn("dashboard: progress unavailable", "user_id", userID, "error", err)
			progress = nil
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if submissions, err = s.store.ListRecentSubmissions(ctx, userID, recentSubmissions); err != nil {
			slog.Warn("dashboard: submissions unavailable", "user_id", userID, "error", err)
			submissions = nil
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if sessions, err = s.store.ListRecentSessions(ctx, userID, recentSessions); err != nil {
			slog.Warn("dashboard: sessions unavailable", "user_id", userID, "error", err)
			sessions = nil
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if chats, err = s.store.ListRecentChats(ctx, userID, recentChats); err != nil {
			slog.Warn("dashboard: chats unavailable", "user_id", userID, "error", err)
			chats = nil
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if achievements, err = s.store.ListRecentAchievements(ctx, userID, recentAchievements); err != nil {
			slog.Warn("dashboard: achievements unavailable", "user_id", userID, "error", err)
			achievements = nil
		}
	}()

	wg.Wait()

	if chats == nil {
		chats = []domain.ChatRecord{}
	}
	if achievements == nil {
		achievements = []domain.Achievement{}
	}

	return &Dashboard{
		Analytics:    analytics.Summarize(sessions, s.now()),
		Progress:     analytics.SummarizeProgress(progress),
		Courses:      analytics.SummarizeCourses(courses, submissions),
		RecentChats:  chats,
		Achievements: achievements,
	}
}
