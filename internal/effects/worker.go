// Package effects applies fire-and-forget side effects produced by
// request handlers: enrollments, analytics sessions, chat history, and
// achievement awards. Effects normally travel through the RabbitMQ
// queue; when no broker is configured they are applied in-process.
package effects

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mentor3d/professor/internal/analytics"
	"github.com/mentor3d/professor/internal/domain"
	"github.com/mentor3d/professor/internal/queue"
)

// streakLookback bounds how many recent sessions feed the streak
// computation when checking the week-streak award.
const streakLookback = 60

// Store is the slice of storage the effects worker writes to.
type Store interface {
	CreateEnrollment(ctx context.Context, e *domain.Enrollment) error
	CreateSession(ctx context.Context, s *domain.LearningSession) error
	ListRecentSessions(ctx context.Context, userID string, limit int) ([]domain.LearningSession, error)
	CreateChat(ctx context.Context, c *domain.ChatRecord) error
	CreateAchievement(ctx context.Context, a *domain.Achievement) error
	HasAchievement(ctx context.Context, userID string, kind domain.AchievementKind) (bool, error)
}

// Worker applies side-effect jobs to storage.
type Worker struct {
	store Store
}

// NewWorker creates a worker over the given store.
func NewWorker(store Store) *Worker {
	return &Worker{store: store}
}

// Apply dispatches a job by kind. It satisfies queue.EffectHandler.
func (w *Worker) Apply(ctx context.Context, job *queue.EffectJob) error {
	switch job.Kind {
	case queue.EffectEnroll:
		return w.applyEnroll(ctx, job)
	case queue.EffectLogSession:
		return w.applyLogSession(ctx, job)
	case queue.EffectSaveChat:
		return w.applySaveChat(ctx, job)
	case queue.EffectAwardAchievements:
		return w.applyAwardAchievements(ctx, job)
	default:
		return fmt.Errorf("unknown effect kind: %s", job.Kind)
	}
}

func (w *Worker) applyEnroll(ctx context.Context, job *queue.EffectJob) error {
	var p queue.EnrollPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return fmt.Errorf("decode enroll payload: %w", err)
	}

	e := domain.NewEnrollment(job.UserID, p.CourseID)
	if err := w.store.CreateEnrollment(ctx, e); err != nil {
		return err
	}

	return w.award(ctx, job.UserID, domain.AchievementFirstCourse,
		"First Course", "Generated and enrolled in a first course", "🎓")
}

func (w *Worker) applyLogSession(ctx context.Context, job *queue.EffectJob) error {
	var p queue.SessionPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return fmt.Errorf("decode session payload: %w", err)
	}

	s := domain.NewLearningSession(job.UserID, p.CourseID, p.SessionType, p.Minutes, p.Score)
	if err := w.store.CreateSession(ctx, s); err != nil {
		return err
	}

	return w.checkWeekStreak(ctx, job.UserID)
}

func (w *Worker) applySaveChat(ctx context.Context, job *queue.EffectJob) error {
	var p queue.ChatPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return fmt.Errorf("decode chat payload: %w", err)
	}

	c := &domain.ChatRecord{
		ID:        job.ID,
		UserID:    job.UserID,
		CourseID:  p.CourseID,
		LessonID:  p.LessonID,
		Question:  p.Question,
		Answer:    p.Answer,
		CreatedAt: time.Now(),
	}
	return w.store.CreateChat(ctx, c)
}

func (w *Worker) applyAwardAchievements(ctx context.Context, job *queue.EffectJob) error {
	var p queue.AchievementPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return fmt.Errorf("decode achievement payload: %w", err)
	}

	if p.Score == 100 {
		return w.award(ctx, job.UserID, domain.AchievementPerfectScore,
			"Perfect Score", "Scored 100 on an assessment", "💯")
	}
	return nil
}

// checkWeekStreak awards the week-streak badge once the user has
// studied seven days in a row.
func (w *Worker) checkWeekStreak(ctx context.Context, userID string) error {
	has, err := w.store.HasAchievement(ctx, userID, domain.AchievementWeekStreak)
	if err != nil || has {
		return err
	}

	sessions, err := w.store.ListRecentSessions(ctx, userID, streakLookback)
	if err != nil {
		return err
	}
	if analytics.ComputeStreak(sessions, time.Now()) < 7 {
		return nil
	}

	return w.award(ctx, userID, domain.AchievementWeekStreak,
		"Week Streak", "Studied seven days in a row", "🔥")
}

// award grants an achievement kind at most once per user.
func (w *Worker) award(ctx context.Context, userID string, kind domain.AchievementKind, title, description, badge string) error {
	has, err := w.store.HasAchievement(ctx, userID, kind)
	if err != nil || has {
		return err
	}
	return w.store.CreateAchievement(ctx, domain.NewAchievement(userID, kind, title, description, badge))
}
