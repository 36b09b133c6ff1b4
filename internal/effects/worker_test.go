package effects

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/domain"
	"github.com/mentor3d/professor/internal/queue"
)

// fakeStore records writes in memory for worker tests.
type fakeStore struct {
	enrollments  []*domain.Enrollment
	sessions     []*domain.LearningSession
	chats        []*domain.ChatRecord
	achievements []*domain.Achievement

	listSessions []domain.LearningSession
	failCreate   error
}

func (f *fakeStore) CreateEnrollment(ctx context.Context, e *domain.Enrollment) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.enrollments = append(f.enrollments, e)
	return nil
}

func (f *fakeStore) CreateSession(ctx context.Context, s *domain.LearningSession) error {
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *fakeStore) ListRecentSessions(ctx context.Context, userID string, limit int) ([]domain.LearningSession, error) {
	return f.listSessions, nil
}

func (f *fakeStore) CreateChat(ctx context.Context, c *domain.ChatRecord) error {
	f.chats = append(f.chats, c)
	return nil
}

func (f *fakeStore) CreateAchievement(ctx context.Context, a *domain.Achievement) error {
	f.achievements = append(f.achievements, a)
	return nil
}

func (f *fakeStore) HasAchievement(ctx context.Context, userID string, kind domain.AchievementKind) (bool, error) {
	for _, a := range f.achievements {
		if a.UserID == userID && a.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}

func mustJob(t *testing.T, kind queue.EffectKind, userID string, payload any) *queue.EffectJob {
	t.Helper()
	job, err := queue.NewEffectJob(kind, userID, payload)
	if err != nil {
		t.Fatalf("NewEffectJob() error = %v", err)
	}
	return job
}

func TestWorker_Enroll(t *testing.T) {
	store := &fakeStore{}
	w := NewWorker(store)
	courseID := uuid.New()

	job := mustJob(t, queue.EffectEnroll, "user-1", queue.EnrollPayload{CourseID: courseID})
	if err := w.Apply(context.Background(), job); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if len(store.enrollments) != 1 {
		t.Fatalf("enrollments = %d; want 1", len(store.enrollments))
	}
	if store.enrollments[0].CourseID != courseID {
		t.Errorf("CourseID = %v; want %v", store.enrollments[0].CourseID, courseID)
	}

	// Enrollment triggers the first-course award
	if len(store.achievements) != 1 || store.achievements[0].Kind != domain.AchievementFirstCourse {
		t.Errorf("achievements = %v; want one first_course", store.achievements)
	}
}

func TestWorker_Enroll_AwardsOnce(t *testing.T) {
	store := &fakeStore{}
	w := NewWorker(store)

	for i := 0; i < 3; i++ {
		job := mustJob(t, queue.EffectEnroll, "user-1", queue.EnrollPayload{CourseID: uuid.New()})
		if err := w.Apply(context.Background(), job); err != nil {
			t.Fatalf("Apply(%d) error = %v", i, err)
		}
	}

	if len(store.achievements) != 1 {
		t.Errorf("achievements = %d; want 1 despite repeated enrollments", len(store.achievements))
	}
}

func TestWorker_LogSession(t *testing.T) {
	store := &fakeStore{}
	w := NewWorker(store)
	courseID := uuid.New()

	job := mustJob(t, queue.EffectLogSession, "user-1", queue.SessionPayload{
		CourseID:    courseID,
		SessionType: "assessment",
		Minutes:     25,
		Score:       85,
	})
	if err := w.Apply(context.Background(), job); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if len(store.sessions) != 1 {
		t.Fatalf("sessions = %d; want 1", len(store.sessions))
	}
	s := store.sessions[0]
	if s.SessionType != "assessment" || s.TotalTimeMinutes != 25 || s.AverageScore != 85 {
		t.Errorf("session = %+v; fields not preserved", s)
	}
	if len(store.achievements) != 0 {
		t.Errorf("achievements = %d; want 0 without a streak", len(store.achievements))
	}
}

func TestWorker_LogSession_WeekStreakAward(t *testing.T) {
	store := &fakeStore{}
	now := time.Now()
	for i := 0; i < 7; i++ {
		store.listSessions = append(store.listSessions, domain.LearningSession{
			ID:        uuid.New(),
			UserID:    "user-1",
			CreatedAt: now.AddDate(0, 0, -i),
		})
	}
	w := NewWorker(store)

	job := mustJob(t, queue.EffectLogSession, "user-1", queue.SessionPayload{CourseID: uuid.New()})
	if err := w.Apply(context.Background(), job); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if len(store.achievements) != 1 || store.achievements[0].Kind != domain.AchievementWeekStreak {
		t.Errorf("achievements = %v; want one week_streak", store.achievements)
	}
}

func TestWorker_SaveChat(t *testing.T) {
	store := &fakeStore{}
	w := NewWorker(store)
	courseID := uuid.New()

	job := mustJob(t, queue.EffectSaveChat, "user-1", queue.ChatPayload{
		CourseID: &courseID,
		Question: "What is a pointer?",
		Answer:   "An address of a value.",
	})
	if err := w.Apply(context.Background(), job); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if len(store.chats) != 1 {
		t.Fatalf("chats = %d; want 1", len(store.chats))
	}
	c := store.chats[0]
	if c.Question != "What is a pointer?" || c.Answer != "An address of a value." {
		t.Errorf("chat = %+v; fields not preserved", c)
	}
	if c.CourseID == nil || *c.CourseID != courseID {
		t.Errorf("CourseID = %v; want %v", c.CourseID, courseID)
	}
	if c.LessonID != nil {
		t.Errorf("LessonID = %v; want nil", c.LessonID)
	}
}

func TestWorker_AwardAchievements_PerfectScore(t *testing.T) {
	store := &fakeStore{}
	w := NewWorker(store)

	job := mustJob(t, queue.EffectAwardAchievements, "user-1", queue.AchievementPayload{
		CourseID: uuid.New(),
		Score:    100,
	})
	if err := w.Apply(context.Background(), job); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if len(store.achievements) != 1 || store.achievements[0].Kind != domain.AchievementPerfectScore {
		t.Errorf("achievements = %v; want one perfect_score", store.achievements)
	}
}

func TestWorker_AwardAchievements_BelowPerfect(t *testing.T) {
	store := &fakeStore{}
	w := NewWorker(store)

	job := mustJob(t, queue.EffectAwardAchievements, "user-1", queue.AchievementPayload{
		CourseID: uuid.New(),
		Score:    80,
	})
	if err := w.Apply(context.Background(), job); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if len(store.achievements) != 0 {
		t.Errorf("achievements = %d; want 0 for score 80", len(store.achievements))
	}
}

func TestWorker_UnknownKind(t *testing.T) {
	w := NewWorker(&fakeStore{})

	job := &queue.EffectJob{ID: uuid.New(), Kind: "bogus", UserID: "user-1", Payload: []byte("{}")}
	if err := w.Apply(context.Background(), job); err == nil {
		t.Error("Apply() error = nil; want error for unknown kind")
	}
}

func TestWorker_MalformedPayload(t *testing.T) {
	w := NewWorker(&fakeStore{})

	job := &queue.EffectJob{ID: uuid.New(), Kind: queue.EffectEnroll, UserID: "user-1", Payload: []byte("not json")}
	if err := w.Apply(context.Background(), job); err == nil {
		t.Error("Apply() error = nil; want decode error")
	}
}
