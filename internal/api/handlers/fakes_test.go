package handlers_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/domain"
	"github.com/mentor3d/professor/internal/exec"
	"github.com/mentor3d/professor/internal/grading"
	"github.com/mentor3d/professor/internal/queue"
	"github.com/mentor3d/professor/internal/tutor"
)

// fakeTutor scripts the model-facing calls
type fakeTutor struct {
	outline    *tutor.CourseOutline
	outlineErr error

	answer    string
	answerErr error
	// lastContext records the context text given to Answer
	lastContext string

	feedback    string
	feedbackErr error
}

func (f *fakeTutor) GenerateCourse(ctx context.Context, tags []string) (*tutor.CourseOutline, error) {
	return f.outline, f.outlineErr
}

func (f *fakeTutor) Answer(ctx context.Context, question, contextText string) (string, error) {
	f.lastContext = contextText
	return f.answer, f.answerErr
}

func (f *fakeTutor) SelectLessonContext(ctx context.Context, question string, lessons []domain.Lesson) (string, bool) {
	// Deterministic stand-in for embedding selection: first lesson wins.
	if len(lessons) == 0 {
		return "", false
	}
	return lessons[0].Content, true
}

func (f *fakeTutor) CodeFeedback(ctx context.Context, code string, score int, result *exec.Result) (string, error) {
	return f.feedback, f.feedbackErr
}

// fakeGrader returns a scripted grading result
type fakeGrader struct {
	result *grading.Result
	err    error
}

func (f *fakeGrader) Grade(ctx context.Context, code string, languageID int, expectedOutput string) (*grading.Result, error) {
	return f.result, f.err
}

// dispatched records one effect dispatch
type dispatched struct {
	kind    queue.EffectKind
	userID  string
	payload any
}

// fakeDispatcher records effect dispatches
type fakeDispatcher struct {
	mu   sync.Mutex
	jobs []dispatched
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, kind queue.EffectKind, userID string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, dispatched{kind: kind, userID: userID, payload: payload})
}

func (f *fakeDispatcher) kinds() []queue.EffectKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]queue.EffectKind, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j.kind)
	}
	return out
}

// fakeStore is an in-memory store covering the handler-facing slices
type fakeStore struct {
	mu          sync.Mutex
	courses     map[uuid.UUID]*domain.Course
	assessments map[uuid.UUID]*domain.Assessment
	profiles    map[string]*domain.Profile
	submissions []domain.Submission
	progress    []domain.ProgressRecord

	createCourseErr error
	lessonsErr      error
	assessmentsErr  error
	listErr         error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courses:     make(map[uuid.UUID]*domain.Course),
		assessments: make(map[uuid.UUID]*domain.Assessment),
		profiles:    make(map[string]*domain.Profile),
	}
}

func (s *fakeStore) CreateCourse(ctx context.Context, c *domain.Course) error {
	if s.createCourseErr != nil {
		return s.createCourseErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.courses[c.ID] = &cp
	return nil
}

func (s *fakeStore) AddLessons(ctx context.Context, lessons []domain.Lesson) error {
	return s.lessonsErr
}

func (s *fakeStore) AddAssessments(ctx context.Context, assessments []domain.Assessment) error {
	if s.assessmentsErr != nil {
		return s.assessmentsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range assessments {
		a := assessments[i]
		s.assessments[a.ID] = &a
	}
	return nil
}

func (s *fakeStore) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return c, nil
}

func (s *fakeStore) ListCoursesByUser(ctx context.Context, userID string) ([]domain.Course, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Course
	for _, c := range s.courses {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeStore) GetAssessment(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assessments[id]
	if !ok {
		return nil, domain.ErrAssessmentNotFound
	}
	return a, nil
}

func (s *fakeStore) CreateEnrollment(ctx context.Context, e *domain.Enrollment) error {
	return nil
}

func (s *fakeStore) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, *sub)
	return nil
}

func (s *fakeStore) ListRecentSubmissions(ctx context.Context, userID string, limit int) ([]domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Submission(nil), s.submissions...), nil
}

func (s *fakeStore) UpsertProgress(ctx context.Context, p *domain.ProgressRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.progress {
		if s.progress[i].UserID == p.UserID && s.progress[i].LessonID == p.LessonID {
			s.progress[i] = *p
			return nil
		}
	}
	s.progress = append(s.progress, *p)
	return nil
}

func (s *fakeStore) ListProgressByUser(ctx context.Context, userID string) ([]domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ProgressRecord(nil), s.progress...), nil
}

func (s *fakeStore) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (s *fakeStore) CreateProfile(ctx context.Context, p *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.profiles[p.ID] = &cp
	return nil
}
