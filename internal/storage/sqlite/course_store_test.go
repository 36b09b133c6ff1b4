package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/domain"
)

func TestCourseRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	course := domain.NewCourse("user-1", "Intro to Go", "Learn the basics", "6 hours", []string{"Go", " backend "})
	if err := store.CreateCourse(ctx, course); err != nil {
		t.Fatalf("CreateCourse() error = %v", err)
	}

	lessons := []domain.Lesson{
		{ID: uuid.New(), CourseID: course.ID, Position: 2, Title: "Slices", Objectives: []string{"use slices"}, CreatedAt: time.Now()},
		{ID: uuid.New(), CourseID: course.ID, Position: 1, Title: "Hello World", Objectives: []string{"print output"}, CreatedAt: time.Now()},
	}
	if err := store.AddLessons(ctx, lessons); err != nil {
		t.Fatalf("AddLessons() error = %v", err)
	}

	assessment := domain.Assessment{
		ID: uuid.New(), CourseID: course.ID, Position: 1,
		Title: "Print greeting", Type: domain.AssessmentTypeCode,
		Requirements: []string{"print Hello"}, Language: "go",
		ExpectedOutput: "Hello", CreatedAt: time.Now(),
	}
	if err := store.AddAssessments(ctx, []domain.Assessment{assessment}); err != nil {
		t.Fatalf("AddAssessments() error = %v", err)
	}

	got, err := store.GetCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetCourse() error = %v", err)
	}

	if got.Title != "Intro to Go" {
		t.Errorf("Title = %q; want %q", got.Title, "Intro to Go")
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "backend" {
		t.Errorf("Tags = %v; want [go backend]", got.Tags)
	}
	if got.Status != domain.CourseStatusActive {
		t.Errorf("Status = %q; want active", got.Status)
	}
	if len(got.Lessons) != 2 {
		t.Fatalf("len(Lessons) = %d; want 2", len(got.Lessons))
	}
	// Lessons come back ordered by position regardless of insert order
	if got.Lessons[0].Title != "Hello World" || got.Lessons[1].Title != "Slices" {
		t.Errorf("lesson order = [%q %q]; want [Hello World Slices]", got.Lessons[0].Title, got.Lessons[1].Title)
	}
	if len(got.Assessments) != 1 {
		t.Fatalf("len(Assessments) = %d; want 1", len(got.Assessments))
	}
	if got.Assessments[0].ExpectedOutput != "Hello" {
		t.Errorf("ExpectedOutput = %q; want Hello", got.Assessments[0].ExpectedOutput)
	}
}

func TestGetCourse_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetCourse(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrCourseNotFound) {
		t.Errorf("GetCourse() error = %v; want ErrCourseNotFound", err)
	}
}

func TestListCoursesByUser(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	older := domain.NewCourse("user-1", "Older", "", "1 hour", nil)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := domain.NewCourse("user-1", "Newer", "", "1 hour", nil)
	other := domain.NewCourse("user-2", "Theirs", "", "1 hour", nil)

	for _, c := range []*domain.Course{older, newer, other} {
		if err := store.CreateCourse(ctx, c); err != nil {
			t.Fatalf("CreateCourse(%s) error = %v", c.Title, err)
		}
	}

	got, err := store.ListCoursesByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListCoursesByUser() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(courses) = %d; want 2", len(got))
	}
	if got[0].Title != "Newer" || got[1].Title != "Older" {
		t.Errorf("order = [%q %q]; want newest first", got[0].Title, got[1].Title)
	}
}

func TestGetAssessment(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	course := domain.NewCourse("user-1", "Course", "", "1 hour", nil)
	if err := store.CreateCourse(ctx, course); err != nil {
		t.Fatalf("CreateCourse() error = %v", err)
	}
	a := domain.Assessment{
		ID: uuid.New(), CourseID: course.ID, Position: 1,
		Title: "Task", Type: domain.AssessmentTypeCode,
		Requirements: []string{}, Language: "python",
		ExpectedOutput: "42", CreatedAt: time.Now(),
	}
	if err := store.AddAssessments(ctx, []domain.Assessment{a}); err != nil {
		t.Fatalf("AddAssessments() error = %v", err)
	}

	got, err := store.GetAssessment(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAssessment() error = %v", err)
	}
	if got.Language != "python" || got.ExpectedOutput != "42" {
		t.Errorf("got %q/%q; want python/42", got.Language, got.ExpectedOutput)
	}

	if _, err := store.GetAssessment(ctx, uuid.New()); !errors.Is(err, domain.ErrAssessmentNotFound) {
		t.Errorf("GetAssessment(missing) error = %v; want ErrAssessmentNotFound", err)
	}
}

func TestCreateEnrollment_Rejoin(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	course := domain.NewCourse("user-1", "Course", "", "1 hour", nil)
	if err := store.CreateCourse(ctx, course); err != nil {
		t.Fatalf("CreateCourse() error = %v", err)
	}

	first := domain.NewEnrollment("user-1", course.ID)
	if err := store.CreateEnrollment(ctx, first); err != nil {
		t.Fatalf("first CreateEnrollment() error = %v", err)
	}

	// Enrolling again must not fail the unique constraint
	second := domain.NewEnrollment("user-1", course.ID)
	if err := store.CreateEnrollment(ctx, second); err != nil {
		t.Errorf("second CreateEnrollment() error = %v; want nil", err)
	}

	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM course_enrollments").Scan(&count); err != nil {
		t.Fatalf("count enrollments: %v", err)
	}
	if count != 1 {
		t.Errorf("enrollment count = %d; want 1", count)
	}
}
