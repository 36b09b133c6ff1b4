package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Course is a generated learning course owned by a single user.
type Course struct {
	ID          uuid.UUID
	UserID      string
	Title       string
	Description string
	Duration    string // free-text estimate, e.g. "6 hours"
	Tags        []string
	Status      CourseStatus
	Lessons     []Lesson
	Assessments []Assessment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CourseStatus represents the lifecycle state of a course
type CourseStatus string

const (
	CourseStatusActive    CourseStatus = "active"
	CourseStatusCompleted CourseStatus = "completed"
	CourseStatusArchived  CourseStatus = "archived"
)

// Lesson is a single unit of course content
type Lesson struct {
	ID         uuid.UUID
	CourseID   uuid.UUID
	Position   int // 1-based order within the course
	Title      string
	Content    string
	Duration   string
	Objectives []string
	CreatedAt  time.Time
}

// Assessment is a graded exercise attached to a course
type Assessment struct {
	ID             uuid.UUID
	CourseID       uuid.UUID
	Position       int
	Title          string
	Type           AssessmentType
	Description    string
	Requirements   []string
	Language       string // target language for code assessments
	ExpectedOutput string // trimmed stdout that earns full marks
	CreatedAt      time.Time
}

// AssessmentType classifies how an assessment is completed
type AssessmentType string

const (
	AssessmentTypeProject AssessmentType = "project"
	AssessmentTypeQuiz    AssessmentType = "quiz"
	AssessmentTypeCode    AssessmentType = "code"
)

// Enrollment links a user to a course they are taking
type Enrollment struct {
	ID                 uuid.UUID
	UserID             string
	CourseID           uuid.UUID
	Status             EnrollmentStatus
	ProgressPercentage int
	EnrolledAt         time.Time
	LastAccessedAt     time.Time
}

// EnrollmentStatus represents the state of an enrollment
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusDropped   EnrollmentStatus = "dropped"
)

// NewCourse creates a course in the active state with normalized tags.
// Blank tags are discarded; remaining tags are lowercased.
func NewCourse(userID, title, description, duration string, tags []string) *Course {
	now := time.Now()
	return &Course{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Duration:    duration,
		Tags:        NormalizeTags(tags),
		Status:      CourseStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NormalizeTags lowercases and trims tags, dropping empty entries.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// NewEnrollment creates an active enrollment with zero progress
func NewEnrollment(userID string, courseID uuid.UUID) *Enrollment {
	now := time.Now()
	return &Enrollment{
		ID:             uuid.New(),
		UserID:         userID,
		CourseID:       courseID,
		Status:         EnrollmentStatusActive,
		EnrolledAt:     now,
		LastAccessedAt: now,
	}
}

// LessonByID returns the lesson with the given ID, if present
func (c *Course) LessonByID(id uuid.UUID) (*Lesson, bool) {
	for i := range c.Lessons {
		if c.Lessons[i].ID == id {
			return &c.Lessons[i], true
		}
	}
	return nil, false
}

// IsActive reports whether the course is available for study
func (c *Course) IsActive() bool {
	return c.Status == CourseStatusActive
}
