// Package handlers implements the HTTP endpoints of the API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/domain"
	"github.com/mentor3d/professor/internal/queue"
	"github.com/mentor3d/professor/internal/storage"
	"github.com/mentor3d/professor/internal/tutor"
)

// CourseGenerator produces course outlines. Satisfied by *tutor.Service.
type CourseGenerator interface {
	GenerateCourse(ctx context.Context, tags []string) (*tutor.CourseOutline, error)
}

// Dispatcher enqueues fire-and-forget side effects. Satisfied by
// *effects.Dispatcher.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind queue.EffectKind, userID string, payload any)
}

// CourseHandler handles course generation and retrieval
type CourseHandler struct {
	tutor   CourseGenerator
	store   storage.CourseStore
	effects Dispatcher
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(tutor CourseGenerator, store storage.CourseStore, effects Dispatcher) *CourseHandler {
	return &CourseHandler{tutor: tutor, store: store, effects: effects}
}

// GenerateCourseRequest is the request body for course generation
type GenerateCourseRequest struct {
	UserID string   `json:"user_id"`
	Tags   []string `json:"tags"`
}

// CourseResponse represents a course in API responses
type CourseResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Duration    string               `json:"duration"`
	Tags        []string             `json:"tags"`
	Status      string               `json:"status"`
	Lessons     []LessonResponse     `json:"lessons"`
	Assessments []AssessmentResponse `json:"assessments"`
	CreatedAt   time.Time            `json:"created_at"`
}

// LessonResponse represents a lesson in API responses
type LessonResponse struct {
	ID         string   `json:"id"`
	Position   int      `json:"position"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Duration   string   `json:"duration"`
	Objectives []string `json:"objectives"`
}

// AssessmentResponse represents an assessment in API responses
type AssessmentResponse struct {
	ID             string   `json:"id"`
	Position       int      `json:"position"`
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	Description    string   `json:"description"`
	Requirements   []string `json:"requirements"`
	Language       string   `json:"language,omitempty"`
	ExpectedOutput string   `json:"expected_output,omitempty"`
}

// Generate creates a course from the model's outline and persists it.
// The course insert is fatal; lesson, assessment, and side-effect
// failures are tolerated so the client still receives the course.
func (h *CourseHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, r, "invalid request body")
		return
	}

	tags := domain.NormalizeTags(req.Tags)
	if len(tags) == 0 {
		BadRequest(w, r, "at least one tag is required")
		return
	}
	if req.UserID == "" {
		BadRequest(w, r, "user_id is required")
		return
	}

	outline, err := h.tutor.GenerateCourse(r.Context(), tags)
	if err != nil {
		InternalError(w, r, "course generation failed", err)
		return
	}

	course := domain.NewCourse(req.UserID, outline.Title, outline.Description, outline.Duration, tags)
	course.Lessons = lessonsFromOutline(course.ID, outline.Lessons)
	course.Assessments = assessmentsFromOutline(course.ID, outline.Assessments)

	if err := h.store.CreateCourse(r.Context(), course); err != nil {
		InternalError(w, r, "failed to save course", err)
		return
	}

	// Lessons and assessments are secondary content: a failed batch
	// insert loses detail but not the course itself.
	if err := h.store.AddLessons(r.Context(), course.Lessons); err != nil {
		slog.Error("failed to save lessons", "course_id", course.ID, "error", err)
	}
	if err := h.store.AddAssessments(r.Context(), course.Assessments); err != nil {
		slog.Error("failed to save assessments", "course_id", course.ID, "error", err)
	}

	h.effects.Dispatch(r.Context(), queue.EffectEnroll, req.UserID, queue.EnrollPayload{
		CourseID: course.ID,
	})
	h.effects.Dispatch(r.Context(), queue.EffectLogSession, req.UserID, queue.SessionPayload{
		CourseID:    course.ID,
		SessionType: "course_generation",
	})

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"course":  toCourseResponse(course),
	})
}

// List returns all courses for a user, newest first
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		BadRequest(w, r, "user_id is required")
		return
	}

	courses, err := h.store.ListCoursesByUser(r.Context(), userID)
	if err != nil {
		InternalError(w, r, "failed to list courses", err)
		return
	}

	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, toCourseResponse(&courses[i]))
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"courses": out,
	})
}

// Get returns a single course with its lessons and assessments
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, r, "invalid course ID")
		return
	}

	course, err := h.store.GetCourse(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			NotFound(w, r, "course")
			return
		}
		InternalError(w, r, "failed to load course", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"course":  toCourseResponse(course),
	})
}

// lessonsFromOutline converts outline lessons to domain lessons with
// stable 1-based positions.
func lessonsFromOutline(courseID uuid.UUID, outlines []tutor.LessonOutline) []domain.Lesson {
	lessons := make([]domain.Lesson, 0, len(outlines))
	now := time.Now()
	for i, lo := range outlines {
		lessons = append(lessons, domain.Lesson{
			ID:         uuid.New(),
			CourseID:   courseID,
			Position:   i + 1,
			Title:      lo.Title,
			Content:    lo.Content,
			Duration:   lo.Duration,
			Objectives: lo.Objectives,
			CreatedAt:  now,
		})
	}
	return lessons
}

func assessmentsFromOutline(courseID uuid.UUID, outlines []tutor.AssessmentOutline) []domain.Assessment {
	assessments := make([]domain.Assessment, 0, len(outlines))
	now := time.Now()
	for i, ao := range outlines {
		assessments = append(assessments, domain.Assessment{
			ID:           uuid.New(),
			CourseID:     courseID,
			Position:     i + 1,
			Title:        ao.Title,
			Type:         domain.AssessmentType(ao.Type),
			Description:  ao.Description,
			Requirements: ao.Requirements,
			CreatedAt:    now,
		})
	}
	return assessments
}

func toCourseResponse(c *domain.Course) CourseResponse {
	resp := CourseResponse{
		ID:          c.ID.String(),
		UserID:      c.UserID,
		Title:       c.Title,
		Description: c.Description,
		Duration:    c.Duration,
		Tags:        c.Tags,
		Status:      string(c.Status),
		Lessons:     make([]LessonResponse, 0, len(c.Lessons)),
		Assessments: make([]AssessmentResponse, 0, len(c.Assessments)),
		CreatedAt:   c.CreatedAt,
	}
	for _, l := range c.Lessons {
		resp.Lessons = append(resp.Lessons, LessonResponse{
			ID:         l.ID.String(),
			Position:   l.Position,
			Title:      l.Title,
			Content:    l.Content,
			Duration:   l.Duration,
			Objectives: l.Objectives,
		})
	}
	for _, a := range c.Assessments {
		resp.Assessments = append(resp.Assessments, AssessmentResponse{
			ID:             a.ID.String(),
			Position:       a.Position,
			Title:          a.Title,
			Type:           string(a.Type),
			Description:    a.Description,
			Requirements:   a.Requirements,
			Language:       a.Language,
			ExpectedOutput: a.ExpectedOutput,
		})
	}
	return resp
}
