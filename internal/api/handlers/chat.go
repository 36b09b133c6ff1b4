package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/domain"
	"github.com/mentor3d/professor/internal/queue"
	"github.com/mentor3d/professor/internal/tutor"
)

// ChatTutor answers tutoring questions. Satisfied by *tutor.Service.
type ChatTutor interface {
	Answer(ctx context.Context, question, contextText string) (string, error)
	SelectLessonContext(ctx context.Context, question string, lessons []domain.Lesson) (string, bool)
}

// CourseReader loads courses for context resolution
type CourseReader interface {
	GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error)
}

// ChatHandler handles tutoring chat
type ChatHandler struct {
	tutor   ChatTutor
	store   CourseReader
	effects Dispatcher
}

// NewChatHandler creates a new chat handler
func NewChatHandler(tutor ChatTutor, store CourseReader, effects Dispatcher) *ChatHandler {
	return &ChatHandler{tutor: tutor, store: store, effects: effects}
}

// ChatRequest is the request body for a tutoring question
type ChatRequest struct {
	Question string `json:"question"`
	UserID   string `json:"user_id,omitempty"`
	CourseID string `json:"course_id,omitempty"`
	LessonID string `json:"lesson_id,omitempty"`
}

// ChatResponse is the answer envelope
type ChatResponse struct {
	Success   bool      `json:"success"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// Ask answers a question grounded in the most specific available
// context: the named lesson, then the lesson chosen by embedding
// similarity, then the course description, then a generic fallback.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, r, "invalid request body")
		return
	}
	if req.Question == "" {
		BadRequest(w, r, "question is required")
		return
	}

	contextText := tutor.GenericContext
	var courseID, lessonID *uuid.UUID

	if req.CourseID != "" {
		cid, err := uuid.Parse(req.CourseID)
		if err != nil {
			BadRequest(w, r, "invalid course ID")
			return
		}

		course, err := h.store.GetCourse(r.Context(), cid)
		if err != nil {
			if errors.Is(err, domain.ErrCourseNotFound) {
				NotFound(w, r, "course")
				return
			}
			InternalError(w, r, "failed to load course", err)
			return
		}
		courseID = &cid

		if req.LessonID != "" {
			lid, err := uuid.Parse(req.LessonID)
			if err != nil {
				BadRequest(w, r, "invalid lesson ID")
				return
			}
			lesson, ok := course.LessonByID(lid)
			if !ok {
				NotFound(w, r, "lesson")
				return
			}
			lessonID = &lid
			contextText = lesson.Content
		} else if text, ok := h.tutor.SelectLessonContext(r.Context(), req.Question, course.Lessons); ok {
			contextText = text
		} else if course.Description != "" {
			contextText = course.Description
		}
	}

	answer, err := h.tutor.Answer(r.Context(), req.Question, contextText)
	if err != nil {
		InternalError(w, r, "failed to answer question", err)
		return
	}

	// Anonymous questions are answered but not saved to history.
	if req.UserID != "" {
		h.effects.Dispatch(r.Context(), queue.EffectSaveChat, req.UserID, queue.ChatPayload{
			CourseID: courseID,
			LessonID: lessonID,
			Question: req.Question,
			Answer:   answer,
		})
	}

	WriteJSON(w, http.StatusOK, ChatResponse{
		Success:   true,
		Answer:    answer,
		Timestamp: time.Now(),
	})
}
