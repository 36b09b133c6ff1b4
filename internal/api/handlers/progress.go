package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/domain"
	"github.com/mentor3d/professor/internal/storage"
)

// ProgressHandler handles lesson progress updates
type ProgressHandler struct {
	store storage.ProgressStore
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(store storage.ProgressStore) *ProgressHandler {
	return &ProgressHandler{store: store}
}

// UpdateProgressRequest is the request body for a progress update
type UpdateProgressRequest struct {
	UserID             string `json:"user_id"`
	LessonID           string `json:"lesson_id"`
	CourseID           string `json:"course_id"`
	Status             string `json:"status,omitempty"`
	ProgressPercentage int    `json:"progress_percentage"`
}

// Update upserts the progress record for a (user, lesson) pair.
// Repeated updates overwrite the previous record.
func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, r, "invalid request body")
		return
	}

	if req.UserID == "" {
		BadRequest(w, r, "user_id is required")
		return
	}
	lessonID, err := uuid.Parse(req.LessonID)
	if err != nil {
		BadRequest(w, r, "invalid lesson ID")
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		BadRequest(w, r, "invalid course ID")
		return
	}

	status := domain.ProgressStatus(req.Status)
	switch status {
	case domain.ProgressStatusInProgress, domain.ProgressStatusCompleted:
	case "":
		// Status omitted: infer from the percentage.
		if req.ProgressPercentage >= 100 {
			status = domain.ProgressStatusCompleted
		} else {
			status = domain.ProgressStatusInProgress
		}
	default:
		BadRequest(w, r, "invalid status: "+req.Status)
		return
	}

	record := domain.NewProgressRecord(req.UserID, lessonID, courseID, status, req.ProgressPercentage)
	if err := h.store.UpsertProgress(r.Context(), record); err != nil {
		InternalError(w, r, "failed to save progress", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"progress": toProgressResponse(record),
	})
}

// ProgressResponse represents a progress record in API responses
type ProgressResponse struct {
	UserID             string `json:"user_id"`
	LessonID           string `json:"lesson_id"`
	CourseID           string `json:"course_id"`
	Status             string `json:"status"`
	ProgressPercentage int    `json:"progress_percentage"`
}

func toProgressResponse(p *domain.ProgressRecord) ProgressResponse {
	return ProgressResponse{
		UserID:             p.UserID,
		LessonID:           p.LessonID.String(),
		CourseID:           p.CourseID.String(),
		Status:             string(p.Status),
		ProgressPercentage: p.ProgressPercentage,
	}
}
