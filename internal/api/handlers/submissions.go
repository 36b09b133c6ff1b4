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
	"github.com/mentor3d/professor/internal/exec"
	"github.com/mentor3d/professor/internal/grading"
	"github.com/mentor3d/professor/internal/queue"
	"github.com/mentor3d/professor/internal/storage"
)

// Grader grades code submissions. Satisfied by *grading.Grader.
type Grader interface {
	Grade(ctx context.Context, code string, languageID int, expectedOutput string) (*grading.Result, error)
}

// FeedbackProvider generates instructional feedback for graded code.
// Satisfied by *tutor.Service.
type FeedbackProvider interface {
	CodeFeedback(ctx context.Context, code string, score int, result *exec.Result) (string, error)
}

// SubmissionStore is the storage slice the submission handler needs
type SubmissionStore interface {
	storage.SubmissionStore
	GetAssessment(ctx context.Context, id uuid.UUID) (*domain.Assessment, error)
}

// SubmissionHandler handles code submission grading
type SubmissionHandler struct {
	grader   Grader
	feedback FeedbackProvider
	store    SubmissionStore
	effects  Dispatcher
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(grader Grader, feedback FeedbackProvider, store SubmissionStore, effects Dispatcher) *SubmissionHandler {
	return &SubmissionHandler{grader: grader, feedback: feedback, store: store, effects: effects}
}

// SubmitRequest is the request body for a code submission
type SubmitRequest struct {
	Code           string `json:"code"`
	Language       string `json:"language"`
	AssessmentID   string `json:"assessment_id"`
	CourseID       string `json:"course_id,omitempty"`
	UserID         string `json:"user_id,omitempty"`
	ExpectedOutput string `json:"expected_output,omitempty"`
}

// SubmitResult is the graded outcome returned to the client
type SubmitResult struct {
	SubmissionID    string       `json:"submission_id"`
	Score           int          `json:"score"`
	Feedback        string       `json:"feedback"`
	AIFeedback      string       `json:"ai_feedback"`
	ExecutionResult *exec.Result `json:"execution_result,omitempty"`
}

// Submit grades a code submission, asks the model for feedback, and
// persists the result.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, r, "invalid request body")
		return
	}

	if req.Code == "" {
		BadRequest(w, r, "code is required")
		return
	}
	if req.Language == "" {
		BadRequest(w, r, "language is required")
		return
	}
	languageID, ok := exec.LanguageID(req.Language)
	if !ok {
		BadRequest(w, r, "unsupported language: "+req.Language)
		return
	}
	assessmentID, err := uuid.Parse(req.AssessmentID)
	if err != nil {
		BadRequest(w, r, "invalid assessment ID")
		return
	}

	var courseID uuid.UUID
	if req.CourseID != "" {
		courseID, err = uuid.Parse(req.CourseID)
		if err != nil {
			BadRequest(w, r, "invalid course ID")
			return
		}
	}

	// The client may pin the expected output directly; otherwise it
	// comes from the stored assessment. A failed lookup grades against
	// an empty expectation rather than failing the submission.
	expected := req.ExpectedOutput
	if expected == "" {
		if assessment, err := h.store.GetAssessment(r.Context(), assessmentID); err == nil {
			expected = assessment.ExpectedOutput
		} else if !errors.Is(err, domain.ErrAssessmentNotFound) {
			slog.Warn("assessment lookup failed", "assessment_id", assessmentID, "error", err)
		}
	}

	graded, err := h.grader.Grade(r.Context(), req.Code, languageID, expected)
	if err != nil {
		InternalError(w, r, "grading failed", err)
		return
	}

	aiFeedback, err := h.feedback.CodeFeedback(r.Context(), req.Code, graded.Score, graded.Execution)
	if err != nil {
		InternalError(w, r, "feedback generation failed", err)
		return
	}

	submission := &domain.Submission{
		ID:           uuid.New(),
		UserID:       req.UserID,
		CourseID:     courseID,
		AssessmentID: assessmentID,
		Code:         req.Code,
		Language:     req.Language,
		Score:        graded.Score,
		Feedback:     graded.Feedback,
		AIFeedback:   aiFeedback,
		SubmittedAt:  time.Now(),
	}
	if graded.Execution != nil {
		if raw, err := json.Marshal(graded.Execution); err == nil {
			submission.ExecutionResult = raw
		}
	}

	if err := h.store.CreateSubmission(r.Context(), submission); err != nil {
		InternalError(w, r, "failed to save submission", err)
		return
	}

	if req.UserID != "" {
		h.effects.Dispatch(r.Context(), queue.EffectAwardAchievements, req.UserID, queue.AchievementPayload{
			CourseID: courseID,
			Score:    graded.Score,
		})
		h.effects.Dispatch(r.Context(), queue.EffectLogSession, req.UserID, queue.SessionPayload{
			CourseID:    courseID,
			SessionType: "assessment",
			Score:       graded.Score,
		})
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result": SubmitResult{
			SubmissionID:    submission.ID.String(),
			Score:           graded.Score,
			Feedback:        graded.Feedback,
			AIFeedback:      aiFeedback,
			ExecutionResult: graded.Execution,
		},
	})
}
