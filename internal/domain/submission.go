package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a graded answer to a code assessment
type Submission struct {
	ID           uuid.UUID
	UserID       string
	CourseID     uuid.UUID
	AssessmentID uuid.UUID
	Code         string
	Language     string
	Score        int    // 0-100 from the grading policy
	Feedback     string // deterministic grading feedback
	AIFeedback   string // free-text instructional feedback from the LLM
	// ExecutionResult holds the raw execution-service result as JSON.
	// Nil when the execution service itself failed.
	ExecutionResult []byte
	SubmittedAt     time.Time

	// CourseTitle is populated on reads that join the courses table;
	// it is not persisted on the submission row itself.
	CourseTitle string
}
