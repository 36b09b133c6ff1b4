package tutor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CourseOutline is the fixed JSON schema the model must produce
type CourseOutline struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Duration    string              `json:"duration"`
	Lessons     []LessonOutline     `json:"lessons"`
	Assessments []AssessmentOutline `json:"assessments"`
}

// LessonOutline is one lesson entry in a generated outline
type LessonOutline struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Duration   string   `json:"duration"`
	Objectives []string `json:"objectives"`
}

// AssessmentOutline is one assessment entry in a generated outline
type AssessmentOutline struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// ParseCourseOutline parses model output into a CourseOutline. Only a
// parse attempt is made; any malformed output is a fatal parse error
// that propagates to the caller. Models habitually wrap JSON in a
// markdown fence, so a single leading/trailing fence is stripped first.
func ParseCourseOutline(raw string) (*CourseOutline, error) {
	cleaned := stripFence(strings.TrimSpace(raw))

	var outline CourseOutline
	if err := json.Unmarshal([]byte(cleaned), &outline); err != nil {
		return nil, fmt.Errorf("parse course outline: %w", err)
	}
	if outline.Title == "" {
		return nil, fmt.Errorf("parse course outline: missing title")
	}
	return &outline, nil
}

// stripFence removes a surrounding markdown code fence, if present
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
