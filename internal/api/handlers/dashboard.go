package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/mentor3d/professor/internal/dashboard"
)

// DashboardLoader assembles dashboards. Satisfied by *dashboard.Service.
type DashboardLoader interface {
	Load(ctx context.Context, userID string) *dashboard.Dashboard
}

// DashboardHandler serves the aggregated dashboard view
type DashboardHandler struct {
	dashboard DashboardLoader
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(loader DashboardLoader) *DashboardHandler {
	return &DashboardHandler{dashboard: loader}
}

// AchievementResponse represents an earned badge in API responses
type AchievementResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Badge       string    `json:"badge"`
	EarnedAt    time.Time `json:"earned_at"`
}

// ChatRecordResponse represents a saved tutoring exchange
type ChatRecordResponse struct {
	ID          string    `json:"id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	CourseID    string    `json:"course_id,omitempty"`
	CourseTitle string    `json:"course_title,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Get returns the dashboard for a user. Unavailable sections read as
// zero rather than failing the request.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		BadRequest(w, r, "user_id is required")
		return
	}

	d := h.dashboard.Load(r.Context(), userID)

	achievements := make([]AchievementResponse, 0, len(d.Achievements))
	for _, a := range d.Achievements {
		achievements = append(achievements, AchievementResponse{
			ID:          a.ID.String(),
			Kind:        string(a.Kind),
			Title:       a.Title,
			Description: a.Description,
			Badge:       a.Badge,
			EarnedAt:    a.EarnedAt,
		})
	}

	chats := make([]ChatRecordResponse, 0, len(d.RecentChats))
	for _, c := range d.RecentChats {
		cr := ChatRecordResponse{
			ID:          c.ID.String(),
			Question:    c.Question,
			Answer:      c.Answer,
			CourseTitle: c.CourseTitle,
			CreatedAt:   c.CreatedAt,
		}
		if c.CourseID != nil {
			cr.CourseID = c.CourseID.String()
		}
		chats = append(chats, cr)
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"dashboard": map[string]any{
			"analytics":    d.Analytics,
			"progress":     d.Progress,
			"courses":      d.Courses,
			"recent_chats": chats,
			"achievements": achievements,
		},
	})
}
