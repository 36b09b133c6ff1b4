package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/analytics"
	"github.com/mentor3d/professor/internal/api/handlers"
	"github.com/mentor3d/professor/internal/dashboard"
	"github.com/mentor3d/professor/internal/domain"
)

type fakeLoader struct {
	dash *dashboard.Dashboard
}

func (f *fakeLoader) Load(ctx context.Context, userID string) *dashboard.Dashboard {
	return f.dash
}

func TestDashboard(t *testing.T) {
	loader := &fakeLoader{dash: &dashboard.Dashboard{
		Analytics: analytics.Overview{TotalSessions: 3, TotalTimeMinutes: 90, AverageScore: 80, StreakDays: 2},
		Progress:  analytics.ProgressSummary{TotalLessons: 4, CompletedLessons: 1},
		Courses:   analytics.CourseOverview{TotalCourses: 2, ActiveCourses: 1},
		RecentChats: []domain.ChatRecord{
			{ID: uuid.New(), Question: "What is a goroutine?", Answer: "A lightweight thread managed by the runtime."},
		},
		Achievements: []domain.Achievement{
			*domain.NewAchievement("user-1", domain.AchievementFirstCourse, "First Course", "Generated and enrolled in a first course", "🎓"),
		},
	}}
	h := handlers.NewDashboardHandler(loader)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?user_id=user-1", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Success   bool `json:"success"`
		Dashboard struct {
			Analytics    analytics.Overview             `json:"analytics"`
			RecentChats  []handlers.ChatRecordResponse  `json:"recent_chats"`
			Achievements []handlers.AchievementResponse `json:"achievements"`
		} `json:"dashboard"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Dashboard.Analytics.TotalSessions != 3 {
		t.Errorf("total_sessions = %d", resp.Dashboard.Analytics.TotalSessions)
	}
	if len(resp.Dashboard.RecentChats) != 1 || resp.Dashboard.RecentChats[0].Question != "What is a goroutine?" {
		t.Errorf("recent_chats = %+v", resp.Dashboard.RecentChats)
	}
	if len(resp.Dashboard.Achievements) != 1 || resp.Dashboard.Achievements[0].Kind != "first_course" {
		t.Errorf("achievements = %+v", resp.Dashboard.Achievements)
	}
}

func TestDashboard_MissingUserID(t *testing.T) {
	h := handlers.NewDashboardHandler(&fakeLoader{dash: &dashboard.Dashboard{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDashboard_EmptyAchievementsIsArray(t *testing.T) {
	h := handlers.NewDashboardHandler(&fakeLoader{dash: &dashboard.Dashboard{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?user_id=user-1", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	var resp struct {
		Dashboard struct {
			RecentChats  json.RawMessage `json:"recent_chats"`
			Achievements json.RawMessage `json:"achievements"`
		} `json:"dashboard"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if string(resp.Dashboard.RecentChats) != "[]" {
		t.Errorf("recent_chats = %s, want []", resp.Dashboard.RecentChats)
	}
	if string(resp.Dashboard.Achievements) != "[]" {
		t.Errorf("achievements = %s, want []", resp.Dashboard.Achievements)
	}
}
