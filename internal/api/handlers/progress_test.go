package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/api/handlers"
	"github.com/mentor3d/professor/internal/domain"
)

func TestUpdateProgress(t *testing.T) {
	store := newFakeStore()
	h := handlers.NewProgressHandler(store)

	lessonID, courseID := uuid.New(), uuid.New()
	body := fmt.Sprintf(`{"user_id":"user-1","lesson_id":%q,"course_id":%q,"status":"in_progress","progress_percentage":40}`,
		lessonID, courseID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/progress", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success  bool                      `json:"success"`
		Progress handlers.ProgressResponse `json:"progress"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Progress.ProgressPercentage != 40 || resp.Progress.Status != "in_progress" {
		t.Errorf("progress = %+v", resp.Progress)
	}

	if len(store.progress) != 1 {
		t.Errorf("stored records = %d", len(store.progress))
	}
}

func TestUpdateProgress_UpsertOverwrites(t *testing.T) {
	store := newFakeStore()
	h := handlers.NewProgressHandler(store)

	lessonID, courseID := uuid.New(), uuid.New()
	for _, pct := range []int{40, 100} {
		body := fmt.Sprintf(`{"user_id":"user-1","lesson_id":%q,"course_id":%q,"progress_percentage":%d}`,
			lessonID, courseID, pct)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/progress", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Update(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	}

	if len(store.progress) != 1 {
		t.Fatalf("stored records = %d, want 1 after upsert", len(store.progress))
	}
	if store.progress[0].ProgressPercentage != 100 {
		t.Errorf("percentage = %d, want last write 100", store.progress[0].ProgressPercentage)
	}
	// Status omitted at 100 percent resolves to completed.
	if store.progress[0].Status != domain.ProgressStatusCompleted {
		t.Errorf("status = %q, want completed", store.progress[0].Status)
	}
}

func TestUpdateProgress_ClampsPercentage(t *testing.T) {
	store := newFakeStore()
	h := handlers.NewProgressHandler(store)

	body := fmt.Sprintf(`{"user_id":"user-1","lesson_id":%q,"course_id":%q,"progress_percentage":150}`,
		uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/progress", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if store.progress[0].ProgressPercentage != 100 {
		t.Errorf("percentage = %d, want clamped to 100", store.progress[0].ProgressPercentage)
	}
}

func TestUpdateProgress_Validation(t *testing.T) {
	h := handlers.NewProgressHandler(newFakeStore())

	lid, cid := uuid.NewString(), uuid.NewString()
	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{`},
		{"missing user", fmt.Sprintf(`{"lesson_id":%q,"course_id":%q}`, lid, cid)},
		{"bad lesson id", fmt.Sprintf(`{"user_id":"u","lesson_id":"nope","course_id":%q}`, cid)},
		{"bad course id", fmt.Sprintf(`{"user_id":"u","lesson_id":%q,"course_id":"nope"}`, lid)},
		{"bad status", fmt.Sprintf(`{"user_id":"u","lesson_id":%q,"course_id":%q,"status":"paused"}`, lid, cid)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/progress", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Update(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
