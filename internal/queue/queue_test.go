package queue_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/queue"
)

func TestNewEffectJob(t *testing.T) {
	courseID := uuid.New()
	job, err := queue.NewEffectJob(queue.EffectEnroll, "user-1", queue.EnrollPayload{CourseID: courseID})
	if err != nil {
		t.Fatalf("NewEffectJob() error = %v", err)
	}

	if job.ID == uuid.Nil {
		t.Error("Job ID should be generated")
	}
	if job.Kind != queue.EffectEnroll {
		t.Errorf("Kind = %q; want enroll", job.Kind)
	}
	if job.UserID != "user-1" {
		t.Errorf("UserID = %q; want user-1", job.UserID)
	}
	if job.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	var payload queue.EnrollPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.CourseID != courseID {
		t.Errorf("CourseID = %v; want %v", payload.CourseID, courseID)
	}
}

func TestNewEffectJob_GeneratesUniqueIDs(t *testing.T) {
	ids := make(map[uuid.UUID]bool)
	for i := 0; i < 10; i++ {
		job, err := queue.NewEffectJob(queue.EffectLogSession, "user-1", queue.SessionPayload{})
		if err != nil {
			t.Fatalf("NewEffectJob() error = %v", err)
		}
		if ids[job.ID] {
			t.Errorf("Duplicate job ID generated: %v", job.ID)
		}
		ids[job.ID] = true
	}
}

func TestNewEffectJob_SetsTimestamp(t *testing.T) {
	before := time.Now()
	job, err := queue.NewEffectJob(queue.EffectSaveChat, "user-1", queue.ChatPayload{Question: "q", Answer: "a"})
	if err != nil {
		t.Fatalf("NewEffectJob() error = %v", err)
	}
	after := time.Now()

	if job.CreatedAt.Before(before) || job.CreatedAt.After(after) {
		t.Errorf("CreatedAt = %v; should be between %v and %v", job.CreatedAt, before, after)
	}
}

func TestEffectJob_Serialization(t *testing.T) {
	lessonID := uuid.New()
	courseID := uuid.New()
	job, err := queue.NewEffectJob(queue.EffectSaveChat, "user-1", queue.ChatPayload{
		CourseID: &courseID,
		LessonID: &lessonID,
		Question: "What is a slice?",
		Answer:   "A view over an array.",
	})
	if err != nil {
		t.Fatalf("NewEffectJob() error = %v", err)
	}

	body, err := json.Marshal(job)
	if err != nil {
		t.Fatalf("marshal job: %v", err)
	}

	var decoded queue.EffectJob
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal job: %v", err)
	}
	if decoded.ID != job.ID {
		t.Errorf("ID = %v; want %v", decoded.ID, job.ID)
	}
	if decoded.Kind != queue.EffectSaveChat {
		t.Errorf("Kind = %q; want save_chat", decoded.Kind)
	}

	var payload queue.ChatPayload
	if err := json.Unmarshal(decoded.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.LessonID == nil || *payload.LessonID != lessonID {
		t.Errorf("LessonID = %v; want %v", payload.LessonID, lessonID)
	}
	if payload.Question != "What is a slice?" {
		t.Errorf("Question = %q; want original text", payload.Question)
	}
}

func TestChatPayload_OmitsNilRefs(t *testing.T) {
	body, err := json.Marshal(queue.ChatPayload{Question: "q", Answer: "a"})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if _, ok := raw["course_id"]; ok {
		t.Error("course_id should be omitted when nil")
	}
	if _, ok := raw["lesson_id"]; ok {
		t.Error("lesson_id should be omitted when nil")
	}
}

func TestDefaultConsumerConfig(t *testing.T) {
	cfg := queue.DefaultConsumerConfig()

	if cfg.Workers != 3 {
		t.Errorf("Default Workers = %d; want 3", cfg.Workers)
	}
	if cfg.Prefetch != 1 {
		t.Errorf("Default Prefetch = %d; want 1", cfg.Prefetch)
	}
}
