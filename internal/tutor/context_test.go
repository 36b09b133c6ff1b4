package tutor

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/mentor3d/professor/internal/domain"
	"github.com/mentor3d/professor/internal/llm"
)

// embedStub maps text keywords to fixed vectors
type embedStub struct {
	vectors map[string][]float64
	err     error
}

func (e *embedStub) Name() string { return "stub" }

func (e *embedStub) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	return &llm.Response{Content: "ok"}, nil
}

func (e *embedStub) Embed(ctx context.Context, text string) ([]float64, error) {
	if e.err != nil {
		return nil, e.err
	}
	for key, vec := range e.vectors {
		if strings.Contains(text, key) {
			return vec, nil
		}
	}
	return []float64{0, 0, 1}, nil
}

func TestSelectLessonContext_PicksMostSimilar(t *testing.T) {
	stub := &embedStub{vectors: map[string][]float64{
		"goroutine":   {1, 0, 0}, // the question
		"Concurrency": {0.9, 0.1, 0},
		"Syntax":      {0, 1, 0},
	}}
	svc := NewService(stub)

	lessons := []domain.Lesson{
		{Title: "Syntax", Content: "Variables and loops"},
		{Title: "Concurrency", Content: "Goroutines and channels"},
	}

	got, ok := svc.SelectLessonContext(context.Background(), "what is a goroutine?", lessons)
	if !ok {
		t.Fatal("SelectLessonContext() should succeed")
	}
	if got != "Goroutines and channels" {
		t.Errorf("context = %q; want the concurrency lesson", got)
	}
}

func TestSelectLessonContext_SingleLessonShortCircuits(t *testing.T) {
	svc := NewService(&embedStub{err: errors.New("should not be called")})

	lessons := []domain.Lesson{{Title: "Only", Content: "only lesson"}}

	got, ok := svc.SelectLessonContext(context.Background(), "q", lessons)
	if !ok || got != "only lesson" {
		t.Errorf("SelectLessonContext() = (%q, %v); want the single lesson without embedding", got, ok)
	}
}

func TestSelectLessonContext_EmbeddingFailureDegrades(t *testing.T) {
	svc := NewService(&embedStub{err: errors.New("api down")})

	lessons := []domain.Lesson{
		{Title: "A", Content: "a"},
		{Title: "B", Content: "b"},
	}

	if _, ok := svc.SelectLessonContext(context.Background(), "q", lessons); ok {
		t.Error("SelectLessonContext() should report failure when embeddings are unavailable")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
		{"length mismatch", []float64{1}, []float64{1, 2}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %f; want %f", got, tt.want)
			}
		})
	}
}
