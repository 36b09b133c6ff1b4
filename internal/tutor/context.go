package tutor

import (
	"context"
	"log/slog"
	"math"

	"github.com/mentor3d/professor/internal/domain"
)

// GenericContext is the fallback context when no lesson or course
// content can be resolved for a question.
const GenericContext = "General programming and computer science tutoring."

// SelectLessonContext picks the lesson most relevant to a question by
// embedding similarity. Used when the caller supplied a course but no
// lesson. Any embedding failure degrades to an empty result; the caller
// falls back to the course description.
func (s *Service) SelectLessonContext(ctx context.Context, question string, lessons []domain.Lesson) (string, bool) {
	if len(lessons) == 0 {
		return "", false
	}
	if len(lessons) == 1 {
		return lessons[0].Content, true
	}

	queryVec, err := s.provider.Embed(ctx, question)
	if err != nil {
		slog.Warn("question embedding failed", "error", err)
		return "", false
	}

	best := -1
	bestScore := float64(-1)
	for i := range lessons {
		lessonVec, err := s.provider.Embed(ctx, lessons[i].Title+"\n"+lessons[i].Content)
		if err != nil {
			slog.Warn("lesson embedding failed", "lesson_id", lessons[i].ID, "error", err)
			continue
		}
		if score := CosineSimilarity(queryVec, lessonVec); score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return "", false
	}
	return lessons[best].Content, true
}

// CosineSimilarity computes cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
