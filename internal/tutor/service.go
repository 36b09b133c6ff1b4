// Package tutor shapes language-model requests for course generation,
// tutoring answers, and submission feedback, and parses model output.
package tutor

import (
	"context"
	"fmt"

	"github.com/mentor3d/professor/internal/exec"
	"github.com/mentor3d/professor/internal/llm"
)

// Service drives the language-model provider for all tutoring features
type Service struct {
	provider llm.Provider
	prompter *Prompter
}

// NewService creates a tutor service over the given provider
func NewService(provider llm.Provider) *Service {
	return &Service{
		provider: provider,
		prompter: NewPrompter(),
	}
}

// GenerateCourse asks the model for a structured course outline for the
// given skill tags. Malformed model output is a fatal parse error.
func (s *Service) GenerateCourse(ctx context.Context, tags []string) (*CourseOutline, error) {
	resp, err := s.provider.Generate(ctx, &llm.Request{
		System:      s.prompter.CourseSystemPrompt(),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: s.prompter.CoursePrompt(tags)}},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, fmt.Errorf("generate course: %w", err)
	}

	outline, err := ParseCourseOutline(resp.Content)
	if err != nil {
		return nil, err
	}
	return outline, nil
}

// Answer produces a tutoring answer for a student question, grounded in
// the supplied context text.
func (s *Service) Answer(ctx context.Context, question, contextText string) (string, error) {
	resp, err := s.provider.Generate(ctx, &llm.Request{
		System:      s.prompter.AnswerSystemPrompt(),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: s.prompter.AnswerPrompt(question, contextText)}},
		Temperature: 0.3,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("answer question: %w", err)
	}
	return resp.Content, nil
}

// CodeFeedback asks the model for instructional feedback on a graded
// submission, supplying the code, score, and execution output as context.
func (s *Service) CodeFeedback(ctx context.Context, code string, score int, result *exec.Result) (string, error) {
	resp, err := s.provider.Generate(ctx, &llm.Request{
		System:      s.prompter.FeedbackSystemPrompt(),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: s.prompter.FeedbackPrompt(code, score, result)}},
		Temperature: 0.7,
		MaxTokens:   800,
	})
	if err != nil {
		return "", fmt.Errorf("code feedback: %w", err)
	}
	return resp.Content, nil
}
