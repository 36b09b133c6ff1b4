package tutor

import (
	"fmt"
	"strings"

	"github.com/mentor3d/professor/internal/exec"
)

// Prompter builds prompts for the language-model service
type Prompter struct{}

// NewPrompter creates a new prompter
func NewPrompter() *Prompter {
	return &Prompter{}
}

// CourseSystemPrompt is the system role for course outline generation
func (p *Prompter) CourseSystemPrompt() string {
	return "You are an expert curriculum designer. Create a structured course outline " +
		"based on the provided skill tags. Include lessons, assessments, and learning objectives."
}

// CoursePrompt asks for a course outline in the fixed JSON schema.
// The response must parse as CourseOutline; no markdown, no prose.
func (p *Prompter) CoursePrompt(tags []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a comprehensive course outline for these skill tags: %s.\n\n", strings.Join(tags, ", "))
	b.WriteString(`Format the response as JSON with this structure:
{
  "title": "Course Title",
  "description": "Course Description",
  "duration": "Estimated duration",
  "lessons": [
    {
      "id": 1,
      "title": "Lesson Title",
      "content": "Lesson content with code examples",
      "duration": "30 minutes",
      "objectives": ["Learning objective 1", "Learning objective 2"]
    }
  ],
  "assessments": [
    {
      "id": 1,
      "title": "Assessment Title",
      "type": "project|quiz|code",
      "description": "Assessment description",
      "requirements": ["Requirement 1", "Requirement 2"]
    }
  ]
}

Respond with the JSON object only.`)
	return b.String()
}

// AnswerSystemPrompt is the system role for tutoring answers
func (p *Prompter) AnswerSystemPrompt() string {
	return "You are an AI professor. Answer student questions clearly and provide code " +
		"examples when relevant. Be encouraging and educational."
}

// AnswerPrompt pairs a student question with its lesson context
func (p *Prompter) AnswerPrompt(question, contextText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lesson Context: %s\n\n", contextText)
	fmt.Fprintf(&b, "Student Question: %s\n\n", question)
	b.WriteString("Please provide a clear, helpful answer with code examples if applicable.")
	return b.String()
}

// FeedbackSystemPrompt is the system role for submission analysis
func (p *Prompter) FeedbackSystemPrompt() string {
	return "You are an expert programming instructor. Analyze the student's code and provide " +
		"constructive feedback focusing on code quality, best practices, and learning improvements."
}

// FeedbackPrompt describes a graded submission for instructional analysis
func (p *Prompter) FeedbackPrompt(code string, score int, result *exec.Result) string {
	stdout := "No output"
	diagnostics := "None"
	if result != nil {
		if result.Stdout != "" {
			stdout = result.Stdout
		}
		if result.HasDiagnostics() {
			diagnostics = result.Diagnostics()
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Student's Code:\n%s\n\n", code)
	fmt.Fprintf(&b, "Execution Result:\n- Score: %d%%\n- Output: %s\n- Errors: %s\n\n", score, stdout, diagnostics)
	b.WriteString(`Please provide detailed feedback on:
1. Code quality and structure
2. Areas for improvement
3. Positive aspects
4. Specific suggestions for learning`)
	return b.String()
}
