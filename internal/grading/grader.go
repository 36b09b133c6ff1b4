package grading

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mentor3d/professor/internal/exec"
)

// Executor runs source code remotely. Satisfied by *exec.Client.
type Executor interface {
	Execute(ctx context.Context, source string, languageID int, stdin string) (*exec.Result, error)
}

// Result is a graded submission outcome
type Result struct {
	Score     int
	Feedback  string
	Execution *exec.Result // nil when the execution service itself failed
}

// Grader grades submissions against an expected-output string
type Grader struct {
	executor Executor
	policy   Policy
}

// NewGrader creates a grader using the default scoring policy
func NewGrader(executor Executor) *Grader {
	return &Grader{executor: executor, policy: DefaultPolicy()}
}

// NewGraderWithPolicy creates a grader with a custom scoring policy
func NewGraderWithPolicy(executor Executor, policy Policy) *Grader {
	return &Grader{executor: executor, policy: policy}
}

// Grade executes the submission and scores it. A failure of the remote
// execution call is recovered locally: the submission scores zero with
// the error as feedback, and no error is returned to the caller.
func (g *Grader) Grade(ctx context.Context, code string, languageID int, expectedOutput string) (*Result, error) {
	execResult, err := g.executor.Execute(ctx, code, languageID, "")
	if err != nil {
		slog.Warn("execution service call failed", "language_id", languageID, "error", err)
		return &Result{
			Score:    0,
			Feedback: fmt.Sprintf("Error executing code: %v", err),
		}, nil
	}

	outcome := Outcome{
		OutputMatches:  strings.TrimSpace(execResult.Stdout) == strings.TrimSpace(expectedOutput),
		HasDiagnostics: execResult.HasDiagnostics(),
	}

	score, feedback, err := g.policy.Apply(outcome, expectedOutput, execResult)
	if err != nil {
		return nil, err
	}

	return &Result{
		Score:     score,
		Feedback:  feedback,
		Execution: execResult,
	}, nil
}
