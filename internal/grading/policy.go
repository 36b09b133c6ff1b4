// Package grading scores code submissions by running them through the
// remote execution service and classifying the outcome.
package grading

import (
	"fmt"

	"github.com/mentor3d/professor/internal/exec"
)

// Outcome captures the two booleans the scoring policy keys on
type Outcome struct {
	OutputMatches  bool
	HasDiagnostics bool
}

// Rule maps one outcome to a score and a feedback builder
type Rule struct {
	Match    Outcome
	Score    int
	Feedback func(expected string, result *exec.Result) string
}

// Policy is an ordered rule list; the first rule whose outcome matches
// decides the score. Keeping the table explicit lets the scoring scheme
// be tested and evolved independently of transport code.
type Policy []Rule

// DefaultPolicy returns the four-tier scoring table
func DefaultPolicy() Policy {
	return Policy{
		{
			Match: Outcome{OutputMatches: true, HasDiagnostics: false},
			Score: 100,
			Feedback: func(expected string, result *exec.Result) string {
				return "Perfect! Your code produces the correct output."
			},
		},
		{
			Match: Outcome{OutputMatches: true, HasDiagnostics: true},
			Score: 80,
			Feedback: func(expected string, result *exec.Result) string {
				return fmt.Sprintf("Correct output, but there are warnings.\nWarnings: %s", result.Diagnostics())
			},
		},
		{
			Match: Outcome{OutputMatches: false, HasDiagnostics: false},
			Score: 50,
			Feedback: func(expected string, result *exec.Result) string {
				return fmt.Sprintf("Code runs but output is incorrect.\nExpected: %s\nGot: %s", expected, result.Stdout)
			},
		},
		{
			Match: Outcome{OutputMatches: false, HasDiagnostics: true},
			Score: 20,
			Feedback: func(expected string, result *exec.Result) string {
				return fmt.Sprintf("Code has compilation/runtime errors.\nError: %s", result.Diagnostics())
			},
		},
	}
}

// Apply returns the score and feedback for an outcome. The table covers
// all four outcome combinations, so a miss indicates a malformed policy.
func (p Policy) Apply(outcome Outcome, expected string, result *exec.Result) (int, string, error) {
	for _, rule := range p {
		if rule.Match == outcome {
			return rule.Score, rule.Feedback(expected, result), nil
		}
	}
	return 0, "", fmt.Errorf("no grading rule for outcome %+v", outcome)
}
