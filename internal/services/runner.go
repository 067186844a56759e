package services

import (
	"fmt"

	"github.com/codebusters-club/recruitment-api/internal/models"
)

// RunResult is what a code execution yields for one submission.
type RunResult struct {
	TestResults   models.TestResultList
	ExecutionTime int64   // milliseconds
	MemoryUsed    float64 // MB
}

// Runner executes a submission against a task's test cases. Real execution
// happens in an external sandbox; the portal only consumes verdicts.
type Runner interface {
	Run(task *models.Task, code, language string) (*RunResult, error)
}

// SimulatedRunner stands in until a sandbox is wired up. It marks every test
// case as passed and reports nominal resource usage.
type SimulatedRunner struct{}

func (SimulatedRunner) Run(task *models.Task, code, language string) (*RunResult, error) {
	results := make(models.TestResultList, len(task.TestCases))
	for i, tc := range task.TestCases {
		results[i] = models.TestResult{
			TestCaseID: fmt.Sprintf("%d-%d", task.ID, i),
			Passed:     true,
			Output:     tc.ExpectedOutput,
		}
	}

	return &RunResult{
		TestResults:   results,
		ExecutionTime: 100,
		MemoryUsed:    16,
	}, nil
}
