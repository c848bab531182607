package execution

import (
	"context"
	"time"

	"ftest/internal/domain"
)

// Executor executes test suites and returns results in discovery order
type Executor interface {
	Execute(ctx context.Context, suites []domain.TestSuite) ([]domain.ModuleResults, time.Duration, error)
}

// CaseRunner runs a single test case
type CaseRunner interface {
	Run(ctx context.Context, tc domain.TestCase) domain.TestResult
}

// Progress receives pass/fail counts while tests run
type Progress interface {
	Update(passed, failed int)
	Finish()
}

var (
	_ Executor   = (*WorkerPool)(nil)
	_ CaseRunner = (*Runner)(nil)
)
