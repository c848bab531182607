package execution

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/phuslu/log"

	"ftest/internal/config"
	"ftest/internal/domain"
)

// WorkerPool manages a pool of workers for parallel test execution
type WorkerPool struct {
	config   *config.Config
	runner   CaseRunner
	progress Progress
	logger   *log.Logger
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner CaseRunner, logger *log.Logger) *WorkerPool {
	return &WorkerPool{
		config: cfg,
		runner: runner,
		logger: logger,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// job addresses one result slot
type job struct {
	suite int
	index int
	tc    domain.TestCase
}

// Execute runs every case of every suite. Each result lands in its own slot,
// so the returned order is the discovery order regardless of scheduling.
// A cancelled ctx stops scheduling; cases not yet run are reported as
// execution errors and ctx.Err() is returned.
func (wp *WorkerPool) Execute(ctx context.Context, suites []domain.TestSuite) ([]domain.ModuleResults, time.Duration, error) {
	out := make([]domain.ModuleResults, len(suites))
	var jobs []job
	for si, suite := range suites {
		out[si] = domain.ModuleResults{Module: suite.Module, Results: make([]domain.TestResult, len(suite.Cases))}
		for ci, tc := range suite.Cases {
			jobs = append(jobs, job{suite: si, index: ci, tc: tc})
		}
	}
	if len(jobs) == 0 {
		return out, 0, nil
	}

	queue := make(chan job, len(jobs))
	for _, j := range jobs {
		queue <- j
	}
	close(queue)

	var mu sync.Mutex
	var passed, failed int
	startTime := time.Now()
	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(jobs) {
		workerCount = len(jobs)
	}
	wp.logger.Debug().Int("workers", workerCount).Int("tests", len(jobs)).Msg("executing tests")

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				var result domain.TestResult
				if err := ctx.Err(); err != nil {
					result = domain.TestResult{
						Module:  j.tc.Module,
						Name:    j.tc.Name,
						Status:  domain.StatusFailed,
						Kind:    domain.FailureExecution,
						Message: fmt.Sprintf("execution error: %v", err),
					}
				} else {
					result = wp.runner.Run(ctx, j.tc)
				}
				out[j.suite].Results[j.index] = result

				mu.Lock()
				if result.Passed() {
					passed++
				} else {
					failed++
				}
				if wp.progress != nil {
					wp.progress.Update(passed, failed)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}
	return out, time.Since(startTime), ctx.Err()
}
