package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/phuslu/log"

	"ftest/internal/config"
	"ftest/internal/domain"
	"ftest/internal/golden"
)

// waitDelay bounds how long Wait blocks on output pipes after a kill
const waitDelay = time.Second

// Runner executes a single compiled test binary and checks its output
type Runner struct {
	workDir string
	timeout time.Duration
	logger  *log.Logger
}

// NewRunner creates a new Runner. Binaries run from the project root so
// relative paths inside tests resolve the same way as a manual run.
func NewRunner(cfg *config.Config, logger *log.Logger) *Runner {
	return &Runner{
		workDir: cfg.ProjectPath,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Run executes the binary of tc with no arguments and compares its standard
// output with the fixture. The exit code is not part of the verdict.
func (r *Runner) Run(ctx context.Context, tc domain.TestCase) domain.TestResult {
	start := time.Now()
	result := r.run(ctx, tc)
	result.Duration = time.Since(start)

	r.logger.Debug().
		Str("module", tc.Module).
		Str("case", tc.Name).
		Str("status", string(result.Status)).
		Dur("duration", result.Duration).
		Msg("test finished")
	return result
}

func (r *Runner) run(ctx context.Context, tc domain.TestCase) domain.TestResult {
	result := domain.TestResult{Module: tc.Module, Name: tc.Name}

	expected, err := os.ReadFile(tc.ExpectedPath)
	if err != nil {
		return failed(result, domain.FailureFixture, fmt.Sprintf("fixture error: %v", err))
	}
	result.Expected = golden.Normalize(string(expected))

	exe, err := filepath.Abs(tc.ExecutablePath)
	if err != nil {
		return failed(result, domain.FailureExecution, fmt.Sprintf("execution error: %v", err))
	}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if r.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
	}
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, exe)
	cmd.Dir = r.workDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err = cmd.Run()
	result.Stdout = golden.Normalize(stdout.String())
	result.Stderr = golden.Normalize(stderr.String())

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
			return failed(result, domain.FailureTimeout, fmt.Sprintf("timed out after %s", r.timeout))
		case errors.Is(err, exec.ErrWaitDelay):
			// The binary exited but a child it left behind still held the pipes
			r.logger.Debug().Str("case", tc.Name).Msg("output pipes closed after wait delay")
		case !errors.As(err, &exitErr):
			return failed(result, domain.FailureExecution, fmt.Sprintf("execution error: %v", err))
		}
	}

	if result.Stdout != result.Expected {
		return failed(result, domain.FailureMismatch, result.Stderr)
	}
	result.Status = domain.StatusPassed
	return result
}

func failed(result domain.TestResult, kind domain.FailureKind, message string) domain.TestResult {
	result.Status = domain.StatusFailed
	result.Kind = kind
	result.Message = message
	return result
}
