package domain

import "time"

// Status is the verdict of a single test case
type Status string

const (
	StatusPassed Status = "Passed"
	StatusFailed Status = "Failed"
)

// FailureKind says why a test case failed
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureMismatch
	FailureExecution
	FailureTimeout
	FailureFixture
)

func (k FailureKind) String() string {
	switch k {
	case FailureMismatch:
		return "output mismatch"
	case FailureExecution:
		return "execution error"
	case FailureTimeout:
		return "timeout"
	case FailureFixture:
		return "fixture error"
	default:
		return ""
	}
}

// TestResult represents the result of executing one test binary
type TestResult struct {
	Module   string
	Name     string
	Status   Status
	Kind     FailureKind
	Message  string        // Diagnostic shown next to the status
	Stdout   string        // Normalized standard output
	Stderr   string        // Normalized standard error
	Expected string        // Normalized fixture contents
	Duration time.Duration // Time taken to execute
}

// Passed reports whether the test case passed
func (r TestResult) Passed() bool {
	return r.Status == StatusPassed
}

// ModuleResults holds the results of one module's test suite in discovery order
type ModuleResults struct {
	Module  string
	Results []TestResult
}

// Summary counts passed and failed results
type Summary struct {
	Passed int
	Failed int
}

// Summarize counts the results across all modules
func Summarize(modules []ModuleResults) Summary {
	var s Summary
	for _, m := range modules {
		for _, r := range m.Results {
			if r.Passed() {
				s.Passed++
			} else {
				s.Failed++
			}
		}
	}
	return s
}
