package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ftest/internal/domain"
)

var (
	passedColor = color.New(color.FgGreen)
	failedColor = color.New(color.FgRed)
	moduleColor = color.New(color.FgCyan)
	unusedColor = color.New(color.FgYellow)
)

// Reporter prints per-module coverage and test results
type Reporter struct {
	out io.Writer
}

// NewReporter creates a new Reporter writing to out
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Report prints every module in discovery order followed by its tests:
//
//	Module: str | 50.00% Coverage
//	  trim_basic: Passed
//	  trim_edge: Failed (assertion failed: off by one)
func (r *Reporter) Report(results []domain.ModuleResults, coverages map[string]domain.Coverage) {
	for _, m := range results {
		cov, ok := coverages[m.Module]
		fmt.Fprintf(r.out, "Module: %s | %s\n", moduleColor.Sprint(m.Module), coverageLabel(cov, ok, len(m.Results) > 0))
		for _, result := range m.Results {
			fmt.Fprintf(r.out, "  %s\n", r.resultLine(result))
		}
	}
	r.summary(domain.Summarize(results))
}

func (r *Reporter) resultLine(result domain.TestResult) string {
	status := passedColor.Sprint(result.Status)
	if !result.Passed() {
		status = failedColor.Sprint(result.Status)
	}
	line := fmt.Sprintf("%s: %s", result.Name, status)
	if msg := strings.TrimRight(result.Message, " \t\r\n"); msg != "" {
		line += fmt.Sprintf(" (%s)", msg)
	}
	return line
}

func (r *Reporter) summary(s domain.Summary) {
	total := s.Passed + s.Failed
	fmt.Fprintln(r.out)
	switch {
	case total == 0:
		fmt.Fprintln(r.out, unusedColor.Sprint("No tests executed"))
	case s.Failed == 0:
		fmt.Fprintln(r.out, passedColor.Sprintf("✓ %d passed, 0 failed", s.Passed))
	default:
		fmt.Fprintln(r.out, failedColor.Sprintf("✗ %d passed, %d failed", s.Passed, s.Failed))
	}
}

// ReportCoverage prints coverage and unused symbols for every header module
func (r *Reporter) ReportCoverage(modules []domain.Module, coverages map[string]domain.Coverage) {
	for _, m := range modules {
		cov, ok := coverages[m.Name]
		label := coverageLabel(cov, ok, false)
		if ok && !cov.NoAPI {
			label += fmt.Sprintf(" (%d/%d symbols)", cov.Used, cov.Declared)
		}
		fmt.Fprintf(r.out, "Module: %s | %s\n", moduleColor.Sprint(m.Name), label)
		if !ok {
			continue
		}
		for _, name := range cov.Unused {
			fmt.Fprintf(r.out, "  %s %s\n", unusedColor.Sprint("unused:"), name)
		}
	}
}

// coverageLabel describes a module's coverage. Without a coverage entry the
// module either has no tests or no header to measure against.
func coverageLabel(cov domain.Coverage, ok, hasTests bool) string {
	switch {
	case ok && cov.NoAPI:
		return "no API"
	case ok:
		return cov.Percentage + "% Coverage"
	case hasTests:
		return "coverage n/a"
	default:
		return "no tests"
	}
}
