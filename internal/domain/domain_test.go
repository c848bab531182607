package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	modules := []ModuleResults{
		{Module: "str", Results: []TestResult{
			{Name: "trim_basic", Status: StatusPassed},
			{Name: "trim_edge", Status: StatusFailed, Kind: FailureMismatch},
		}},
		{Module: "file", Results: []TestResult{
			{Name: "read_str", Status: StatusFailed, Kind: FailureTimeout},
		}},
		{Module: "optional"},
	}

	s := Summarize(modules)
	assert.Equal(t, 1, s.Passed)
	assert.Equal(t, 2, s.Failed)
}

func TestModule_SymbolNames(t *testing.T) {
	m := Module{Name: "str", Symbols: []Symbol{{Name: "str_concat"}, {Name: "str_trim"}}}
	assert.Equal(t, []string{"str_concat", "str_trim"}, m.SymbolNames())
	assert.True(t, m.HasAPI())
	assert.False(t, Module{Name: "empty"}.HasAPI())
}

func TestFailureKind_String(t *testing.T) {
	assert.Equal(t, "", FailureNone.String())
	assert.Equal(t, "execution error", FailureExecution.String())
	assert.Equal(t, "timeout", FailureTimeout.String())
	assert.Equal(t, "macro", KindMacro.String())
}
