package cli

import (
	"time"

	"ftest/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	HeaderDir   string
	TestsDir    string
	BuildDir    string
	Processors  int
	Timeout     time.Duration
	LogLevel    string
	NoColor     bool
	NameFilter  string
	Symbols     bool
	Inspect     bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath: f.ProjectPath,
		HeaderDir:   f.HeaderDir,
		TestsDir:    f.TestsDir,
		BuildDir:    f.BuildDir,
		Processors:  f.Processors,
		Timeout:     f.Timeout,
		LogLevel:    f.LogLevel,
		NoColor:     f.NoColor,
		NameFilter:  f.NameFilter,
		Symbols:     f.Symbols,
		Inspect:     f.Inspect,
	}
}
