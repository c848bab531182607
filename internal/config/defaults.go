package config

import (
	"runtime"
	"time"
)

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultHeaderDir holds the module headers, relative to the project
	DefaultHeaderDir = "include/fiesta"
	// DefaultTestsDir is the tests root, one subdirectory per module
	DefaultTestsDir = "tests"
	// DefaultBuildDir is where the compiled test binaries live
	DefaultBuildDir = "build"
	// DefaultTimeout bounds a single test binary
	DefaultTimeout = 10 * time.Second
	// DefaultLogLevel is the level of the diagnostics logger
	DefaultLogLevel = "info"
	// FileName is the optional config file looked up in the project root
	FileName = "ftest.toml"
)

// DefaultProcessors is one worker per available core
var DefaultProcessors = runtime.NumCPU()

// ExecutableSuffix returns the suffix compiled binaries carry on goos
func ExecutableSuffix(goos string) string {
	if goos == "windows" {
		return ".exe"
	}
	return ""
}
