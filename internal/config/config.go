package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	HeaderDir   string
	TestsDir    string
	BuildDir    string

	// Execution settings
	Processors       int
	Timeout          time.Duration
	ExecutableSuffix string

	LogLevel string
	NoColor  bool

	// Command flags
	Flags Flags
}

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

// fileConfig mirrors ftest.toml
type fileConfig struct {
	Paths struct {
		Headers string `toml:"headers"`
		Tests   string `toml:"tests"`
		Build   string `toml:"build"`
	} `toml:"paths"`
	Execution struct {
		Processors       int     `toml:"processors"`
		Timeout          string  `toml:"timeout"`
		ExecutableSuffix *string `toml:"executable_suffix"`
	} `toml:"execution"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:      DefaultProjectPath,
		HeaderDir:        DefaultHeaderDir,
		TestsDir:         DefaultTestsDir,
		BuildDir:         DefaultBuildDir,
		Processors:       DefaultProcessors,
		Timeout:          DefaultTimeout,
		ExecutableSuffix: ExecutableSuffix(runtime.GOOS),
		LogLevel:         DefaultLogLevel,
	}
}

// Load builds the config for a project: defaults, then ftest.toml,
// then .env and the process environment, then flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if flags.ProjectPath != "" {
		cfg.ProjectPath = flags.ProjectPath
	}

	if err := cfg.loadFile(filepath.Join(cfg.ProjectPath, FileName)); err != nil {
		return nil, err
	}

	env, err := godotenv.Read(filepath.Join(cfg.ProjectPath, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	if err := cfg.applyEnv(lookupEnv(env)); err != nil {
		return nil, err
	}

	cfg.ApplyFlags(flags)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Paths.Headers != "" {
		c.HeaderDir = fc.Paths.Headers
	}
	if fc.Paths.Tests != "" {
		c.TestsDir = fc.Paths.Tests
	}
	if fc.Paths.Build != "" {
		c.BuildDir = fc.Paths.Build
	}
	if fc.Execution.Processors > 0 {
		c.Processors = fc.Execution.Processors
	}
	if fc.Execution.Timeout != "" {
		d, err := time.ParseDuration(fc.Execution.Timeout)
		if err != nil {
			return fmt.Errorf("parse execution.timeout: %w", err)
		}
		c.Timeout = d
	}
	if fc.Execution.ExecutableSuffix != nil {
		c.ExecutableSuffix = *fc.Execution.ExecutableSuffix
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	return nil
}

// lookupEnv prefers the process environment over values read from .env
func lookupEnv(dotenv map[string]string) func(string) string {
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("FTEST_HEADER_DIR"); v != "" {
		c.HeaderDir = v
	}
	if v := getenv("FTEST_TESTS_DIR"); v != "" {
		c.TestsDir = v
	}
	if v := getenv("FTEST_BUILD_DIR"); v != "" {
		c.BuildDir = v
	}
	if v := getenv("FTEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse FTEST_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := getenv("FTEST_PROCESSORS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse FTEST_PROCESSORS: %w", err)
		}
		if n > 0 {
			c.Processors = n
		}
	}
	if v := getenv("FTEST_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// ApplyFlags overrides config values with the flags that were set
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.HeaderDir != "" {
		c.HeaderDir = flags.HeaderDir
	}
	if flags.TestsDir != "" {
		c.TestsDir = flags.TestsDir
	}
	if flags.BuildDir != "" {
		c.BuildDir = flags.BuildDir
	}
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.NoColor {
		c.NoColor = true
	}
}

// resolve makes path relative to the project unless it is absolute
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectPath, path)
}

// GetHeaderPath returns the directory holding the module headers
func (c *Config) GetHeaderPath() string {
	return c.resolve(c.HeaderDir)
}

// GetTestsPath returns the tests root
func (c *Config) GetTestsPath() string {
	return c.resolve(c.TestsDir)
}

// GetBuildPath returns the build output directory
func (c *Config) GetBuildPath() string {
	return c.resolve(c.BuildDir)
}

// GetExecutablePath returns where the binary for a test case is expected
func (c *Config) GetExecutablePath(caseName string) string {
	return filepath.Join(c.GetBuildPath(), caseName+c.ExecutableSuffix)
}
