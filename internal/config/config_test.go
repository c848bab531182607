package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Paths(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default path",
			config:   &Config{ProjectPath: ".", TestsDir: "tests"},
			expected: "tests",
		},
		{
			name:     "relative to project",
			config:   &Config{ProjectPath: "/project", TestsDir: "tests"},
			expected: "/project/tests",
		},
		{
			name:     "absolute tests path",
			config:   &Config{ProjectPath: "/project", TestsDir: "/absolute/path"},
			expected: "/absolute/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.expected), tt.config.GetTestsPath())
		})
	}
}

func TestConfig_GetExecutablePath(t *testing.T) {
	cfg := &Config{ProjectPath: "/project", BuildDir: "build"}
	assert.Equal(t, filepath.FromSlash("/project/build/trim_basic"), cfg.GetExecutablePath("trim_basic"))

	cfg.ExecutableSuffix = ".exe"
	assert.Equal(t, filepath.FromSlash("/project/build/trim_basic.exe"), cfg.GetExecutablePath("trim_basic"))
}

func TestExecutableSuffix(t *testing.T) {
	assert.Equal(t, ".exe", ExecutableSuffix("windows"))
	assert.Equal(t, "", ExecutableSuffix("linux"))
	assert.Equal(t, "", ExecutableSuffix("darwin"))
}

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultProjectPath, cfg.ProjectPath)
	assert.Equal(t, DefaultHeaderDir, cfg.HeaderDir)
	assert.Equal(t, DefaultProcessors, cfg.Processors)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoad_Layers(t *testing.T) {
	dir := t.TempDir()

	toml := `
[paths]
headers = "include"
build = "out"

[execution]
processors = 2
timeout = "3s"
executable_suffix = ".bin"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(toml), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FTEST_BUILD_DIR=env-build\nFTEST_TIMEOUT=5s\n"), 0644))

	t.Run("file and dotenv", func(t *testing.T) {
		cfg, err := Load(Flags{ProjectPath: dir})
		require.NoError(t, err)

		assert.Equal(t, "include", cfg.HeaderDir)
		assert.Equal(t, DefaultTestsDir, cfg.TestsDir)
		assert.Equal(t, "env-build", cfg.BuildDir)
		assert.Equal(t, 2, cfg.Processors)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, ".bin", cfg.ExecutableSuffix)
	})

	t.Run("process environment beats dotenv", func(t *testing.T) {
		t.Setenv("FTEST_TIMEOUT", "7s")
		cfg, err := Load(Flags{ProjectPath: dir})
		require.NoError(t, err)
		assert.Equal(t, 7*time.Second, cfg.Timeout)
	})

	t.Run("flags win", func(t *testing.T) {
		cfg, err := Load(Flags{ProjectPath: dir, BuildDir: "flag-build", Processors: 8, Timeout: time.Second})
		require.NoError(t, err)
		assert.Equal(t, "flag-build", cfg.BuildDir)
		assert.Equal(t, 8, cfg.Processors)
		assert.Equal(t, time.Second, cfg.Timeout)
	})
}

func TestLoad_NoConfigFiles(t *testing.T) {
	cfg, err := Load(Flags{ProjectPath: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, DefaultTestsDir, cfg.TestsDir)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[execution]\ntimeout = \"soon\"\n"), 0644))

	_, err := Load(Flags{ProjectPath: dir})
	assert.Error(t, err)
}
